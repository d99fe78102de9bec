package download

import (
	"fmt"
	"regexp"
	"time"

	"github.com/truemediaorg/postgrab/model"
)

// Number of title runes kept in batch filenames. Independent of the title
// fallback length used by the normalizer.
const batchTitleLength = 10

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// BatchFilename names the asset at the 1-based position of a batch after the
// post title, e.g. "Summer_OOT_2.jpg".
func BatchFilename(title string, position int, kind model.MediaKind) string {
	runes := []rune(title)
	if len(runes) > batchTitleLength {
		runes = runes[:batchTitleLength]
	}
	base := unsafeFilenameChars.ReplaceAllString(string(runes), "_")
	return fmt.Sprintf("%s_%d.%s", base, position, kind.Extension())
}

// SingleFilename names an individually saved asset by its 0-based index in the
// post and the save time, so repeated saves never collide.
func SingleFilename(index int, kind model.MediaKind, now time.Time) string {
	return fmt.Sprintf("xhs_media_%d_%d.%s", index+1, now.UnixMilli(), kind.Extension())
}
