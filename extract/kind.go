package extract

import (
	"strings"

	"github.com/truemediaorg/postgrab/model"
)

var videoMarkers = []string{".mp4", ".mov"}

// Kind guesses the media kind of an asset URL from its extension. Anything
// that does not look like a video is treated as an image.
func Kind(assetURL string) model.MediaKind {
	lower := strings.ToLower(assetURL)
	for _, marker := range videoMarkers {
		if strings.Contains(lower, marker) {
			return model.MediaKindVideo
		}
	}
	return model.MediaKindImage
}
