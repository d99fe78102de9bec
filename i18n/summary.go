package i18n

import (
	"fmt"
	"strings"

	"github.com/truemediaorg/postgrab/model"
)

// Summary renders a resolved post as a short human-readable block, e.g.
//
//	== XHS Asset Manager ==
//	Post Title: Summer OOTD
//	Description: ...
//	Author Info: Fashion_Daily (102938)
//	Media Assets: 3
//	  1. image https://...
func (t Translator) Summary(post model.Post, demo bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", t.T(KeyAppName))
	if demo {
		fmt.Fprintln(&b, t.T(KeyDemoNote))
	}
	fmt.Fprintf(&b, "%s: %s\n", t.T(KeyPostTitle), post.Title)
	fmt.Fprintf(&b, "%s: %s\n", t.T(KeyPostDesc), post.Description)

	author := post.Author.Nickname
	if post.Author.UID != "" {
		author = fmt.Sprintf("%s (%s)", author, post.Author.UID)
	}
	fmt.Fprintf(&b, "%s: %s\n", t.T(KeyAuthorInfo), author)

	if len(post.Media) == 0 {
		fmt.Fprintln(&b, t.T(KeyNoMedia))
		return b.String()
	}
	fmt.Fprintf(&b, "%s: %d\n", t.T(KeyMediaAssets), len(post.Media))
	for i, media := range post.Media {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, media.Kind, media.URL)
	}
	return b.String()
}

// Failure prefixes an analysis error with the localized failure title.
func (t Translator) Failure(message string) string {
	return fmt.Sprintf("%s: %s", t.T(KeyAnalysisFailed), message)
}
