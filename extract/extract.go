package extract

import (
	"errors"
	"regexp"
)

// ErrNoURL is returned when the pasted text holds no http(s) link. It is a
// user-correctable condition rather than a failure.
var ErrNoURL = errors.New("no valid URL found in the input text")

// scheme followed by any run of non-whitespace characters. \p{Z} covers the
// ideographic and no-break spaces that share texts from mobile apps contain.
var urlPattern = regexp.MustCompile(`https?://[^\s\v\p{Z}\x{FEFF}]+`)

// Takes in free-form share text (e.g. "53 look at this http://xhslink.com/a/b, copy and open")
// and returns the first http(s) URL exactly as it appears. Trailing punctuation is kept
// and URLs broken by whitespace are not repaired.
func URL(text string) (string, error) {
	match := urlPattern.FindString(text)
	if match == "" {
		return "", ErrNoURL
	}
	return match, nil
}

// All returns every URL token in order of appearance.
func All(text string) []string {
	return urlPattern.FindAllString(text, -1)
}
