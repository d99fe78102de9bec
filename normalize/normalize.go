// Package normalize maps the response shapes of different resolver backend
// versions onto model.Post.
//
// Every field is described by an ordered list of extraction rules. Rules are
// tried in sequence until one yields a non-empty value and each list ends in
// a fixed fallback, so a missing or malformed field degrades to a default
// instead of failing the whole post.
package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/truemediaorg/postgrab/model"
)

const (
	// Placeholder used when no schema variant carries an author name
	UnknownAuthor = "未知用户"

	// Length of the title derived from the description when the payload has none
	TitleFallbackLength = 20

	VideoMediaID = "video-main"
)

// NormalizationError means the resolver answered with something that is not
// a JSON object or array at all, which points to an incompatible backend.
type NormalizationError struct {
	Err error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("malformed resolver response: %v", e.Err)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

var (
	titleRules = []rule{
		field("title"),
		prefix(field("desc"), TitleFallbackLength),
		prefix(field("description"), TitleFallbackLength),
	}
	descriptionRules = []rule{
		field("desc"),
		field("description"),
	}
	nicknameRules = []rule{
		field("author", "nickname"),
		field("nickname"),
	}
	uidRules = []rule{
		field("author", "uid"),
		field("author", "user_id"),
		field("user_id"),
	}
	avatarRules = []rule{
		field("author", "avatar"),
	}
	videoRules = []rule{
		field("video_url"),
		field("video"),
		field("video", "url"),
	}
	// keys that may hold the image list, in order of preference
	imageListKeys = []string{"image_list", "images"}
)

// Normalize decodes a raw resolver body into a Post. OriginalURL is left for
// the caller to fill in.
func Normalize(raw []byte) (*model.Post, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var body any
	if err := decoder.Decode(&body); err != nil {
		return nil, &NormalizationError{Err: err}
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, &NormalizationError{Err: fmt.Errorf("unexpected data after the JSON value")}
	}

	switch body.(type) {
	case map[string]any, []any:
	default:
		return nil, &NormalizationError{Err: fmt.Errorf("expected a JSON object or array, got %T", body)}
	}

	return FromPayload(unwrap(body)), nil
}

// unwrap returns the substantive payload: the nested "data" object when the
// backend wraps its results, otherwise the body itself. Top-level arrays carry
// no known fields and normalize to an all-defaults post.
func unwrap(body any) map[string]any {
	obj, ok := body.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

// FromPayload applies the field rules to an already unwrapped payload.
func FromPayload(payload map[string]any) *model.Post {
	return &model.Post{
		Title:       firstOf(payload, "", titleRules...),
		Description: firstOf(payload, "", descriptionRules...),
		Author: model.Author{
			Nickname:  firstOf(payload, UnknownAuthor, nicknameRules...),
			UID:       firstOf(payload, "", uidRules...),
			AvatarURL: firstOf(payload, "", avatarRules...),
		},
		Media: media(payload),
	}
}

func media(payload map[string]any) []model.Media {
	items := images(payload)
	if videoURL := firstOf(payload, "", videoRules...); videoURL != "" {
		items = append(items, model.Media{
			ID:   VideoMediaID,
			URL:  videoURL,
			Kind: model.MediaKindVideo,
		})
	}
	return items
}

// images reads the first present image list. Entries may be plain URL strings
// or objects exposing a "url" field; ids keep the source index so they stay
// stable even when a malformed entry is skipped.
func images(payload map[string]any) []model.Media {
	items := []model.Media{}
	for _, key := range imageListKeys {
		list, ok := payload[key].([]any)
		if !ok {
			continue
		}
		for idx, entry := range list {
			url := imageURL(entry)
			if url == "" {
				continue
			}
			items = append(items, model.Media{
				ID:   fmt.Sprintf("img-%d", idx),
				URL:  url,
				Kind: model.MediaKindImage,
			})
		}
		return items
	}
	return items
}

func imageURL(entry any) string {
	switch value := entry.(type) {
	case string:
		return value
	case map[string]any:
		return scalar(value["url"])
	default:
		return ""
	}
}
