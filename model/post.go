package model

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// Extension returns the file extension used when saving media of this kind.
func (k MediaKind) Extension() string {
	if k == MediaKindVideo {
		return "mp4"
	}
	return "jpg"
}

type Media struct {
	ID   string    `json:"id"`
	URL  string    `json:"url"`
	Kind MediaKind `json:"type"`
}

type Author struct {
	Nickname  string `json:"nickname"`
	UID       string `json:"uid"`
	AvatarURL string `json:"avatar"`
}

/*
Post is the canonical description of a resolved social media post.

Media is ordered the way the assets appeared in the resolver response:
every image in source order, then at most one trailing video.
A Post is replaced wholesale on every resolution and never patched.
*/
type Post struct {
	Title       string  `json:"title"`
	Description string  `json:"desc"`
	Author      Author  `json:"author"`
	Media       []Media `json:"media"`
	OriginalURL string  `json:"originalUrl"`
}

// HasVideo reports whether the post carries a video asset.
func (p Post) HasVideo() bool {
	for _, m := range p.Media {
		if m.Kind == MediaKindVideo {
			return true
		}
	}
	return false
}
