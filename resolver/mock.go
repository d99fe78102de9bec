package resolver

import (
	"fmt"

	"github.com/truemediaorg/postgrab/model"
)

const (
	mockTitle       = "Summer OOTD | Casual Business Style"
	mockDescription = "Sharing my favorite look for the office this summer. #ootd #business"
	mockImageCount  = 3
)

// MockPost is the fixed post returned in demo mode. Only OriginalURL depends
// on the input, which makes it usable as a golden fixture.
func MockPost(postURL string) *model.Post {
	media := make([]model.Media, 0, mockImageCount)
	for i := 0; i < mockImageCount; i++ {
		media = append(media, model.Media{
			ID:   fmt.Sprintf("img-%d", i),
			URL:  fmt.Sprintf("https://picsum.photos/800/1000?random=%d", i+1),
			Kind: model.MediaKindImage,
		})
	}
	return &model.Post{
		Title:       mockTitle,
		Description: mockDescription,
		Author: model.Author{
			Nickname:  "Fashion_Daily",
			UID:       "102938",
			AvatarURL: "https://picsum.photos/100/100",
		},
		Media:       media,
		OriginalURL: postURL,
	}
}
