package normalize

import (
	"testing"

	"github.com/truemediaorg/postgrab/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWrappedPayload(t *testing.T) {
	post, err := Normalize([]byte(`{"data": {"title": "T", "image_list": ["a", "b"]}}`))
	require.NoError(t, err)

	assert.Equal(t, "T", post.Title)
	assert.Equal(t, []model.Media{
		{ID: "img-0", URL: "a", Kind: model.MediaKindImage},
		{ID: "img-1", URL: "b", Kind: model.MediaKindImage},
	}, post.Media)
	assert.False(t, post.HasVideo())
}

func TestNormalizeFlatPayload(t *testing.T) {
	post, err := Normalize([]byte(`{"desc": "hello world this is long", "images": ["x"]}`))
	require.NoError(t, err)

	assert.Equal(t, "hello world this is ", post.Title)
	assert.Equal(t, "hello world this is long", post.Description)
	assert.Equal(t, []model.Media{{ID: "img-0", URL: "x", Kind: model.MediaKindImage}}, post.Media)
}

func TestNormalizeFullPayload(t *testing.T) {
	raw := `{
		"message": "ok",
		"data": {
			"title": "Summer OOTD",
			"desc": "office look #ootd",
			"author": {"nickname": "Fashion_Daily", "user_id": "5f1e", "avatar": "https://img.example/a.jpg"},
			"image_list": [{"url": "https://img.example/1.jpg"}, "https://img.example/2.jpg"],
			"video_url": "https://video.example/v.mp4"
		}
	}`
	post, err := Normalize([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, &model.Post{
		Title:       "Summer OOTD",
		Description: "office look #ootd",
		Author: model.Author{
			Nickname:  "Fashion_Daily",
			UID:       "5f1e",
			AvatarURL: "https://img.example/a.jpg",
		},
		Media: []model.Media{
			{ID: "img-0", URL: "https://img.example/1.jpg", Kind: model.MediaKindImage},
			{ID: "img-1", URL: "https://img.example/2.jpg", Kind: model.MediaKindImage},
			{ID: "video-main", URL: "https://video.example/v.mp4", Kind: model.MediaKindVideo},
		},
	}, post)
}

func TestNormalizeDefaults(t *testing.T) {
	testCases := []struct {
		description string
		raw         string
	}{
		{"empty object", `{}`},
		{"empty data wrapper", `{"data": {}}`},
		{"top-level array", `[1, 2, 3]`},
		{"wrong field types", `{"title": 5, "author": "someone", "image_list": "nope", "video_url": {"x": 1}}`},
		{"null data is not unwrapped", `{"data": null}`},
		{"trailing whitespace", "{}\n\t "},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			post, err := Normalize([]byte(testCase.raw))
			require.NoError(t, err)
			assert.Equal(t, "", post.Description)
			assert.Equal(t, UnknownAuthor, post.Author.Nickname)
			assert.Equal(t, "", post.Author.UID)
			assert.Equal(t, "", post.Author.AvatarURL)
			assert.Empty(t, post.Media)
		})
	}
}

func TestNormalizeRejectsMalformedInput(t *testing.T) {
	testCases := []struct {
		description string
		raw         string
	}{
		{"not json", `<html>502 Bad Gateway</html>`},
		{"bare string", `"hello"`},
		{"bare number", `42`},
		{"null", `null`},
		{"empty body", ``},
		{"trailing garbage", `{"title": "T"} <html>garbage`},
		{"two values", `{"title": "T"} {"title": "U"}`},
		{"stray closing brace", `{"title": "T"}}`},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			post, err := Normalize([]byte(testCase.raw))
			assert.Nil(t, post)
			var normErr *NormalizationError
			assert.ErrorAs(t, err, &normErr)
		})
	}
}

func TestTitleRules(t *testing.T) {
	testCases := []struct {
		description string
		payload     map[string]any
		expected    string
	}{
		{"title wins", map[string]any{"title": "T", "desc": "D"}, "T"},
		{"empty title falls back to desc", map[string]any{"title": "", "desc": "short"}, "short"},
		{"desc is cut to 20 runes", map[string]any{"desc": "0123456789abcdefghijKLMN"}, "0123456789abcdefghij"},
		{"multibyte desc is cut by rune", map[string]any{"desc": "今天分享一套适合通勤的夏日穿搭，简单又大方，喜欢的姐妹快来抄作业"}, "今天分享一套适合通勤的夏日穿搭，简单又大"},
		{"description is the second variant", map[string]any{"description": "from the other backend"}, "from the other backe"},
		{"nothing yields empty", map[string]any{}, ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expected, FromPayload(testCase.payload).Title)
		})
	}
}

func TestAuthorRules(t *testing.T) {
	t.Run("nickname falls back to top-level field", func(t *testing.T) {
		post := FromPayload(map[string]any{"nickname": "flat_name"})
		assert.Equal(t, "flat_name", post.Author.Nickname)
	})

	t.Run("nested nickname wins over top-level", func(t *testing.T) {
		post := FromPayload(map[string]any{
			"nickname": "flat_name",
			"author":   map[string]any{"nickname": "nested_name"},
		})
		assert.Equal(t, "nested_name", post.Author.Nickname)
	})

	t.Run("uid tries uid, user_id, then top-level user_id", func(t *testing.T) {
		assert.Equal(t, "u1", FromPayload(map[string]any{"author": map[string]any{"uid": "u1", "user_id": "u2"}, "user_id": "u3"}).Author.UID)
		assert.Equal(t, "u2", FromPayload(map[string]any{"author": map[string]any{"user_id": "u2"}, "user_id": "u3"}).Author.UID)
		assert.Equal(t, "u3", FromPayload(map[string]any{"user_id": "u3"}).Author.UID)
	})

	t.Run("numeric ids are kept as written", func(t *testing.T) {
		post, err := Normalize([]byte(`{"author": {"uid": 102938475610293847}}`))
		require.NoError(t, err)
		assert.Equal(t, "102938475610293847", post.Author.UID)
	})
}

func TestMediaRules(t *testing.T) {
	t.Run("malformed entries are skipped but ids keep the source index", func(t *testing.T) {
		post, err := Normalize([]byte(`{"image_list": ["a", 7, {"url": ""}, {"url": "d"}, null]}`))
		require.NoError(t, err)
		assert.Equal(t, []model.Media{
			{ID: "img-0", URL: "a", Kind: model.MediaKindImage},
			{ID: "img-3", URL: "d", Kind: model.MediaKindImage},
		}, post.Media)
	})

	t.Run("image_list is preferred over images", func(t *testing.T) {
		post := FromPayload(map[string]any{
			"image_list": []any{"from-list"},
			"images":     []any{"from-images"},
		})
		assert.Len(t, post.Media, 1)
		assert.Equal(t, "from-list", post.Media[0].URL)
	})

	t.Run("video is appended after all images", func(t *testing.T) {
		post := FromPayload(map[string]any{
			"video_url": "v.mp4",
			"images":    []any{"a", "b"},
		})
		require.Len(t, post.Media, 3)
		assert.Equal(t, "img-0", post.Media[0].ID)
		assert.Equal(t, "img-1", post.Media[1].ID)
		assert.Equal(t, model.Media{ID: "video-main", URL: "v.mp4", Kind: model.MediaKindVideo}, post.Media[2])
	})

	t.Run("video object variant", func(t *testing.T) {
		post := FromPayload(map[string]any{"video": map[string]any{"url": "v.mp4"}})
		require.Len(t, post.Media, 1)
		assert.Equal(t, model.MediaKindVideo, post.Media[0].Kind)
	})
}
