package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchStatusIsTerminal(t *testing.T) {
	assert.False(t, BatchStatusIdle.IsTerminal())
	assert.False(t, BatchStatusRunning.IsTerminal())
	assert.True(t, BatchStatusSucceeded.IsTerminal())
	assert.True(t, BatchStatusFailed.IsTerminal())
}

func TestMediaKindExtension(t *testing.T) {
	assert.Equal(t, "mp4", MediaKindVideo.Extension())
	assert.Equal(t, "jpg", MediaKindImage.Extension())
	assert.Equal(t, "jpg", MediaKind("").Extension(), "unknown kinds are saved as images")
}

func TestSettings(t *testing.T) {
	t.Run("defaults select demo mode", func(t *testing.T) {
		s := DefaultSettings()
		assert.True(t, s.IsDemo())
		assert.Equal(t, "zh", s.Language)
	})

	t.Run("blank endpoint is demo mode", func(t *testing.T) {
		assert.True(t, Settings{Endpoint: "  "}.IsDemo())
		assert.False(t, Settings{Endpoint: "http://nas.local:5556"}.IsDemo())
	})

	t.Run("redaction hides only a present token", func(t *testing.T) {
		assert.Equal(t, "", Settings{}.Redacted().Token)
		redacted := Settings{Endpoint: "http://x", Token: "secret"}.Redacted()
		assert.NotEqual(t, "secret", redacted.Token)
		assert.Equal(t, "http://x", redacted.Endpoint)
	})
}
