package download

import (
	"testing"
	"time"

	"github.com/truemediaorg/postgrab/model"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	t.Run("runs through the full cycle", func(t *testing.T) {
		tracker := NewTracker(20 * time.Millisecond)
		assert.Equal(t, model.BatchStatusIdle, tracker.Status())

		assert.True(t, tracker.Begin())
		assert.Equal(t, model.BatchStatusRunning, tracker.Status())

		tracker.Finish(model.BatchStatusSucceeded)
		assert.Equal(t, model.BatchStatusSucceeded, tracker.Status())

		assert.Eventually(t, func() bool {
			return tracker.Status() == model.BatchStatusIdle
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("refuses to begin while running", func(t *testing.T) {
		tracker := NewTracker(time.Hour)
		assert.True(t, tracker.Begin())
		assert.False(t, tracker.Begin())
		assert.Equal(t, model.BatchStatusRunning, tracker.Status())
	})

	t.Run("a new run may start during the display window", func(t *testing.T) {
		tracker := NewTracker(30 * time.Millisecond)
		assert.True(t, tracker.Begin())
		tracker.Finish(model.BatchStatusFailed)

		assert.True(t, tracker.Begin())
		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, model.BatchStatusRunning, tracker.Status(), "stale reset must not touch the newer run")
	})

	t.Run("non-terminal finish resets immediately", func(t *testing.T) {
		tracker := NewTracker(time.Hour)
		assert.True(t, tracker.Begin())
		tracker.Finish(model.BatchStatusIdle)
		assert.Equal(t, model.BatchStatusIdle, tracker.Status())
	})
}

func TestBatchFilename(t *testing.T) {
	testCases := []struct {
		description string
		title       string
		position    int
		kind        model.MediaKind
		expected    string
	}{
		{"keeps the first ten characters", "Summer OOTD | Casual Business Style", 1, model.MediaKindImage, "Summer_OOT_1.jpg"},
		{"short titles are kept whole", "Look", 2, model.MediaKindImage, "Look_2.jpg"},
		{"videos get mp4", "clip", 4, model.MediaKindVideo, "clip_4.mp4"},
		{"non-latin runes become underscores", "夏日穿搭分享Vlog!", 1, model.MediaKindImage, "______Vlog_1.jpg"},
		{"empty titles still produce a name", "", 3, model.MediaKindImage, "_3.jpg"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expected, BatchFilename(testCase.title, testCase.position, testCase.kind))
		})
	}
}

func TestSingleFilename(t *testing.T) {
	assert.Equal(t, "xhs_media_1_1700000000000.jpg", SingleFilename(0, model.MediaKindImage, time.UnixMilli(1700000000000)))
}
