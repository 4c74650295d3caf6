package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVideoView(t *testing.T) {
	now := time.Now().UTC()

	t.Run("completed job exposes video url", func(t *testing.T) {
		v := Video{ID: "abc", Status: StatusCompleted, VideoPath: "/videos/abc.mp4", CreatedAt: now}
		view := v.View()

		assert.Equal(t, "/api/video/abc/file", view.VideoURL)
		assert.Equal(t, StatusCompleted, view.Status)
		assert.Empty(t, view.Error)
	})

	t.Run("processing job has no video url", func(t *testing.T) {
		v := Video{ID: "abc", Status: StatusProcessing, CreatedAt: now}
		assert.Empty(t, v.View().VideoURL)
	})

	t.Run("failed job exposes error, no video url", func(t *testing.T) {
		v := Video{ID: "abc", Status: StatusFailed, Error: "render timed out", CreatedAt: now}
		view := v.View()

		assert.Empty(t, view.VideoURL)
		assert.Equal(t, "render timed out", view.Error)
	})

	t.Run("completed without a path still hides video url", func(t *testing.T) {
		v := Video{ID: "abc", Status: StatusCompleted, CreatedAt: now}
		assert.Empty(t, v.View().VideoURL)
	})
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, (&Video{Status: StatusProcessing}).IsTerminal())
	assert.True(t, (&Video{Status: StatusCompleted}).IsTerminal())
	assert.True(t, (&Video{Status: StatusFailed}).IsTerminal())
}
