package videos

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ameyarj/chima-ads/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Video{}))
	return db
}

// stubGenerator satisfies processing.ScriptGenerator for service tests.
type stubGenerator struct {
	script *models.AdScript
	err    error
}

func (g *stubGenerator) GenerateAdScript(_ context.Context, _ *models.ProductData) (*models.AdScript, error) {
	return g.script, g.err
}

func TestDeleteVideo(t *testing.T) {
	t.Run("unknown id returns false with no side effects", func(t *testing.T) {
		db := openTestDB(t)
		svc := NewService(db, nil, nil, nil)

		require.NoError(t, db.Create(&models.Video{
			ID:        "keep-me",
			URL:       "https://example.com/p",
			Status:    models.StatusProcessing,
			CreatedAt: time.Now().UTC(),
		}).Error)

		deleted, err := svc.DeleteVideo("no-such-job")
		require.NoError(t, err)
		assert.False(t, deleted)

		var count int64
		require.NoError(t, db.Model(&models.Video{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("existing job removes file and record", func(t *testing.T) {
		db := openTestDB(t)
		svc := NewService(db, nil, nil, nil)

		videoPath := filepath.Join(t.TempDir(), "clip.mp4")
		require.NoError(t, os.WriteFile(videoPath, []byte("mp4"), 0o644))
		require.NoError(t, db.Create(&models.Video{
			ID:        "done",
			URL:       "https://example.com/p",
			Status:    models.StatusCompleted,
			VideoPath: videoPath,
			CreatedAt: time.Now().UTC(),
		}).Error)

		deleted, err := svc.DeleteVideo("done")
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = os.Stat(videoPath)
		assert.True(t, os.IsNotExist(err))
		err = db.First(&models.Video{}, "id = ?", "done").Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("missing file does not block deletion", func(t *testing.T) {
		db := openTestDB(t)
		svc := NewService(db, nil, nil, nil)

		require.NoError(t, db.Create(&models.Video{
			ID:        "gone-file",
			URL:       "https://example.com/p",
			Status:    models.StatusCompleted,
			VideoPath: filepath.Join(t.TempDir(), "never-written.mp4"),
			CreatedAt: time.Now().UTC(),
		}).Error)

		deleted, err := svc.DeleteVideo("gone-file")
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestCreateVideoPreflightFailure(t *testing.T) {
	db := openTestDB(t)
	generator := &stubGenerator{err: errors.New("upstream says no")}
	svc := NewService(db, nil, nil, generator)

	product := &models.ProductData{
		URL:   "https://example.com/widget",
		Title: "Widget Deluxe",
	}

	view, err := svc.CreateVideo(context.Background(), GenerateRequest{ProductData: product})
	require.NoError(t, err)

	assert.Equal(t, models.StatusFailed, view.Status)
	assert.Contains(t, view.Error, "script generation failed")
	assert.Empty(t, view.VideoURL)

	// The resolved product data is kept on the failed record.
	var stored models.Video
	require.NoError(t, db.First(&stored, "id = ?", view.ID).Error)
	assert.Equal(t, models.StatusFailed, stored.Status)
	assert.Contains(t, stored.ProductData, "Widget Deluxe")

	// The failure is terminal: the render path cannot revive the job.
	updated, err := models.MarkCompleted(db, view.ID, "/videos/x.mp4")
	require.NoError(t, err)
	assert.False(t, updated)
}
