package models

import (
	"gorm.io/gorm"
)

// Terminal transitions are guarded on the current status so a job that already
// reached completed or failed is never rewritten, regardless of which flow
// (worker, sweep) attempts the update.

// MarkCompleted records the output path and moves the job to completed.
// Returns false when the job was no longer in processing.
func MarkCompleted(db *gorm.DB, id, videoPath string) (bool, error) {
	res := db.Model(&Video{}).
		Where("id = ? AND status = ?", id, StatusProcessing).
		Updates(map[string]interface{}{
			"status":     StatusCompleted,
			"video_path": videoPath,
		})
	return res.RowsAffected > 0, res.Error
}

// MarkFailed records the error message and moves the job to failed.
// Returns false when the job was no longer in processing.
func MarkFailed(db *gorm.DB, id, message string) (bool, error) {
	res := db.Model(&Video{}).
		Where("id = ? AND status = ?", id, StatusProcessing).
		Updates(map[string]interface{}{
			"status": StatusFailed,
			"error":  message,
		})
	return res.RowsAffected > 0, res.Error
}
