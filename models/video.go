package models

import (
	"time"
)

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

const (
	AspectVertical   = "9:16"
	AspectHorizontal = "16:9"
)

type Video struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	URL         string    `gorm:"type:text;not null" json:"url"`
	ProductData string    `gorm:"type:text" json:"product_data,omitempty"`
	AdScript    string    `gorm:"type:text" json:"ad_script,omitempty"`
	AspectRatio string    `gorm:"size:8;default:'16:9'" json:"aspect_ratio"`
	Template    string    `gorm:"size:64;default:'default'" json:"template"`
	Status      string    `gorm:"size:16;default:'processing';index" json:"status"`
	VideoPath   string    `gorm:"type:text" json:"-"`
	Error       string    `gorm:"type:text" json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Video) TableName() string {
	return "videos"
}

// IsTerminal reports whether the job can no longer change state.
func (v *Video) IsTerminal() bool {
	return v.Status == StatusCompleted || v.Status == StatusFailed
}

// VideoView is the job representation returned over the API.
type VideoView struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// View builds the API representation. The video URL is exposed only for
// completed jobs; in-flight and failed jobs never carry one.
func (v *Video) View() VideoView {
	view := VideoView{
		ID:        v.ID,
		Status:    v.Status,
		Error:     v.Error,
		CreatedAt: v.CreatedAt,
	}
	if v.Status == StatusCompleted && v.VideoPath != "" {
		view.VideoURL = "/api/video/" + v.ID + "/file"
	}
	return view
}
