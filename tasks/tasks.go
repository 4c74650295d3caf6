package tasks

import "encoding/json"

// QueueVideoRender carries render tasks from the API to the worker pool.
const QueueVideoRender = "q_video_render"

// RenderTaskPayload is the payload for QueueVideoRender.
type RenderTaskPayload struct {
	VideoID string `json:"video_id"`
}

// Marshal creates a JSON payload for a task.
func Marshal(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
