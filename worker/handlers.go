package worker

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ameyarj/chima-ads/internal/config"
	"github.com/ameyarj/chima-ads/models"
	"github.com/ameyarj/chima-ads/rendering"
	"github.com/ameyarj/chima-ads/tasks"
)

// HandleRenderVideo processes tasks from the render queue: synthesize and
// stage the voiceover when configured, run the composition, then move the job
// to its terminal state. All staging files are cleaned up on every exit path.
func (p *Processor) HandleRenderVideo(ctx context.Context, payload string) error {
	var task tasks.RenderTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return err
	}

	var video models.Video
	if err := p.DB.First(&video, "id = ?", task.VideoID).Error; err != nil {
		return fmt.Errorf("video %s not found: %w", task.VideoID, err)
	}
	if video.IsTerminal() {
		log.Warnf("Skipping render for %s: job already %s", video.ID, video.Status)
		return nil
	}

	var product models.ProductData
	if err := json.Unmarshal([]byte(video.ProductData), &product); err != nil {
		p.fail(video.ID, fmt.Sprintf("corrupt product data: %v", err))
		return err
	}
	var script models.AdScript
	if err := json.Unmarshal([]byte(video.AdScript), &script); err != nil {
		p.fail(video.ID, fmt.Sprintf("corrupt ad script: %v", err))
		return err
	}

	log.Infof("Rendering video %s (%s)...", video.ID, product.Title)

	audioRef := ""
	if vo := script.Voiceover; vo != nil && vo.Enabled && vo.Text != "" {
		audioPath, duration, err := p.Synthesizer.Synthesize(ctx, vo.Text, vo.Voice, vo.Speed)
		if err != nil {
			p.fail(video.ID, fmt.Sprintf("voiceover synthesis failed: %v", err))
			return err
		}
		if duration > rendering.TotalSeconds {
			log.Warnf("Voiceover for %s estimated at %ds, exceeds the %ds timeline",
				video.ID, duration, rendering.TotalSeconds)
		}

		ref, cleanup, err := p.Renderer.StageAudio(video.ID, audioPath)
		if err != nil {
			p.fail(video.ID, fmt.Sprintf("audio staging failed: %v", err))
			return err
		}
		defer cleanup()
		audioRef = ref
	}

	outputPath, err := p.Renderer.Render(ctx, video.ID, &product, &script, video.AspectRatio, video.Template, audioRef)
	if err != nil {
		if p.FailureMode == config.RenderFailurePlaceholder {
			log.Warnf("Render failed for %s, substituting placeholder: %v", video.ID, err)
			placeholderPath, werr := p.Renderer.WritePlaceholder(video.ID)
			if werr == nil {
				p.complete(video.ID, placeholderPath)
				return nil
			}
			log.Errorf("Placeholder write failed for %s: %v", video.ID, werr)
		}
		p.fail(video.ID, err.Error())
		return err
	}

	p.complete(video.ID, outputPath)
	log.Infof("Completed video %s", video.ID)
	return nil
}

func (p *Processor) complete(id, outputPath string) {
	updated, err := models.MarkCompleted(p.DB, id, outputPath)
	if err != nil {
		log.Errorf("Failed to mark %s completed: %v", id, err)
		return
	}
	if !updated {
		log.Warnf("Job %s already terminal, completion discarded", id)
	}
}

func (p *Processor) fail(id, message string) {
	updated, err := models.MarkFailed(p.DB, id, message)
	if err != nil {
		log.Errorf("Failed to mark %s failed: %v", id, err)
		return
	}
	if !updated {
		log.Warnf("Job %s already terminal, failure discarded", id)
	}
}
