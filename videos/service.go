package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ameyarj/chima-ads/models"
	"github.com/ameyarj/chima-ads/processing"
	"github.com/ameyarj/chima-ads/scraping"
	"github.com/ameyarj/chima-ads/tasks"
)

const defaultTemplate = "default"

// Service is the job orchestrator: it runs the synchronous pre-flight
// (scrape + script generation), persists the job and hands rendering to the
// worker queue.
type Service struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Scraper   *scraping.Scraper
	Generator processing.ScriptGenerator
}

func NewService(db *gorm.DB, rdb *redis.Client, scraper *scraping.Scraper, generator processing.ScriptGenerator) *Service {
	return &Service{DB: db, Redis: rdb, Scraper: scraper, Generator: generator}
}

// GenerateRequest is the input for CreateVideo. Either ProductData or URL must
// be set; when only URL is present the product is scraped synchronously.
type GenerateRequest struct {
	URL              string
	ProductData      *models.ProductData
	AdScript         *models.AdScript
	AspectRatio      string
	Template         string
	VoiceoverEnabled bool
	Voice            string
	Speed            float64
}

// CreateVideo resolves product data, generates the ad script, persists the job
// as processing and enqueues the render task. Pre-flight failures produce a
// persisted failed job whose view is returned to the caller.
func (s *Service) CreateVideo(ctx context.Context, req GenerateRequest) (models.VideoView, error) {
	id := uuid.NewString()

	product := req.ProductData
	if product == nil {
		scraped, err := s.Scraper.Scrape(ctx, req.URL)
		if err != nil {
			return s.persistFailed(id, req.URL, nil, fmt.Errorf("scraping failed: %w", err))
		}
		product = scraped
	}
	if product.URL == "" {
		product.URL = req.URL
	}

	script := req.AdScript
	if script == nil || script.Hook == "" {
		log.Infof("Generating ad script for %q", product.Title)
		generated, err := s.Generator.GenerateAdScript(ctx, product)
		if err != nil {
			return s.persistFailed(id, product.URL, product, fmt.Errorf("script generation failed: %w", err))
		}
		script = generated
	}

	if req.VoiceoverEnabled {
		voice := req.Voice
		if voice == "" {
			voice = processing.DefaultVoice
		}
		speed := req.Speed
		if speed <= 0 {
			speed = 1.0
		}
		script.Voiceover = &models.Voiceover{
			Enabled: true,
			Voice:   voice,
			Speed:   speed,
			Text:    processing.BuildNarration(script),
		}
	}

	productJSON, err := json.Marshal(product)
	if err != nil {
		return s.persistFailed(id, product.URL, nil, fmt.Errorf("serialize product data: %w", err))
	}
	scriptJSON, err := json.Marshal(script)
	if err != nil {
		return s.persistFailed(id, product.URL, product, fmt.Errorf("serialize ad script: %w", err))
	}

	video := models.Video{
		ID:          id,
		URL:         product.URL,
		ProductData: string(productJSON),
		AdScript:    string(scriptJSON),
		AspectRatio: normalizeAspect(req.AspectRatio),
		Template:    normalizeTemplate(req.Template),
		Status:      models.StatusProcessing,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.DB.Create(&video).Error; err != nil {
		return models.VideoView{}, fmt.Errorf("persist job: %w", err)
	}

	task := tasks.RenderTaskPayload{VideoID: id}
	payload, err := tasks.Marshal(task)
	if err == nil {
		err = s.Redis.LPush(ctx, tasks.QueueVideoRender, payload).Err()
	}
	if err != nil {
		log.Errorf("Failed to enqueue render task for %s: %v", id, err)
		models.MarkFailed(s.DB, id, fmt.Sprintf("failed to queue render: %v", err))
		video.Status = models.StatusFailed
		video.Error = fmt.Sprintf("failed to queue render: %v", err)
		return video.View(), nil
	}

	log.Infof("Queued video %s for rendering", id)
	return video.View(), nil
}

// persistFailed records a job that never made it past pre-flight. Product data
// that was already resolved is kept on the record so failed jobs stay
// diagnosable.
func (s *Service) persistFailed(id, url string, product *models.ProductData, cause error) (models.VideoView, error) {
	log.Errorf("Job %s failed during creation: %v", id, cause)
	video := models.Video{
		ID:        id,
		URL:       url,
		Status:    models.StatusFailed,
		Error:     cause.Error(),
		CreatedAt: time.Now().UTC(),
	}
	if product != nil {
		if data, err := json.Marshal(product); err == nil {
			video.ProductData = string(data)
		}
	}
	if err := s.DB.Create(&video).Error; err != nil {
		return models.VideoView{}, fmt.Errorf("persist failed job: %w", err)
	}
	return video.View(), nil
}

// GetVideo returns the job view, or gorm.ErrRecordNotFound.
func (s *Service) GetVideo(id string) (models.VideoView, error) {
	var video models.Video
	if err := s.DB.First(&video, "id = ?", id).Error; err != nil {
		return models.VideoView{}, err
	}
	return video.View(), nil
}

// ListVideos returns all job views, newest first.
func (s *Service) ListVideos() ([]models.VideoView, error) {
	var videos []models.Video
	if err := s.DB.Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	views := make([]models.VideoView, 0, len(videos))
	for i := range videos {
		views = append(views, videos[i].View())
	}
	return views, nil
}

// VideoFilePath returns the rendered file path for a completed job. Existence
// is re-checked at read time since the file may have been removed externally.
func (s *Service) VideoFilePath(id string) (string, error) {
	var video models.Video
	if err := s.DB.First(&video, "id = ?", id).Error; err != nil {
		return "", err
	}
	if video.Status != models.StatusCompleted || video.VideoPath == "" {
		return "", nil
	}
	if _, err := os.Stat(video.VideoPath); err != nil {
		return "", nil
	}
	return video.VideoPath, nil
}

// DeleteVideo removes the video file (best effort) and the job record.
// Returns false when the job does not exist.
func (s *Service) DeleteVideo(id string) (bool, error) {
	var video models.Video
	if err := s.DB.First(&video, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	if video.VideoPath != "" {
		if err := os.Remove(video.VideoPath); err != nil && !os.IsNotExist(err) {
			log.Warnf("Could not remove video file for %s: %v", id, err)
		}
	}

	if err := s.DB.Delete(&models.Video{}, "id = ?", id).Error; err != nil {
		return false, err
	}
	return true, nil
}

func normalizeAspect(aspect string) string {
	if aspect == models.AspectVertical || aspect == models.AspectHorizontal {
		return aspect
	}
	return models.AspectHorizontal
}

func normalizeTemplate(template string) string {
	if template == "" {
		return defaultTemplate
	}
	return template
}
