package videos

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ameyarj/chima-ads/models"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

type ScrapeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// Scrape extracts product data for a URL without creating a job.
func (h *Handler) Scrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	product, err := h.Service.Scraper.Scrape(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

type GenerateVideoRequest struct {
	URL              string              `json:"url" binding:"omitempty,url"`
	ProductData      *models.ProductData `json:"productData"`
	AdScript         *models.AdScript    `json:"adScript"`
	AspectRatio      string              `json:"aspectRatio" binding:"omitempty,oneof=9:16 16:9"`
	Template         string              `json:"template"`
	VoiceoverEnabled *bool               `json:"voiceoverEnabled"`
	Voice            string              `json:"voice"`
	Speed            float64             `json:"speed"`
}

// Generate creates a job: scrape (if needed) and script generation run
// synchronously, rendering is queued.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ProductData == nil && req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product data or URL is required"})
		return
	}

	// Voiceover defaults to on, matching the UI.
	voiceoverEnabled := true
	if req.VoiceoverEnabled != nil {
		voiceoverEnabled = *req.VoiceoverEnabled
	}

	view, err := h.Service.CreateVideo(c.Request.Context(), GenerateRequest{
		URL:              req.URL,
		ProductData:      req.ProductData,
		AdScript:         req.AdScript,
		AspectRatio:      req.AspectRatio,
		Template:         req.Template,
		VoiceoverEnabled: voiceoverEnabled,
		Voice:            req.Voice,
		Speed:            req.Speed,
	})
	if err != nil {
		log.Errorf("Error creating video: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create video"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetVideo returns the job view for polling.
func (h *Handler) GetVideo(c *gin.Context) {
	view, err := h.Service.GetVideo(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListVideos returns all jobs, newest first.
func (h *Handler) ListVideos(c *gin.Context) {
	views, err := h.Service.ListVideos()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve videos"})
		return
	}
	c.JSON(http.StatusOK, views)
}

// Download serves the rendered file as an attachment.
func (h *Handler) Download(c *gin.Context) {
	id := c.Param("id")
	path, err := h.Service.VideoFilePath(id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video file not found"})
		return
	}

	c.Header("Content-Type", "video/mp4")
	c.FileAttachment(path, "video-"+id+".mp4")
}

// Stream serves the rendered file for playback. Byte-range requests get a 206
// with Content-Range via http.ServeContent underneath.
func (h *Handler) Stream(c *gin.Context) {
	path, err := h.Service.VideoFilePath(c.Param("id"))
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video file not found"})
		return
	}

	serveVideoFile(c, path)
}

// serveVideoFile streams a video with byte-range support. http.ServeContent
// underneath answers single-range requests with 206 and Content-Range.
func serveVideoFile(c *gin.Context, path string) {
	c.Header("Content-Type", "video/mp4")
	c.File(path)
}

// Delete removes the job and its video file.
func (h *Handler) Delete(c *gin.Context) {
	deleted, err := h.Service.DeleteVideo(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}
