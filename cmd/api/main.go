package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ameyarj/chima-ads/internal/config"
	"github.com/ameyarj/chima-ads/internal/platform"
	"github.com/ameyarj/chima-ads/processing"
	"github.com/ameyarj/chima-ads/scraping"
	"github.com/ameyarj/chima-ads/videos"
)

type Server struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
}

func NewServer(cfg *config.Config) (*Server, error) {
	// Use the shared connection initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()

	generator, err := processing.NewGenerator(cfg)
	if err != nil {
		return nil, err
	}

	router := gin.Default()

	// CORS for the polling frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", os.Getenv("FRONTEND_URL"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	server := &Server{
		DB:     db,
		Redis:  rdb,
		Router: router,
	}

	scraper := scraping.NewScraper(nil)
	service := videos.NewService(db, rdb, scraper, generator)
	server.setupRoutes(videos.NewHandler(service))

	return server, nil
}

func (s *Server) setupRoutes(videoHandler *videos.Handler) {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		sqlDB, err := s.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		if err := sqlDB.Ping(); err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"status":   "healthy",
			"database": "connected",
		})
	})

	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Chima Ads API v1"})
	})

	api := s.Router.Group("/api")
	{
		api.POST("/scrape", videoHandler.Scrape)
		api.POST("/generate-video", videoHandler.Generate)
		api.GET("/videos", videoHandler.ListVideos)
		api.GET("/video/:id", videoHandler.GetVideo)
		api.GET("/video/:id/download", videoHandler.Download)
		api.GET("/video/:id/file", videoHandler.Stream)
		api.DELETE("/video/:id", videoHandler.Delete)
	}
}

func (s *Server) Run() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Infof("Server starting on port %s", port)
	return s.Router.Run(":" + port)
}

func main() {
	cfg := config.Load()

	server, err := NewServer(cfg)
	if err != nil {
		log.Fatal("Failed to create server: ", err)
	}

	if err := server.Run(); err != nil {
		log.Fatal("Failed to run server: ", err)
	}
}
