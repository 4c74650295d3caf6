package main

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/ameyarj/chima-ads/internal/config"
	"github.com/ameyarj/chima-ads/internal/platform"
	"github.com/ameyarj/chima-ads/processing"
	"github.com/ameyarj/chima-ads/rendering"
	"github.com/ameyarj/chima-ads/tasks"
	"github.com/ameyarj/chima-ads/worker"
)

func main() {
	cfg := config.Load()

	// Use the shared initializers
	db := platform.NewDBConnection()
	rdb := platform.NewRedisClient()
	ctx := context.Background()

	synth, err := processing.NewSynthesizer(cfg)
	if err != nil {
		log.Fatalf("Failed to create synthesizer: %v", err)
	}

	renderer, err := rendering.NewRenderer(cfg.VideosDir, cfg.RemotionDir)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	p := worker.NewProcessor(db, rdb, synth, renderer, cfg.RenderFailureMode)
	p.Register(tasks.QueueVideoRender, p.HandleRenderVideo)

	// Reconciliation sweep for jobs orphaned by a crash mid-render.
	c := cron.New()
	if _, err := c.AddFunc("@every 10m", p.SweepStaleJobs); err != nil {
		log.Fatalf("Failed to schedule stale job sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Fixed listener pool bounds concurrent renders.
	for i := 0; i < cfg.WorkerConcurrency; i++ {
		go p.Listen(ctx, tasks.QueueVideoRender)
	}

	log.Infof("Worker started with %d listeners, waiting for queue tasks...", cfg.WorkerConcurrency)
	// Keep the main thread alive
	select {}
}
