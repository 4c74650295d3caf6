package worker

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ameyarj/chima-ads/processing"
	"github.com/ameyarj/chima-ads/rendering"
	"github.com/ameyarj/chima-ads/tasks"
)

// TaskHandler is a function that processes a task payload.
type TaskHandler func(ctx context.Context, payload string) error

// Processor holds dependencies and registered task handlers.
type Processor struct {
	DB          *gorm.DB
	RDB         *redis.Client
	Synthesizer *processing.Synthesizer
	Renderer    *rendering.Renderer
	FailureMode string
	handlers    map[string]TaskHandler
}

// NewProcessor creates a new worker processor.
func NewProcessor(db *gorm.DB, rdb *redis.Client, synth *processing.Synthesizer, renderer *rendering.Renderer, failureMode string) *Processor {
	return &Processor{
		DB:          db,
		RDB:         rdb,
		Synthesizer: synth,
		Renderer:    renderer,
		FailureMode: failureMode,
		handlers:    make(map[string]TaskHandler),
	}
}

// Register maps a queue name (task type) to a handler function.
func (p *Processor) Register(queueName string, handler TaskHandler) {
	p.handlers[queueName] = handler
	log.Infof("Registered handler for queue: %s", queueName)
}

// Enqueue is a helper to add a new task to a queue.
func (p *Processor) Enqueue(ctx context.Context, queueName string, payload interface{}) error {
	payloadStr, err := tasks.Marshal(payload)
	if err != nil {
		return err
	}
	return p.RDB.LPush(ctx, queueName, payloadStr).Err()
}

// Listen consumes tasks from the registered queues until the context is
// cancelled. Run it from a fixed number of goroutines to bound how many
// renders execute concurrently.
func (p *Processor) Listen(ctx context.Context, queueNames ...string) {
	log.Infof("Worker listening on %d queues: %v", len(queueNames), queueNames)

	for {
		if ctx.Err() != nil {
			return
		}

		// BRPop blocks until a task is available on any of the listed queues.
		result, err := p.RDB.BRPop(ctx, 5*time.Second, queueNames...).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Errorf("Error popping from queue: %v", err)
			time.Sleep(time.Second)
			continue
		}

		// result[0] is the queue name, result[1] is the payload
		queueName := result[0]
		payload := result[1]

		handler, ok := p.handlers[queueName]
		if !ok {
			log.Errorf("No handler registered for queue %s", queueName)
			continue
		}

		log.Infof("Received task from queue %s", queueName)

		if err := handler(ctx, payload); err != nil {
			log.Errorf("Error processing task from %s: %v", queueName, err)
		}
	}
}
