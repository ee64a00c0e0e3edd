package kafka

import (
	"academy-dashboard/config"
	"academy-dashboard/logger"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	consumerMutex   sync.Mutex
	consumerCancel  context.CancelFunc
	consumerRunning bool
	emailProcessor  func(map[string]interface{}) error
)

// RegisterEmailProcessor sets the function invoked for each email.send event
func RegisterEmailProcessor(fn func(map[string]interface{}) error) {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()
	emailProcessor = fn
}

// StartConsumer begins draining the emails topic in a background goroutine.
// No-op when Kafka is disabled.
func StartConsumer() {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()

	if consumerRunning || config.AppConfig.KafkaBrokers == "" {
		return
	}

	brokers := validBrokers()
	if len(brokers) == 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	consumerCancel = cancel
	consumerRunning = true

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  "academy-dashboard-emails",
		Topic:    "emails",
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  2 * time.Second,
	})

	go func() {
		defer reader.Close()
		logger.Info("Kafka email consumer started")

		for {
			msg, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					logger.Info("Kafka email consumer stopped")
					return
				}
				logger.Warn("Kafka consumer read error: %v", err)
				time.Sleep(2 * time.Second)
				continue
			}

			var event map[string]interface{}
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Error("Invalid email event payload: %v", err)
				_ = StoreDLQMessage(msg.Topic, string(msg.Key), msg.Value, err.Error())
				continue
			}

			consumerMutex.Lock()
			processor := emailProcessor
			consumerMutex.Unlock()

			if processor == nil {
				logger.Warn("No email processor registered, dropping event")
				continue
			}

			if err := processor(event); err != nil {
				logger.Error("Email event processing failed: %v", err)
				_ = StoreDLQMessage(msg.Topic, string(msg.Key), msg.Value, err.Error())
			}
		}
	}()
}

// StopConsumer stops the background consumer
func StopConsumer() {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()

	if consumerCancel != nil {
		consumerCancel()
		consumerCancel = nil
	}
	consumerRunning = false
}

// IsConsumerRunning reports whether the consumer loop is active
func IsConsumerRunning() bool {
	consumerMutex.Lock()
	defer consumerMutex.Unlock()
	return consumerRunning
}
