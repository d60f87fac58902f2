package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	amqp "github.com/rabbitmq/amqp091-go"

	"meetingflow/internal/config"
	"meetingflow/internal/jobs"
	"meetingflow/internal/logger"
	"meetingflow/internal/meeting"
)

// Downloader fetches a recording from object storage into a local file.
// *objectstore.Client is the production implementation.
type Downloader interface {
	Download(ctx context.Context, bucket, key, localPath string) error
}

// recordingCompleted is the event the meeting backend publishes when a
// recording has been uploaded to object storage.
type recordingCompleted struct {
	MeetingID    string                `json:"meetingId"`
	RoomID       string                `json:"roomId"`
	VideoBucket  string                `json:"videoBucket"`
	VideoKey     string                `json:"videoKey"`
	Participants []meeting.Participant `json:"participants"`
}

// Consumer listens for recording.completed events and feeds them into the
// job runner.
type Consumer struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	queue    string
	inputDir string
	runner   jobs.Runner
	storage  Downloader
	logger   logger.Logger
}

// New connects to the broker and declares the exchange/queue pair. A
// failure here is fatal to broker-driven intake only; the HTTP surface
// keeps working without it.
func New(cfg config.RabbitMQConfig, inputDir string, runner jobs.Runner, storage Downloader, log logger.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	queue, err := channel.QueueDeclare(cfg.Queue, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := channel.QueueBind(queue.Name, cfg.Queue, cfg.Exchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &Consumer{
		conn:     conn,
		channel:  channel,
		queue:    queue.Name,
		inputDir: inputDir,
		runner:   runner,
		storage:  storage,
		logger:   log,
	}, nil
}

// Start consumes events until the context is cancelled or the channel dies.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.logger.Info(ctx, "RabbitMQ consumer started, listening on queue %q", c.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handle(ctx, delivery)
		}
	}
}

// Close tears the broker connection down gracefully.
func (c *Consumer) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// handle processes one recording.completed event: download the recording,
// submit the job, ack. Failures nack with requeue so a transient storage
// outage does not lose recordings.
func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	var event recordingCompleted
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		c.logger.Error(ctx, "Malformed recording event, dropping: %v", err)
		_ = delivery.Nack(false, false)
		return
	}

	c.logger.Info(ctx, "Received recording.completed for meeting %s (%d participants)",
		event.MeetingID, len(event.Participants))

	localPath := filepath.Join(c.inputDir, filepath.Base(event.VideoKey))
	if err := c.storage.Download(ctx, event.VideoBucket, event.VideoKey, localPath); err != nil {
		c.logger.Error(ctx, "Download recording for meeting %s: %v", event.MeetingID, err)
		_ = delivery.Nack(false, true)
		return
	}

	_, err := c.runner.Submit(ctx, jobs.SubmitRequest{
		InputPath:    localPath,
		MeetingID:    event.MeetingID,
		Participants: event.Participants,
	})
	if err != nil {
		c.logger.Error(ctx, "Submit job for meeting %s: %v", event.MeetingID, err)
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
}
