package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topics for quiz domain events.
const (
	TopicAttemptCompleted = "quiz.attempt.completed"
	TopicQuestionCreated  = "quiz.question.created"
	TopicQuestionDeleted  = "quiz.question.deleted"
)

type AttemptCompletedEvent struct {
	AttemptID      uint      `json:"attemptId"`
	QuizID         uint      `json:"quizId"`
	UserID         uint      `json:"userId"`
	Score          int       `json:"score"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

type QuestionCreatedEvent struct {
	QuestionID uint `json:"questionId"`
	QuizID     uint `json:"quizId"`
	SubjectID  uint `json:"subjectId"`
	OrderNum   int  `json:"orderNum"`
}

type QuestionDeletedEvent struct {
	QuestionID uint `json:"questionId"`
	QuizID     uint `json:"quizId"`
	OrderNum   int  `json:"orderNum"`
}

// EventPublisher publishes domain events. Publishing is best-effort at call
// sites: services log failures and keep going.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
	Close() error
}

type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewGoChannelPublisher builds an in-process publisher, the default when no
// broker is configured.
func NewGoChannelPublisher(logger *slog.Logger) EventPublisher {
	return &watermillPublisher{
		publisher: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger)),
		logger:    logger,
	}
}

// NewKafkaPublisher builds a Kafka-backed publisher for deployments with
// KAFKA_BROKERS configured.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (EventPublisher, error) {
	pub, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	return &watermillPublisher{
		publisher: pub,
		logger:    logger,
	}, nil
}

func (p *watermillPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	p.logger.Debug("event published", "topic", topic, "message_id", msg.UUID)
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}
