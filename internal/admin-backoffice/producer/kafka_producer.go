package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/sports-bet-clients/pkg/contracts/events"
)

// Publisher recebe as decisões do backoffice. Falhas são do chamador decidir; as views só logam.
type Publisher interface {
	PublishReviewDecided(ctx context.Context, e events.ReviewDecided) error
}

// MessageWriter é o que o publisher usa do *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
	Topic  string
}

func NewKafkaPublisher(w MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

func (p *KafkaPublisher) PublishReviewDecided(ctx context.Context, e events.ReviewDecided) error {
	if e.TsUnixMs == 0 {
		e.TsUnixMs = time.Now().UnixMilli()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode review decided: %w", err)
	}
	// chave por entidade mantém a ordem das decisões de um mesmo item
	key := e.Entity + ":" + strconv.FormatInt(e.EntityID, 10)
	if err := p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b}); err != nil {
		return fmt.Errorf("publish %s to %s: %w", key, p.Topic, err)
	}
	return nil
}

// Nop descarta tudo; usado quando KAFKA_BROKERS está vazio.
type Nop struct{}

func (Nop) PublishReviewDecided(context.Context, events.ReviewDecided) error { return nil }

// Logged envolve um Publisher e só loga falhas, sem propagar.
type Logged struct {
	Next Publisher
	Log  *zap.Logger
}

func (l Logged) PublishReviewDecided(ctx context.Context, e events.ReviewDecided) error {
	if err := l.Next.PublishReviewDecided(ctx, e); err != nil {
		l.Log.Warn("review event not published",
			zap.String("entity", e.Entity),
			zap.Int64("entity_id", e.EntityID),
			zap.Error(err),
		)
	}
	return nil
}
