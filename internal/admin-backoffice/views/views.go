// Package views são as telas do backoffice. Cada view busca seus dados em Load
// e cada ação faz uma escrita seguida de uma nova leitura, sem atualização otimista.
package views

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-bet-clients/internal/admin-backoffice/producer"
	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/feedback"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/pkg/contracts/events"
)

// Env é o que toda view recebe: o client da sessão atual e utilitários.
type Env struct {
	API    *apiclient.Client
	Tr     *i18n.Translator
	Events producer.Publisher
	Actor  string
	Log    *zap.Logger
}

func (e Env) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

func (e Env) message(err error, fallbackKey string) string {
	return feedback.Message(e.Tr, err, fallbackKey)
}

// publish avisa a decisão; nunca falha a ação do operador.
func (e Env) publish(ctx context.Context, entity string, id int64, status string) {
	if e.Events == nil {
		return
	}
	ev := events.ReviewDecided{
		Entity: entity, EntityID: id, Status: status, Actor: e.Actor,
		TsUnixMs: time.Now().UnixMilli(),
	}
	if err := e.Events.PublishReviewDecided(ctx, ev); err != nil {
		e.logger().Warn("review event", zap.String("entity", entity), zap.Int64("id", id), zap.Error(err))
	}
}
