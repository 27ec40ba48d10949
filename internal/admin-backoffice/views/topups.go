package views

import (
	"context"
	"fmt"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

// TopUps lista as recargas pendentes para aprovação manual.
type TopUps struct {
	env     Env
	Items   []resources.TopUp
	Message string
}

func NewTopUps(env Env) *TopUps { return &TopUps{env: env} }

func (v *TopUps) Load(ctx context.Context) error {
	items, err := v.env.API.TopUps(ctx, resources.TopUpPending)
	if err != nil {
		v.Message = v.env.message(err, "load.failed")
		return err
	}
	v.Items = items
	return nil
}

// Review aprova ou rejeita e recarrega a lista; itens revisados saem do filtro PENDING.
func (v *TopUps) Review(ctx context.Context, id int64, status resources.TopUpStatus) error {
	v.Message = ""
	_, werr := v.env.API.ReviewTopUp(ctx, id, status)
	if werr == nil {
		v.env.publish(ctx, "topup", id, string(status))
	}
	lerr := v.Load(ctx)
	// a recusa da escrita prevalece sobre uma falha da releitura
	if werr != nil {
		v.Message = v.env.message(werr, "review.failed")
		return fmt.Errorf("review topup %d: %w", id, werr)
	}
	return lerr
}
