package views

import (
	"context"
	"fmt"

	"github.com/radieske/sports-bet-clients/internal/shared/cascade"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

// Markets navega torneio -> partida -> mercado -> odds e abre/trava mercados.
type Markets struct {
	env     Env
	Chain   *cascade.Chain
	Message string
}

func NewMarkets(env Env) *Markets {
	return &Markets{env: env, Chain: cascade.New(env.API, true)}
}

func (v *Markets) Load(ctx context.Context) error {
	return v.run(v.Chain.Load(ctx))
}

func (v *Markets) SelectTournament(ctx context.Context, id int64) error {
	return v.run(v.Chain.SelectTournament(ctx, id))
}

func (v *Markets) SelectMatch(ctx context.Context, id int64) error {
	return v.run(v.Chain.SelectMatch(ctx, id))
}

func (v *Markets) SelectMarket(ctx context.Context, id int64) error {
	return v.run(v.Chain.SelectMarket(ctx, id))
}

// SetStatus troca OPEN/LOCKED e recarrega só a partida selecionada, mesmo se a escrita falhar.
func (v *Markets) SetStatus(ctx context.Context, marketID int64, status resources.MarketStatus) error {
	v.Message = ""
	_, werr := v.env.API.UpdateMarketStatus(ctx, marketID, status)
	if werr == nil {
		v.env.publish(ctx, "market", marketID, string(status))
	}
	lerr := v.run(v.Chain.ReloadMatch(ctx))
	if werr != nil {
		v.Message = v.env.message(werr, "market.failed")
		return fmt.Errorf("update market %d: %w", marketID, werr)
	}
	return lerr
}

func (v *Markets) run(err error) error {
	if err != nil {
		v.Message = v.env.message(err, "load.failed")
	}
	return err
}
