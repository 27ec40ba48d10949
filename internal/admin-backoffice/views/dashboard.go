package views

import (
	"context"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

// Dashboard mostra as partidas do primeiro torneio e as operações do próprio operador.
type Dashboard struct {
	env         Env
	Matches     []resources.Match
	TopUps      []resources.TopUp
	Withdrawals []resources.Withdrawal
	Message     string
}

func NewDashboard(env Env) *Dashboard { return &Dashboard{env: env} }

func (v *Dashboard) Load(ctx context.Context) error {
	v.Message = ""
	tournaments, err := v.env.API.Tournaments(ctx)
	if err != nil {
		return v.fail(err)
	}
	if len(tournaments) > 0 {
		if v.Matches, err = v.env.API.Matches(ctx, tournaments[0].ID); err != nil {
			return v.fail(err)
		}
	}
	if v.TopUps, err = v.env.API.MyTopUps(ctx); err != nil {
		return v.fail(err)
	}
	if v.Withdrawals, err = v.env.API.MyWithdrawals(ctx); err != nil {
		return v.fail(err)
	}
	return nil
}

func (v *Dashboard) fail(err error) error {
	v.Message = v.env.message(err, "load.failed")
	return err
}
