package views

import (
	"context"
	"fmt"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

// Withdrawals lista os saques solicitados para pagar ou rejeitar.
type Withdrawals struct {
	env     Env
	Items   []resources.Withdrawal
	Message string
}

func NewWithdrawals(env Env) *Withdrawals { return &Withdrawals{env: env} }

func (v *Withdrawals) Load(ctx context.Context) error {
	items, err := v.env.API.Withdrawals(ctx, resources.WithdrawalRequested)
	if err != nil {
		v.Message = v.env.message(err, "load.failed")
		return err
	}
	v.Items = items
	return nil
}

func (v *Withdrawals) Review(ctx context.Context, id int64, status resources.WithdrawalStatus) error {
	v.Message = ""
	_, werr := v.env.API.ReviewWithdrawal(ctx, id, status)
	if werr == nil {
		v.env.publish(ctx, "withdrawal", id, string(status))
	}
	lerr := v.Load(ctx)
	if werr != nil {
		v.Message = v.env.message(werr, "review.failed")
		return fmt.Errorf("review withdrawal %d: %w", id, werr)
	}
	return lerr
}
