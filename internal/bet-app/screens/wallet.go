package screens

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

type TopUpScreen struct {
	env     Env
	Form    forms.TopUp
	Message string
}

func NewTopUp(env Env) *TopUpScreen {
	return &TopUpScreen{env: env, Form: forms.TopUp{Amount: "100", BankName: "Banco Demo", RefNumber: "REF123"}}
}

// Submit envia a recarga com o comprovante. Sem comprovante nada é enviado.
func (s *TopUpScreen) Submit(ctx context.Context, f forms.TopUp, proof *apiclient.Proof) error {
	s.Form = f
	s.Message = ""
	if err := forms.Validate(f); err != nil {
		s.Message = s.env.message(err, "topup.failed")
		return err
	}
	if proof == nil {
		s.Message = s.env.message(apiclient.ErrMissingProof, "topup.failed")
		return apiclient.ErrMissingProof
	}
	_, err := s.env.API.SubmitTopUp(ctx, apiclient.TopUpSubmission{
		Amount:    decimal.RequireFromString(f.Amount),
		BankName:  f.BankName,
		RefNumber: f.RefNumber,
		Proof:     proof,
	})
	if err != nil {
		s.Message = s.env.message(err, "topup.failed")
		return fmt.Errorf("submit topup: %w", err)
	}
	s.Message = s.env.Tr.T("topup.sent")
	return nil
}

type BalanceScreen struct {
	env     Env
	Balance decimal.Decimal
	Entries []resources.LedgerEntry
	Message string
}

func NewBalance(env Env) *BalanceScreen { return &BalanceScreen{env: env} }

func (s *BalanceScreen) Load(ctx context.Context) error {
	b, err := s.env.API.Balance(ctx)
	if err != nil {
		s.Message = s.env.message(err, "load.failed")
		return err
	}
	s.Balance = b.Balance
	entries, err := s.env.API.Ledger(ctx)
	if err != nil {
		s.Message = s.env.message(err, "load.failed")
		return err
	}
	s.Entries = entries
	return nil
}

type WithdrawScreen struct {
	env     Env
	Form    forms.Withdrawal
	Message string
}

func NewWithdraw(env Env) *WithdrawScreen {
	return &WithdrawScreen{env: env, Form: forms.Withdrawal{Amount: "100", BankAlias: "CBU123", BankHolder: "Mi Nombre"}}
}

func (s *WithdrawScreen) Submit(ctx context.Context, f forms.Withdrawal) error {
	s.Form = f
	s.Message = ""
	if err := forms.Validate(f); err != nil {
		s.Message = s.env.message(err, "withdraw.failed")
		return err
	}
	_, err := s.env.API.RequestWithdrawal(ctx, resources.WithdrawalCreate{
		Amount:     decimal.RequireFromString(f.Amount),
		BankAlias:  f.BankAlias,
		BankHolder: f.BankHolder,
	})
	if err != nil {
		s.Message = s.env.message(err, "withdraw.failed")
		return fmt.Errorf("request withdrawal: %w", err)
	}
	s.Message = s.env.Tr.T("withdraw.sent")
	return nil
}
