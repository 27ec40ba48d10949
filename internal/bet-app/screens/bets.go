package screens

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/radieske/sports-bet-clients/internal/shared/cascade"
	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

// BetsScreen navega os mercados e registra apostas. O stake é texto e precisa ser numérico.
type BetsScreen struct {
	env     Env
	Chain   *cascade.Chain
	Stake   string
	Message string
}

func NewBets(env Env) *BetsScreen {
	return &BetsScreen{env: env, Chain: cascade.New(env.API, true), Stake: "50"}
}

func (s *BetsScreen) Load(ctx context.Context) error {
	return s.run(s.Chain.Load(ctx))
}

func (s *BetsScreen) SelectTournament(ctx context.Context, id int64) error {
	return s.run(s.Chain.SelectTournament(ctx, id))
}

func (s *BetsScreen) SelectMatch(ctx context.Context, id int64) error {
	return s.run(s.Chain.SelectMatch(ctx, id))
}

func (s *BetsScreen) SelectMarket(ctx context.Context, id int64) error {
	return s.run(s.Chain.SelectMarket(ctx, id))
}

// Place envia {market_id, selection, stake}. Recusas de negócio mostram o detail do servidor.
func (s *BetsScreen) Place(ctx context.Context, f forms.Bet) error {
	s.Stake = f.Stake
	s.Message = ""
	if err := forms.Validate(f); err != nil {
		s.Message = s.env.message(err, "bet.failed")
		return err
	}
	_, err := s.env.API.PlaceBet(ctx, resources.PlaceBet{
		MarketID:  f.MarketID,
		Selection: f.Selection,
		Stake:     decimal.RequireFromString(f.Stake),
	})
	if err != nil {
		s.Message = s.env.message(err, "bet.failed")
		return fmt.Errorf("place bet on market %d: %w", f.MarketID, err)
	}
	s.Message = s.env.Tr.T("bet.placed")
	return nil
}

func (s *BetsScreen) run(err error) error {
	if err != nil {
		s.Message = s.env.message(err, "load.failed")
	}
	return err
}

type MyBetsScreen struct {
	env     Env
	Items   []resources.Bet
	Message string
}

func NewMyBets(env Env) *MyBetsScreen { return &MyBetsScreen{env: env} }

func (s *MyBetsScreen) Load(ctx context.Context) error {
	items, err := s.env.API.MyBets(ctx)
	if err != nil {
		s.Message = s.env.message(err, "load.failed")
		return err
	}
	s.Items = items
	return nil
}
