package screens

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

// HomeScreen mostra o saldo e as três primeiras partidas do primeiro torneio.
type HomeScreen struct {
	env     Env
	Balance decimal.Decimal
	Matches []resources.Match
	Message string
}

func NewHome(env Env) *HomeScreen { return &HomeScreen{env: env} }

func (s *HomeScreen) Load(ctx context.Context) error {
	b, err := s.env.API.Balance(ctx)
	if err != nil {
		s.Message = s.env.message(err, "load.failed")
		return err
	}
	s.Balance = b.Balance

	tournaments, err := s.env.API.Tournaments(ctx)
	if err != nil {
		s.Message = s.env.message(err, "load.failed")
		return err
	}
	if len(tournaments) == 0 {
		return nil
	}
	matches, err := s.env.API.Matches(ctx, tournaments[0].ID)
	if err != nil {
		s.Message = s.env.message(err, "load.failed")
		return err
	}
	if len(matches) > 3 {
		matches = matches[:3]
	}
	s.Matches = matches
	return nil
}
