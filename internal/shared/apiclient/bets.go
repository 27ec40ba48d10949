package apiclient

import (
	"context"
	"net/http"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
	"github.com/radieske/sports-bet-clients/pkg/contracts/routes"
)

// PlaceBet registra uma aposta. Saldo, mercado aberto e horário de corte são validados no servidor.
func (c *Client) PlaceBet(ctx context.Context, in resources.PlaceBet) (resources.Bet, error) {
	var out resources.Bet
	err := c.doJSON(ctx, http.MethodPost, routes.Bets, nil, in, &out)
	return out, err
}

func (c *Client) MyBets(ctx context.Context) ([]resources.Bet, error) {
	var out []resources.Bet
	err := c.doJSON(ctx, http.MethodGet, routes.MyBets, nil, nil, &out)
	return out, err
}
