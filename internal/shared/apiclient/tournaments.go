package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
	"github.com/radieske/sports-bet-clients/pkg/contracts/routes"
)

func (c *Client) Tournaments(ctx context.Context) ([]resources.Tournament, error) {
	var out []resources.Tournament
	err := c.doJSON(ctx, http.MethodGet, routes.Tournaments, nil, nil, &out)
	return out, err
}

// CreateTournament não valida starts_at < ends_at; o servidor decide.
func (c *Client) CreateTournament(ctx context.Context, in resources.TournamentCreate) (resources.Tournament, error) {
	var out resources.Tournament
	err := c.doJSON(ctx, http.MethodPost, routes.Tournaments, nil, in, &out)
	return out, err
}

func (c *Client) Matches(ctx context.Context, tournamentID int64) ([]resources.Match, error) {
	var out []resources.Match
	err := c.doJSON(ctx, http.MethodGet, routes.TournamentMatches(tournamentID), nil, nil, &out)
	return out, err
}

func (c *Client) Markets(ctx context.Context, matchID int64) ([]resources.Market, error) {
	var out []resources.Market
	err := c.doJSON(ctx, http.MethodGet, routes.MatchMarkets(matchID), nil, nil, &out)
	return out, err
}

// UpdateMarketStatus alterna um mercado entre OPEN e LOCKED.
func (c *Client) UpdateMarketStatus(ctx context.Context, marketID int64, status resources.MarketStatus) (resources.Market, error) {
	if status != resources.MarketOpen && status != resources.MarketLocked {
		return resources.Market{}, fmt.Errorf("market %d -> %s: %w", marketID, status, ErrInvalidDecision)
	}
	var out resources.Market
	err := c.doJSON(ctx, http.MethodPatch, routes.Market(marketID), nil, resources.MarketStatusUpdate{Status: status}, &out)
	return out, err
}

func (c *Client) Odds(ctx context.Context, marketID int64) ([]resources.Odd, error) {
	var out []resources.Odd
	err := c.doJSON(ctx, http.MethodGet, routes.MarketOdds(marketID), nil, nil, &out)
	return out, err
}
