package resources

import "github.com/shopspring/decimal"

// PlaceBet é o corpo de POST /bets. Stake vai como string numérica.
type PlaceBet struct {
	MarketID  int64           `json:"market_id"`
	Selection string          `json:"selection"`
	Stake     decimal.Decimal `json:"stake"`
}

type Bet struct {
	ID              int64               `json:"id"`
	MarketID        int64               `json:"market_id"`
	Selection       string              `json:"selection"`
	Stake           decimal.Decimal     `json:"stake"`
	PriceAtBet      decimal.Decimal     `json:"price_at_bet"`
	PotentialReturn decimal.Decimal     `json:"potential_return"`
	Status          string              `json:"status"`
	PlacedAt        Timestamp           `json:"placed_at"`
	SettledAt       Optional[Timestamp] `json:"settled_at"`
}
