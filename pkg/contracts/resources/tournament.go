package resources

import "github.com/shopspring/decimal"

type MarketStatus string

const (
	MarketOpen   MarketStatus = "OPEN"
	MarketLocked MarketStatus = "LOCKED"
)

type Tournament struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	StartsAt    Timestamp `json:"starts_at"`
	EndsAt      Timestamp `json:"ends_at"`
	Status      string    `json:"status"`
}

// TournamentCreate é o corpo de POST /tournaments.
type TournamentCreate struct {
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	StartsAt    Timestamp `json:"starts_at"`
	EndsAt      Timestamp `json:"ends_at"`
	Status      string    `json:"status"`
}

type Match struct {
	ID           int64     `json:"id"`
	TournamentID int64     `json:"tournament_id"`
	HomeTeamID   int64     `json:"home_team_id"`
	AwayTeamID   int64     `json:"away_team_id"`
	ScheduledAt  Timestamp `json:"scheduled_at"`
	State        string    `json:"state"`
	HomeScore    int       `json:"home_score"`
	AwayScore    int       `json:"away_score"`
	Locked       bool      `json:"locked_bool"`
}

type Market struct {
	ID      int64             `json:"id"`
	MatchID int64             `json:"match_id"`
	Type    string            `json:"type"`
	Line    Optional[float64] `json:"line"`
	Status  MarketStatus      `json:"status"`
}

// MarketStatusUpdate é o corpo de PATCH /tournaments/markets/{id}.
type MarketStatusUpdate struct {
	Status MarketStatus `json:"status"`
}

type Odd struct {
	ID        int64           `json:"id"`
	MarketID  int64           `json:"market_id"`
	Selection string          `json:"selection"`
	Price     decimal.Decimal `json:"price"`
}
