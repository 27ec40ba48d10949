package routes

import "fmt"

const (
	// Auth
	Login    = "/auth/login"
	Register = "/auth/register"
	Refresh  = "/auth/refresh"

	// Torneios, partidas, mercados e odds
	Tournaments = "/tournaments"

	// Apostas
	Bets   = "/bets"
	MyBets = "/bets/me"

	// Carteira
	TopUps        = "/wallet/topups"
	MyTopUps      = "/wallet/topups/me"
	Withdrawals   = "/wallet/withdrawals"
	MyWithdrawals = "/wallet/withdrawals/me"
	MyBalance     = "/wallet/balance/me"
	MyLedger      = "/wallet/ledger/me"

	// KYC e admin
	MyKYC = "/kyc/me"
	Audit = "/admin/audit"
)

func TournamentMatches(tournamentID int64) string {
	return fmt.Sprintf("/tournaments/%d/matches", tournamentID)
}

func MatchMarkets(matchID int64) string {
	return fmt.Sprintf("/tournaments/matches/%d/markets", matchID)
}

func Market(marketID int64) string {
	return fmt.Sprintf("/tournaments/markets/%d", marketID)
}

func MarketOdds(marketID int64) string {
	return fmt.Sprintf("/tournaments/markets/%d/odds", marketID)
}

func TopUp(id int64) string {
	return fmt.Sprintf("/wallet/topups/%d", id)
}

func Withdrawal(id int64) string {
	return fmt.Sprintf("/wallet/withdrawals/%d", id)
}

// Label normaliza um path concreto para a rota com {id}, evitando cardinalidade alta nas métricas.
func Label(path string) string {
	out := make([]byte, 0, len(path))
	inDigits := false
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c >= '0' && c <= '9' && (i == 0 || path[i-1] == '/' || inDigits) {
			if !inDigits {
				out = append(out, "{id}"...)
				inDigits = true
			}
			continue
		}
		inDigits = false
		out = append(out, c)
	}
	return string(out)
}
