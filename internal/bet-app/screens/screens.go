// Package screens são as telas do app de apostas, sem nenhuma dependência de terminal.
// Load busca os dados da tela; ações escrevem e guardam o resultado em Message.
package screens

import (
	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/feedback"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/internal/shared/nav"
)

const (
	Home     nav.Screen = "home"
	TopUp    nav.Screen = "topup"
	Balance  nav.Screen = "balance"
	Bets     nav.Screen = "bets"
	Withdraw nav.Screen = "withdraw"
	Profile  nav.Screen = "profile"
	MyBets   nav.Screen = "mybets"
)

// All são as telas que exigem sessão.
var All = []nav.Screen{Home, TopUp, Balance, Bets, Withdraw, Profile, MyBets}

type Env struct {
	API *apiclient.Client
	Tr  *i18n.Translator
}

func (e Env) message(err error, fallbackKey string) string {
	return feedback.Message(e.Tr, err, fallbackKey)
}
