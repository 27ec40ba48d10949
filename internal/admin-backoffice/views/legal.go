package views

import "github.com/radieske/sports-bet-clients/internal/shared/i18n"

// Legal é texto fixo, sem busca.
type Legal struct {
	Title      string
	Paragraphs []string
}

func NewLegal(tr *i18n.Translator) *Legal {
	return &Legal{
		Title:      tr.T("legal.title"),
		Paragraphs: []string{tr.T("legal.adults"), tr.T("legal.balance"), tr.T("legal.bets")},
	}
}
