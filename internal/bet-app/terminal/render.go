package terminal

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/radieske/sports-bet-clients/internal/bet-app/screens"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

const dateLayout = "02/01/2006 15:04"

func message(w io.Writer, msg string) {
	if msg != "" {
		fmt.Fprintln(w, "! "+msg)
	}
}

func title(w io.Writer, tr *i18n.Translator, key string) {
	fmt.Fprintln(w, "== "+tr.T(key))
}

func renderHome(w io.Writer, tr *i18n.Translator, s *screens.HomeScreen) {
	title(w, tr, "home.title")
	message(w, s.Message)
	fmt.Fprintln(w, tr.T("home.balance", s.Balance.String()))
	fmt.Fprintln(w, tr.T("home.matches"))
	for _, m := range s.Matches {
		fmt.Fprintf(w, "  #%d – %s – %s: %s\n", m.ID, m.ScheduledAt.Local().Format(dateLayout), tr.T("label.state"), m.State)
	}
}

func renderBalance(w io.Writer, tr *i18n.Translator, s *screens.BalanceScreen) {
	title(w, tr, "balance.title")
	message(w, s.Message)
	fmt.Fprintln(w, tr.T("balance.balance", s.Balance.String()))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, tr.T("balance.header"))
	for _, e := range s.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreatedAt.Local().Format(dateLayout), e.Type, e.Amount, e.BalanceAfter)
	}
	_ = tw.Flush()
}

func renderBets(w io.Writer, tr *i18n.Translator, s *screens.BetsScreen) {
	title(w, tr, "bets.title")
	message(w, s.Message)
	c := s.Chain
	if c.Tournaments != nil {
		fmt.Fprintln(w, tr.T("bets.tournaments"))
		for _, t := range c.Tournaments.Items {
			fmt.Fprintf(w, "  %s %d %s\n", mark(c.Tournaments.Selected, t.ID), t.ID, t.Name)
		}
	}
	if c.Matches != nil {
		fmt.Fprintln(w, tr.T("bets.matches"))
		for _, m := range c.Matches.Items {
			fmt.Fprintf(w, "  %s %d %s %s\n", mark(c.Matches.Selected, m.ID), m.ID, m.ScheduledAt.Local().Format(dateLayout), m.State)
		}
	}
	if c.Markets != nil {
		fmt.Fprintln(w, tr.T("bets.markets"))
		for _, m := range c.Markets.Items {
			fmt.Fprintf(w, "  %s %d %s %s\n", mark(c.Markets.Selected, m.ID), m.ID, m.Type, m.Status)
		}
	}
	if c.Odds != nil {
		fmt.Fprintln(w, tr.T("bets.odds"))
		for _, o := range c.Odds.Items {
			fmt.Fprintf(w, "  %s: %s\n", o.Selection, o.Price)
		}
	}
	fmt.Fprintln(w, tr.T("bets.stake", s.Stake))
}

func mark(sel resources.Optional[int64], id int64) string {
	if v, ok := sel.Get(); ok && v == id {
		return "*"
	}
	return " "
}

func renderMyBets(w io.Writer, tr *i18n.Translator, s *screens.MyBetsScreen) {
	title(w, tr, "mybets.title")
	message(w, s.Message)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, tr.T("mybets.header"))
	for _, b := range s.Items {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n", b.ID, b.MarketID, b.Selection, b.Stake, b.PriceAtBet, b.Status)
	}
	_ = tw.Flush()
}

func renderProfile(w io.Writer, tr *i18n.Translator, s *screens.ProfileScreen) {
	title(w, tr, "profile.title")
	message(w, s.Message)
	fmt.Fprintln(w, tr.T("profile.document", s.KYC.DocType.OrElse("-"), s.KYC.DocNumber.OrElse("-")))
	fmt.Fprintln(w, tr.T("profile.status", s.Verified()))
	fmt.Fprintln(w, tr.T("profile.notice"))
}
