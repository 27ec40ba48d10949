package httpapi

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/sports-bet-clients/internal/admin-backoffice/views"
	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/"+string(s.shell.Active()), http.StatusSeeOther)
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if s.shell.Authenticated() {
		http.Redirect(w, r, "/"+string(ScreenDashboard), http.StatusSeeOther)
		return
	}
	s.render(w, "login", s.login)
}

func (s *Server) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.login.Submit(r.Context(), s.shell, s.tr, r.PostForm.Get("email"), r.PostForm.Get("password")) {
		s.renderStatus(w, http.StatusUnauthorized, "login", s.login)
		return
	}
	s.login = views.NewLogin(s.tr)
	s.markets = nil
	http.Redirect(w, r, "/"+string(s.shell.Active()), http.StatusSeeOther)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.shell.Logout(r.Context()); err != nil {
		s.log.Error("logout", zap.Error(err))
	}
	s.markets = nil
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	s.activate(ScreenDashboard)
	v := views.NewDashboard(s.env())
	if err := v.Load(r.Context()); err != nil {
		s.loadFailed(ScreenDashboard, err)
	}
	s.render(w, "dashboard", v)
}

func (s *Server) topups(w http.ResponseWriter, r *http.Request) {
	s.activate(ScreenTopUps)
	v := views.NewTopUps(s.env())
	if err := v.Load(r.Context()); err != nil {
		s.loadFailed(ScreenTopUps, err)
	}
	s.render(w, "topups", v)
}

func (s *Server) reviewTopUp(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.activate(ScreenTopUps)
	v := views.NewTopUps(s.env())
	if err := v.Review(r.Context(), id, resources.TopUpStatus(r.FormValue("status"))); err != nil {
		s.log.Warn("review topup", zap.Int64("id", id), zap.Error(err))
	}
	s.render(w, "topups", v)
}

func (s *Server) withdrawals(w http.ResponseWriter, r *http.Request) {
	s.activate(ScreenWithdrawals)
	v := views.NewWithdrawals(s.env())
	if err := v.Load(r.Context()); err != nil {
		s.loadFailed(ScreenWithdrawals, err)
	}
	s.render(w, "withdrawals", v)
}

func (s *Server) reviewWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.activate(ScreenWithdrawals)
	v := views.NewWithdrawals(s.env())
	if err := v.Review(r.Context(), id, resources.WithdrawalStatus(r.FormValue("status"))); err != nil {
		s.log.Warn("review withdrawal", zap.Int64("id", id), zap.Error(err))
	}
	s.render(w, "withdrawals", v)
}

func (s *Server) tournaments(w http.ResponseWriter, r *http.Request) {
	s.activate(ScreenTournaments)
	v := views.NewTournaments(s.env(), s.now())
	if err := v.Load(r.Context()); err != nil {
		s.loadFailed(ScreenTournaments, err)
	}
	s.render(w, "tournaments", v)
}

func (s *Server) createTournament(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.activate(ScreenTournaments)
	v := views.NewTournaments(s.env(), s.now())
	f := forms.Tournament{
		Name:     r.PostForm.Get("name"),
		Company:  r.PostForm.Get("company_name"),
		StartsAt: r.PostForm.Get("starts_at"),
		EndsAt:   r.PostForm.Get("ends_at"),
	}
	if err := v.Create(r.Context(), f); err != nil {
		s.log.Warn("create tournament", zap.Error(err))
	}
	s.render(w, "tournaments", v)
}

// marketsPage sem parâmetros é uma nova ativação; com tournament/match/market
// continua a navegação da view já carregada.
func (s *Server) marketsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids, ok := queryIDs(w, q)
	if !ok {
		return
	}
	s.activate(ScreenMarkets)
	ctx := r.Context()

	var err error
	switch {
	case s.markets == nil || len(q) == 0:
		s.markets = views.NewMarkets(s.env())
		err = s.markets.Load(ctx)
	case q.Has("market"):
		err = s.markets.SelectMarket(ctx, ids["market"])
	case q.Has("match"):
		err = s.markets.SelectMatch(ctx, ids["match"])
	case q.Has("tournament"):
		err = s.markets.SelectTournament(ctx, ids["tournament"])
	}
	if err != nil {
		s.loadFailed(ScreenMarkets, err)
	}
	s.render(w, "markets", s.markets)
}

func (s *Server) updateMarket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.activate(ScreenMarkets)
	if s.markets == nil {
		s.markets = views.NewMarkets(s.env())
		if err := s.markets.Load(r.Context()); err != nil {
			s.loadFailed(ScreenMarkets, err)
		}
	}
	if err := s.markets.SetStatus(r.Context(), id, resources.MarketStatus(r.FormValue("status"))); err != nil {
		s.log.Warn("update market", zap.Int64("id", id), zap.Error(err))
	}
	s.render(w, "markets", s.markets)
}

func (s *Server) audit(w http.ResponseWriter, r *http.Request) {
	s.activate(ScreenAudit)
	v := views.NewAudit(s.env())
	if err := v.Load(r.Context()); err != nil {
		s.loadFailed(ScreenAudit, err)
	}
	s.render(w, "audit", v)
}

func (s *Server) legal(w http.ResponseWriter, r *http.Request) {
	s.activate(ScreenLegal)
	s.render(w, "legal", views.NewLegal(s.tr))
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// queryIDs lê tournament/match/market; qualquer valor não numérico é 400.
func queryIDs(w http.ResponseWriter, q url.Values) (map[string]int64, bool) {
	ids := map[string]int64{}
	for _, key := range []string{"tournament", "match", "market"} {
		if !q.Has(key) {
			continue
		}
		id, err := strconv.ParseInt(q.Get(key), 10, 64)
		if err != nil {
			http.Error(w, "invalid "+key, http.StatusBadRequest)
			return nil, false
		}
		ids[key] = id
	}
	return ids, true
}
