package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)

	r.Post("/auth/login", s.login)
	r.Post("/auth/register", s.register)
	r.Post("/auth/refresh", s.refresh)

	r.Get("/tournaments", s.listTournaments)
	r.Post("/tournaments", s.createTournament)
	r.Get("/tournaments/{id}/matches", s.listMatches)
	r.Get("/tournaments/matches/{id}/markets", s.listMarkets)
	r.Patch("/tournaments/markets/{id}", s.updateMarket)
	r.Get("/tournaments/markets/{id}/odds", s.listOdds)

	r.Post("/bets", s.placeBet)
	r.Get("/bets/me", s.myBets)

	r.Get("/wallet/topups", s.listTopUps)
	r.Get("/wallet/topups/me", s.myTopUps)
	r.Post("/wallet/topups", s.submitTopUp)
	r.Patch("/wallet/topups/{id}", s.reviewTopUp)
	r.Get("/wallet/withdrawals", s.listWithdrawals)
	r.Get("/wallet/withdrawals/me", s.myWithdrawals)
	r.Post("/wallet/withdrawals", s.requestWithdrawal)
	r.Patch("/wallet/withdrawals/{id}", s.reviewWithdrawal)
	r.Get("/wallet/balance/me", s.balance)
	r.Get("/wallet/ledger/me", s.ledger)

	r.Get("/kyc/me", s.getKYC)
	r.Put("/kyc/me", s.putKYC)

	r.Get("/admin/audit", s.listAudit)
	return r
}

func (s *Server) issue(u *user) resources.Token {
	access, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatInt(u.id, 10),
		"role": u.role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"n":    s.id(),
	}).SignedString([]byte("apitest"))
	s.tokens[access] = u
	return resources.Token{AccessToken: access, RefreshToken: "refresh-" + access[len(access)-12:], TokenType: "bearer"}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in resources.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "bad json")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[in.Email]
	if !ok || u.password != in.Password {
		detail(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	writeJSON(w, http.StatusOK, s.issue(u))
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in resources.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "bad json")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[in.Email]; exists {
		detail(w, http.StatusBadRequest, "Email ya registrado")
		return
	}
	s.addUser(in.Email, in.Password, "user")
	writeJSON(w, http.StatusCreated, resources.RegisterResponse{Message: "Usuario creado", CreatedAt: now()})
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	detail(w, http.StatusUnauthorized, "Refresh token inválido")
}

func (s *Server) listTournaments(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.Tournaments))
}

func (s *Server) createTournament(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.admin(w, r); !ok {
		return
	}
	var in resources.TournamentCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "bad json")
		return
	}
	if !in.StartsAt.Before(in.EndsAt.Time) {
		detail(w, http.StatusBadRequest, "Fechas inválidas")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := resources.Tournament{ID: s.id(), Name: in.Name, CompanyName: in.CompanyName, StartsAt: in.StartsAt, EndsAt: in.EndsAt, Status: in.Status}
	s.Tournaments = append(s.Tournaments, t)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) listMatches(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	id := idParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []resources.Match{}
	for _, m := range s.Matches {
		if m.TournamentID == id {
			out = append(out, m)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listMarkets(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	id := idParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []resources.Market{}
	for _, m := range s.Markets {
		if m.MatchID == id {
			out = append(out, m)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) updateMarket(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.admin(w, r); !ok {
		return
	}
	var in resources.MarketStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "bad json")
		return
	}
	id := idParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Markets {
		if s.Markets[i].ID == id {
			s.Markets[i].Status = in.Status
			writeJSON(w, http.StatusOK, s.Markets[i])
			return
		}
	}
	detail(w, http.StatusNotFound, "Mercado no encontrado")
}

func (s *Server) listOdds(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authed(w, r); !ok {
		return
	}
	id := idParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []resources.Odd{}
	for _, o := range s.Odds {
		if o.MarketID == id {
			out = append(out, o)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	var in resources.PlaceBet
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "bad json")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var market *resources.Market
	for i := range s.Markets {
		if s.Markets[i].ID == in.MarketID {
			market = &s.Markets[i]
		}
	}
	if market == nil {
		detail(w, http.StatusNotFound, "Mercado no encontrado")
		return
	}
	if market.Status != resources.MarketOpen {
		detail(w, http.StatusBadRequest, "Mercado cerrado")
		return
	}
	var price decimal.Decimal
	for _, o := range s.Odds {
		if o.MarketID == in.MarketID && o.Selection == in.Selection {
			price = o.Price
		}
	}
	if price.IsZero() {
		detail(w, http.StatusBadRequest, "Cuota no disponible")
		return
	}
	if in.Stake.GreaterThan(u.balance) {
		detail(w, http.StatusBadRequest, "Saldo insuficiente")
		return
	}
	s.addLedger(u, "BET", in.Stake.Neg())
	b := resources.Bet{
		ID: s.id(), MarketID: in.MarketID, Selection: in.Selection, Stake: in.Stake,
		PriceAtBet: price, PotentialReturn: in.Stake.Mul(price), Status: "PENDING", PlacedAt: now(),
	}
	s.Bets = append(s.Bets, b)
	s.betOwners[b.ID] = u.id
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) myBets(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []resources.Bet{}
	for _, b := range s.Bets {
		if s.betOwners[b.ID] == u.id {
			out = append(out, b)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listTopUps(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.admin(w, r); !ok {
		return
	}
	status := resources.TopUpStatus(r.URL.Query().Get("status"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []resources.TopUp{}
	for _, t := range s.TopUps {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) myTopUps(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []resources.TopUp{}
	for _, t := range s.TopUps {
		if s.topupOwners[t.ID] == u.id {
			out = append(out, t)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) submitTopUp(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		detail(w, http.StatusUnprocessableEntity, "multipart requerido")
		return
	}
	amount, err := decimal.NewFromString(r.FormValue("amount"))
	if err != nil {
		detail(w, http.StatusUnprocessableEntity, "amount inválido")
		return
	}
	f, hdr, err := r.FormFile("proof")
	if err != nil {
		detail(w, http.StatusBadRequest, "Archivo inválido")
		return
	}
	defer f.Close()
	content, _ := io.ReadAll(f)

	s.mu.Lock()
	defer s.mu.Unlock()
	t := resources.TopUp{
		ID: s.id(), UserID: resources.Some(u.id), Amount: amount, BankName: r.FormValue("bank_name"),
		RefNumber: r.FormValue("ref_number"), ProofURL: "/uploads/" + hdr.Filename, Status: resources.TopUpPending, CreatedAt: now(),
	}
	s.TopUps = append(s.TopUps, t)
	s.topupOwners[t.ID] = u.id
	s.Uploads[t.ID] = content
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) reviewTopUp(w http.ResponseWriter, r *http.Request) {
	a, ok := s.admin(w, r)
	if !ok {
		return
	}
	var in resources.TopUpReview
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "bad json")
		return
	}
	id := idParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.TopUps {
		t := &s.TopUps[i]
		if t.ID != id {
			continue
		}
		if t.Status != resources.TopUpPending {
			detail(w, http.StatusBadRequest, "Recarga ya revisada")
			return
		}
		t.Status = in.Status
		t.ReviewedBy = resources.Some(a.id)
		t.ReviewedAt = resources.Some(now())
		if in.Status == resources.TopUpApproved {
			for _, u := range s.users {
				if u.id == s.topupOwners[t.ID] {
					s.addLedger(u, "TOPUP", t.Amount)
				}
			}
		}
		s.audit(a, "TOPUP_REVIEW", "TopUp", t.ID, string(in.Status))
		writeJSON(w, http.StatusOK, *t)
		return
	}
	detail(w, http.StatusNotFound, "Recarga no encontrada")
}

func (s *Server) listWithdrawals(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.admin(w, r); !ok {
		return
	}
	status := resources.WithdrawalStatus(r.URL.Query().Get("status"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []resources.Withdrawal{}
	for _, wd := range s.Withdrawals {
		if status == "" || wd.Status == status {
			out = append(out, wd)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) myWithdrawals(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []resources.Withdrawal{}
	for _, wd := range s.Withdrawals {
		if s.wdOwners[wd.ID] == u.id {
			out = append(out, wd)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) requestWithdrawal(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	var in resources.WithdrawalCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "bad json")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Amount.GreaterThan(u.balance) {
		detail(w, http.StatusBadRequest, "Saldo insuficiente")
		return
	}
	wd := resources.Withdrawal{
		ID: s.id(), UserID: resources.Some(u.id), Amount: in.Amount, BankAlias: in.BankAlias,
		BankHolder: in.BankHolder, Status: resources.WithdrawalRequested, CreatedAt: now(),
	}
	s.Withdrawals = append(s.Withdrawals, wd)
	s.wdOwners[wd.ID] = u.id
	writeJSON(w, http.StatusCreated, wd)
}

func (s *Server) reviewWithdrawal(w http.ResponseWriter, r *http.Request) {
	a, ok := s.admin(w, r)
	if !ok {
		return
	}
	var in resources.WithdrawalReview
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "bad json")
		return
	}
	id := idParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Withdrawals {
		wd := &s.Withdrawals[i]
		if wd.ID != id {
			continue
		}
		if wd.Status != resources.WithdrawalRequested {
			detail(w, http.StatusBadRequest, "Retiro ya procesado")
			return
		}
		wd.Status = in.Status
		wd.ProcessedBy = resources.Some(a.id)
		wd.ProcessedAt = resources.Some(now())
		if in.Status == resources.WithdrawalPaid {
			for _, u := range s.users {
				if u.id == s.wdOwners[wd.ID] {
					s.addLedger(u, "WITHDRAWAL", wd.Amount.Neg())
				}
			}
		}
		s.audit(a, "WITHDRAW_PROCESS", "Withdrawal", wd.ID, string(in.Status))
		writeJSON(w, http.StatusOK, *wd)
		return
	}
	detail(w, http.StatusNotFound, "Retiro no encontrado")
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, resources.Balance{Balance: u.balance})
}

func (s *Server) ledger(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.Ledger[u.id]))
}

func (s *Server) getKYC(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, u.kyc)
}

func (s *Server) putKYC(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authed(w, r)
	if !ok {
		return
	}
	// só os campos presentes no corpo são gravados; null explícito apaga
	var in map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		detail(w, http.StatusUnprocessableEntity, "bad json")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fields := map[string]*resources.Optional[string]{
		"doc_type":      &u.kyc.DocType,
		"doc_number":    &u.kyc.DocNumber,
		"doc_image_url": &u.kyc.DocImageURL,
	}
	for key, dst := range fields {
		raw, ok := in[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			detail(w, http.StatusUnprocessableEntity, "bad "+key)
			return
		}
	}
	writeJSON(w, http.StatusOK, u.kyc)
}

func (s *Server) listAudit(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.admin(w, r); !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.Audit))
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
