// Package apitest é um backend falso, em memória, com o mesmo contrato HTTP da API real.
// Usado pelos testes das views, telas e do shell.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "Admin1234!"
	UserEmail     = "jugador@example.com"
	UserPassword  = "Jugador1234!"
)

// Request é um request recebido, guardado para asserções.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	Body          []byte
}

type user struct {
	id       int64
	email    string
	password string
	role     string
	balance  decimal.Decimal
	kyc      resources.KYC
}

// Server é o backend falso. Os campos exportados podem ser semeados antes dos testes.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	nextID      int64
	users       map[string]*user
	tokens      map[string]*user
	TopUps      []resources.TopUp
	Withdrawals []resources.Withdrawal
	Tournaments []resources.Tournament
	Matches     []resources.Match
	Markets     []resources.Market
	Odds        []resources.Odd
	Bets        []resources.Bet
	Ledger      map[int64][]resources.LedgerEntry
	Audit       []resources.AuditLog
	Uploads     map[int64][]byte // id da recarga -> bytes do comprovante
	requests    []Request
	betOwners   map[int64]int64
	topupOwners map[int64]int64
	wdOwners    map[int64]int64
	failures    map[string]failure
}

type failure struct {
	status int
	detail string
}

// New sobe o servidor com um admin e um jogador cadastrados e o fecha no fim do teste.
func New(t testing.TB) *Server {
	s := &Server{
		users:       map[string]*user{},
		tokens:      map[string]*user{},
		Ledger:      map[int64][]resources.LedgerEntry{},
		Uploads:     map[int64][]byte{},
		betOwners:   map[int64]int64{},
		topupOwners: map[int64]int64{},
		wdOwners:    map[int64]int64{},
		failures:    map[string]failure{},
		nextID:      100,
	}
	s.addUser(AdminEmail, AdminPassword, "admin")
	s.addUser(UserEmail, UserPassword, "user")
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) addUser(email, password, role string) *user {
	s.nextID++
	u := &user{
		id: s.nextID, email: email, password: password, role: role, balance: decimal.Zero,
		kyc: resources.KYC{Verified: resources.Some(false)},
	}
	s.users[email] = u
	return u
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// Requests devolve uma cópia dos requests recebidos.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count conta requests por método e path exato.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// ResetRequests limpa o histórico de requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// UserID devolve o id de um usuário semeado.
func (s *Server) UserID(email string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[email].id
}

// Balance devolve o saldo atual de um usuário.
func (s *Server) Balance(email string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[email].balance
}

// Credit lança um crédito no ledger do usuário.
func (s *Server) Credit(email string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLedger(s.users[email], "ADJUST", amount)
}

// SetKYC sobrescreve o perfil de KYC guardado para o usuário.
func (s *Server) SetKYC(email string, kyc resources.KYC) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email].kyc = kyc
}

// KYC devolve o perfil de KYC guardado para o usuário.
func (s *Server) KYC(email string) resources.KYC {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[email].kyc
}

// SeedTopUp cria uma recarga pendente para o usuário.
func (s *Server) SeedTopUp(email string, amount string) resources.TopUp {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[email]
	t := resources.TopUp{
		ID: s.id(), UserID: resources.Some(u.id), Amount: decimal.RequireFromString(amount),
		BankName: "Banco Demo", RefNumber: fmt.Sprintf("REF%d", s.nextID), ProofURL: "/uploads/x.jpg",
		Status: resources.TopUpPending, CreatedAt: now(),
	}
	s.TopUps = append(s.TopUps, t)
	s.topupOwners[t.ID] = u.id
	return t
}

// SeedWithdrawal cria um saque solicitado para o usuário.
func (s *Server) SeedWithdrawal(email string, amount string) resources.Withdrawal {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[email]
	w := resources.Withdrawal{
		ID: s.id(), UserID: resources.Some(u.id), Amount: decimal.RequireFromString(amount),
		BankAlias: "CBU123", BankHolder: "Mi Nombre", Status: resources.WithdrawalRequested, CreatedAt: now(),
	}
	s.Withdrawals = append(s.Withdrawals, w)
	s.wdOwners[w.ID] = u.id
	return w
}

// SeedBoard cria um torneio com partidas, mercados e odds fixos:
//
//	torneio 1 -> partidas 11, 12
//	partida 11 -> mercados 7 (OPEN), 8 (OPEN); partida 12 -> mercado 9 (LOCKED)
//	cada mercado -> odds HOME, DRAW, AWAY
func (s *Server) SeedBoard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	s.Tournaments = append(s.Tournaments,
		resources.Tournament{ID: 1, Name: "Copa Interna", CompanyName: "Empresa", StartsAt: ts(start), EndsAt: ts(start.Add(72 * time.Hour)), Status: "ACTIVE"},
		resources.Tournament{ID: 2, Name: "Liga Otoño", CompanyName: "Empresa", StartsAt: ts(start), EndsAt: ts(start.Add(72 * time.Hour)), Status: "ACTIVE"},
	)
	s.Matches = append(s.Matches,
		resources.Match{ID: 11, TournamentID: 1, HomeTeamID: 1, AwayTeamID: 2, ScheduledAt: ts(start), State: "SCHEDULED"},
		resources.Match{ID: 12, TournamentID: 1, HomeTeamID: 3, AwayTeamID: 4, ScheduledAt: ts(start.Add(time.Hour)), State: "SCHEDULED"},
		resources.Match{ID: 21, TournamentID: 2, HomeTeamID: 5, AwayTeamID: 6, ScheduledAt: ts(start), State: "SCHEDULED"},
	)
	s.Markets = append(s.Markets,
		resources.Market{ID: 7, MatchID: 11, Type: "MATCH_WINNER", Status: resources.MarketOpen},
		resources.Market{ID: 8, MatchID: 11, Type: "TOTAL_GOALS", Line: resources.Some(2.5), Status: resources.MarketOpen},
		resources.Market{ID: 9, MatchID: 12, Type: "MATCH_WINNER", Status: resources.MarketLocked},
	)
	for _, mk := range []int64{7, 8, 9} {
		for i, sel := range []string{"HOME", "DRAW", "AWAY"} {
			s.Odds = append(s.Odds, resources.Odd{
				ID: mk*10 + int64(i), MarketID: mk, Selection: sel,
				Price: decimal.RequireFromString([]string{"1.85", "3.20", "4.10"}[i]),
			})
		}
	}
}

func ts(t time.Time) resources.Timestamp { return resources.Timestamp{Time: t} }

func now() resources.Timestamp {
	return resources.Timestamp{Time: time.Now().UTC().Truncate(time.Second)}
}

func (s *Server) addLedger(u *user, typ string, amount decimal.Decimal) {
	u.balance = u.balance.Add(amount)
	s.Ledger[u.id] = append(s.Ledger[u.id], resources.LedgerEntry{
		ID: s.id(), Type: typ, Amount: amount, BalanceAfter: u.balance, CreatedAt: now(),
	})
}

func (s *Server) audit(u *user, action, entity string, entityID int64, summary string) {
	s.Audit = append(s.Audit, resources.AuditLog{
		ID: s.id(), UserID: resources.Some(u.id), Action: action, Entity: entity,
		EntityID: resources.Some(entityID), Summary: summary, CreatedAt: now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func idParam(r *http.Request, name string) int64 {
	v, _ := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return v
}

// record guarda cada request antes do roteamento.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(strings.NewReader(string(body)))
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"), ContentType: r.Header.Get("Content-Type"), Body: body,
		})
		f, failing := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if failing {
			detail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authed resolve o usuário do bearer; responde 401 quando ausente ou desconhecido.
func (s *Server) authed(w http.ResponseWriter, r *http.Request) (*user, bool) {
	h := r.Header.Get("Authorization")
	tok := strings.TrimPrefix(h, "Bearer ")
	s.mu.Lock()
	u, ok := s.tokens[tok]
	s.mu.Unlock()
	if h == "" || !ok {
		detail(w, http.StatusUnauthorized, "Not authenticated")
		return nil, false
	}
	return u, true
}

func (s *Server) admin(w http.ResponseWriter, r *http.Request) (*user, bool) {
	u, ok := s.authed(w, r)
	if !ok {
		return nil, false
	}
	if u.role != "admin" {
		detail(w, http.StatusForbidden, "Permisos insuficientes")
		return nil, false
	}
	return u, true
}

// Fail faz toda request method+path responder status com o detail dado.
func (s *Server) Fail(method, path string, status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, detail: msg}
}

// Expire invalida todos os tokens emitidos.
func (s *Server) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]*user{}
}

// Upload devolve os bytes do comprovante de uma recarga.
func (s *Server) Upload(topupID int64) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Uploads[topupID]
}
