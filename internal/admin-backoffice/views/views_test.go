package views

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/apitest"
	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/internal/shared/nav"
	"github.com/radieske/sports-bet-clients/internal/shared/session"
	"github.com/radieske/sports-bet-clients/pkg/contracts/events"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

type recordPublisher struct{ got []events.ReviewDecided }

func (r *recordPublisher) PublishReviewDecided(_ context.Context, e events.ReviewDecided) error {
	r.got = append(r.got, e)
	return nil
}

func adminEnv(t *testing.T, srv *apitest.Server) (Env, *recordPublisher) {
	t.Helper()
	tok, err := apiclient.New(srv.URL, nil).Login(context.Background(), apitest.AdminEmail, apitest.AdminPassword)
	if err != nil {
		t.Fatal(err)
	}
	pub := &recordPublisher{}
	return Env{
		API:    apiclient.New(srv.URL, &session.Session{Token: tok.AccessToken, Identity: "admin"}),
		Tr:     i18n.New("es"),
		Events: pub,
		Actor:  "admin",
	}, pub
}

func TestApproveTopUpRemovesItFromPending(t *testing.T) {
	srv := apitest.New(t)
	a := srv.SeedTopUp(apitest.UserEmail, "100")
	b := srv.SeedTopUp(apitest.UserEmail, "50")
	env, pub := adminEnv(t, srv)
	ctx := context.Background()

	v := NewTopUps(env)
	if err := v.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 2 {
		t.Fatalf("pending: got %d", len(v.Items))
	}

	srv.ResetRequests()
	if err := v.Review(ctx, a.ID, resources.TopUpApproved); err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 1 || v.Items[0].ID != b.ID {
		t.Errorf("pending after review: %+v", v.Items)
	}
	if n := srv.Count(http.MethodGet, "/wallet/topups"); n != 1 {
		t.Errorf("list reloads: got %d", n)
	}
	if got := srv.Balance(apitest.UserEmail).String(); got != "100" {
		t.Errorf("user balance: got %s", got)
	}
	if len(pub.got) != 1 || pub.got[0].Entity != "topup" || pub.got[0].Status != "APPROVED" {
		t.Errorf("events: %+v", pub.got)
	}
}

func TestReviewTwiceShowsServerDetail(t *testing.T) {
	srv := apitest.New(t)
	a := srv.SeedTopUp(apitest.UserEmail, "100")
	env, pub := adminEnv(t, srv)
	ctx := context.Background()
	v := NewTopUps(env)

	if err := v.Review(ctx, a.ID, resources.TopUpRejected); err != nil {
		t.Fatal(err)
	}
	err := v.Review(ctx, a.ID, resources.TopUpApproved)
	if err == nil {
		t.Fatal("expected error")
	}
	if v.Message != "Recarga ya revisada" {
		t.Errorf("message: got %q", v.Message)
	}
	if len(pub.got) != 1 {
		t.Errorf("only the successful review publishes: %+v", pub.got)
	}
	if srv.Balance(apitest.UserEmail).Sign() != 0 {
		t.Error("rejected topup must not credit")
	}
}

func TestPayWithdrawal(t *testing.T) {
	srv := apitest.New(t)
	srv.Credit(apitest.UserEmail, decimalOf(t, "300"))
	wd := srv.SeedWithdrawal(apitest.UserEmail, "120")
	keep := srv.SeedWithdrawal(apitest.UserEmail, "10")
	env, _ := adminEnv(t, srv)
	ctx := context.Background()

	v := NewWithdrawals(env)
	if err := v.Review(ctx, wd.ID, resources.WithdrawalPaid); err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 1 || v.Items[0].ID != keep.ID {
		t.Errorf("requested after pay: %+v", v.Items)
	}
	if got := srv.Balance(apitest.UserEmail).String(); got != "180" {
		t.Errorf("balance: got %s", got)
	}

	if err := v.Review(ctx, keep.ID, resources.WithdrawalRejected); err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 0 {
		t.Errorf("requested after reject: %+v", v.Items)
	}
	if got := srv.Balance(apitest.UserEmail).String(); got != "180" {
		t.Errorf("reject must not debit: got %s", got)
	}
	// já processado: o servidor recusa qualquer nova transição
	if err := v.Review(ctx, wd.ID, resources.WithdrawalRejected); err == nil || v.Message != "Retiro ya procesado" {
		t.Errorf("second review: err=%v message=%q", err, v.Message)
	}
}

func TestReviewRejectionKeptWhenReloadFails(t *testing.T) {
	srv := apitest.New(t)
	srv.Credit(apitest.UserEmail, decimalOf(t, "50"))
	top := srv.SeedTopUp(apitest.UserEmail, "10")
	wd := srv.SeedWithdrawal(apitest.UserEmail, "10")
	env, _ := adminEnv(t, srv)
	ctx := context.Background()

	topups := NewTopUps(env)
	if err := topups.Review(ctx, top.ID, resources.TopUpApproved); err != nil {
		t.Fatal(err)
	}
	withdrawals := NewWithdrawals(env)
	if err := withdrawals.Review(ctx, wd.ID, resources.WithdrawalPaid); err != nil {
		t.Fatal(err)
	}

	srv.Fail(http.MethodGet, "/wallet/topups", http.StatusServiceUnavailable, "mantenimiento")
	srv.Fail(http.MethodGet, "/wallet/withdrawals", http.StatusServiceUnavailable, "mantenimiento")
	srv.ResetRequests()

	if err := topups.Review(ctx, top.ID, resources.TopUpRejected); err == nil || topups.Message != "Recarga ya revisada" {
		t.Errorf("topup: err=%v message=%q", err, topups.Message)
	}
	if err := withdrawals.Review(ctx, wd.ID, resources.WithdrawalRejected); err == nil || withdrawals.Message != "Retiro ya procesado" {
		t.Errorf("withdrawal: err=%v message=%q", err, withdrawals.Message)
	}
	if srv.Count(http.MethodGet, "/wallet/topups") != 1 || srv.Count(http.MethodGet, "/wallet/withdrawals") != 1 {
		t.Errorf("reload should still be attempted: %+v", srv.Requests())
	}
}

func TestInvalidDecisionNeverReachesServer(t *testing.T) {
	srv := apitest.New(t)
	wd := srv.SeedWithdrawal(apitest.UserEmail, "10")
	env, _ := adminEnv(t, srv)
	srv.ResetRequests()

	v := NewWithdrawals(env)
	err := v.Review(context.Background(), wd.ID, "APPROVED")
	if !errors.Is(err, apiclient.ErrInvalidDecision) {
		t.Fatalf("got %v", err)
	}
	for _, r := range srv.Requests() {
		if r.Method == http.MethodPatch {
			t.Errorf("unexpected write: %+v", r)
		}
	}
}

func TestDashboard(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedBoard()
	srv.SeedTopUp(apitest.AdminEmail, "20")
	env, _ := adminEnv(t, srv)

	v := NewDashboard(env)
	if err := v.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(v.Matches) != 2 || len(v.TopUps) != 1 || len(v.Withdrawals) != 0 {
		t.Errorf("dashboard: matches=%d topups=%d withdrawals=%d", len(v.Matches), len(v.TopUps), len(v.Withdrawals))
	}
}

func TestCreateTournament(t *testing.T) {
	srv := apitest.New(t)
	env, _ := adminEnv(t, srv)
	ctx := context.Background()
	now := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
	v := NewTournaments(env, now)

	if err := v.Create(ctx, v.Form); err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 1 || v.Items[0].Name != "Torneo Corporativo" {
		t.Errorf("items: %+v", v.Items)
	}

	// início depois do fim passa pela validação local e o servidor recusa
	bad := v.Form
	bad.StartsAt, bad.EndsAt = bad.EndsAt, bad.StartsAt
	err := v.Create(ctx, bad)
	if _, ok := apiclient.Detail(err); !ok {
		t.Fatalf("expected server rejection, got %v", err)
	}
	if v.Message != "Fechas inválidas" {
		t.Errorf("message: got %q", v.Message)
	}
}

func TestCreateTournamentRequiresFields(t *testing.T) {
	srv := apitest.New(t)
	env, _ := adminEnv(t, srv)
	srv.ResetRequests()

	v := NewTournaments(env, time.Now())
	err := v.Create(context.Background(), forms.Tournament{Name: "X", StartsAt: "ayer", EndsAt: "2030-01-01T10:00"})
	var verrs forms.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if len(srv.Requests()) != 0 {
		t.Error("validation failures must not reach the network")
	}
}

func TestMarketToggleReloadsSelectedMatchOnly(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedBoard()
	env, pub := adminEnv(t, srv)
	ctx := context.Background()

	v := NewMarkets(env)
	if err := v.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if m, ok := v.Chain.SelectedMarket(); !ok || m.ID != 7 {
		t.Fatalf("selected market: %+v", m)
	}

	srv.ResetRequests()
	if err := v.SetStatus(ctx, 7, resources.MarketLocked); err != nil {
		t.Fatal(err)
	}
	if n := srv.Count(http.MethodGet, "/tournaments/matches/11/markets"); n != 1 {
		t.Errorf("markets reload: got %d", n)
	}
	if n := srv.Count(http.MethodGet, "/tournaments/markets/7/odds"); n != 1 {
		t.Errorf("odds reload: got %d", n)
	}
	if n := srv.Count(http.MethodGet, "/tournaments"); n != 0 {
		t.Errorf("tournaments should not reload: %d", n)
	}
	if m, _ := v.Chain.SelectedMarket(); m.Status != resources.MarketLocked {
		t.Errorf("status after toggle: %s", m.Status)
	}
	if len(pub.got) != 1 || pub.got[0].Entity != "market" {
		t.Errorf("events: %+v", pub.got)
	}
}

func TestFailedMarketToggleStillReloads(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedBoard()
	env, pub := adminEnv(t, srv)
	ctx := context.Background()

	v := NewMarkets(env)
	if err := v.Load(ctx); err != nil {
		t.Fatal(err)
	}
	srv.ResetRequests()

	if err := v.SetStatus(ctx, 999, resources.MarketLocked); err == nil {
		t.Fatal("expected error for unknown market")
	}
	if v.Message != "Mercado no encontrado" {
		t.Errorf("message: got %q", v.Message)
	}
	if n := srv.Count(http.MethodGet, "/tournaments/matches/11/markets"); n != 1 {
		t.Errorf("markets reload: got %d", n)
	}
	if n := srv.Count(http.MethodGet, "/tournaments/markets/7/odds"); n != 1 {
		t.Errorf("odds reload: got %d", n)
	}
	if m, ok := v.Chain.SelectedMarket(); !ok || m.ID != 7 {
		t.Errorf("selected market after failure: %+v", m)
	}
	if len(pub.got) != 0 {
		t.Errorf("failed write must not publish: %+v", pub.got)
	}
}

func TestAudit(t *testing.T) {
	srv := apitest.New(t)
	a := srv.SeedTopUp(apitest.UserEmail, "10")
	env, _ := adminEnv(t, srv)
	ctx := context.Background()
	if err := NewTopUps(env).Review(ctx, a.ID, resources.TopUpApproved); err != nil {
		t.Fatal(err)
	}

	v := NewAudit(env)
	if err := v.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if len(v.Items) != 1 || v.Items[0].Action != "TOPUP_REVIEW" {
		t.Errorf("audit: %+v", v.Items)
	}
}

func TestLoginView(t *testing.T) {
	srv := apitest.New(t)
	tr := i18n.New("es")
	sh, err := nav.New(context.Background(), session.NewMemoryStore(), nav.Config{
		BaseURL: srv.URL, Entry: "dashboard", Screens: []nav.Screen{"dashboard"}, Identity: nav.RoleIdentity,
	})
	if err != nil {
		t.Fatal(err)
	}
	v := NewLogin(tr)

	if v.Submit(context.Background(), sh, tr, apitest.AdminEmail, "incorrecta") {
		t.Fatal("wrong password accepted")
	}
	if v.Message != "Credenciales inválidas" {
		t.Errorf("message: got %q", v.Message)
	}
	// senha curta vai ao servidor; quem recusa é ele
	srv.ResetRequests()
	if v.Submit(context.Background(), sh, tr, apitest.AdminEmail, "abc") {
		t.Fatal("short wrong password accepted")
	}
	if n := srv.Count(http.MethodPost, "/auth/login"); n != 1 {
		t.Errorf("short password should reach the server: %d", n)
	}
	if v.Message != "Credenciales inválidas" {
		t.Errorf("message: got %q", v.Message)
	}
	if !v.Submit(context.Background(), sh, tr, apitest.AdminEmail, apitest.AdminPassword) {
		t.Fatalf("login failed: %s", v.Message)
	}
	if sh.Active() != "dashboard" {
		t.Errorf("active: %s", sh.Active())
	}
}

func decimalOf(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
