package screens

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/apitest"
	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/internal/shared/nav"
	"github.com/radieske/sports-bet-clients/internal/shared/session"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

func userEnv(t *testing.T, srv *apitest.Server) Env {
	t.Helper()
	tok, err := apiclient.New(srv.URL, nil).Login(context.Background(), apitest.UserEmail, apitest.UserPassword)
	if err != nil {
		t.Fatal(err)
	}
	return Env{
		API: apiclient.New(srv.URL, &session.Session{Token: tok.AccessToken, Identity: apitest.UserEmail}),
		Tr:  i18n.New("es"),
	}
}

func TestPlaceBetThenBalanceReflectsServer(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedBoard()
	srv.Credit(apitest.UserEmail, decimal.NewFromInt(200))
	env := userEnv(t, srv)
	ctx := context.Background()

	bets := NewBets(env)
	if err := bets.Load(ctx); err != nil {
		t.Fatal(err)
	}
	m, ok := bets.Chain.SelectedMarket()
	if !ok {
		t.Fatal("no market selected")
	}
	if err := bets.Place(ctx, forms.Bet{MarketID: m.ID, Selection: "HOME", Stake: "50"}); err != nil {
		t.Fatal(err)
	}
	if bets.Message != "Apuesta registrada" {
		t.Errorf("message: got %q", bets.Message)
	}

	bal := NewBalance(env)
	if err := bal.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if !bal.Balance.Equal(decimal.NewFromInt(150)) {
		t.Errorf("balance: got %s", bal.Balance)
	}
	last := bal.Entries[len(bal.Entries)-1]
	if last.Type != "BET" || !last.Amount.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("ledger entry: %+v", last)
	}

	mine := NewMyBets(env)
	if err := mine.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if len(mine.Items) != 1 || mine.Items[0].Selection != "HOME" {
		t.Errorf("my bets: %+v", mine.Items)
	}
}

func TestBetBusinessRejectionShowsDetail(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedBoard()
	env := userEnv(t, srv)

	bets := NewBets(env)
	err := bets.Place(context.Background(), forms.Bet{MarketID: 7, Selection: "HOME", Stake: "50"})
	if err == nil {
		t.Fatal("expected rejection")
	}
	if bets.Message != "Saldo insuficiente" {
		t.Errorf("message: got %q", bets.Message)
	}
}

func TestBetStakeMustBeNumeric(t *testing.T) {
	srv := apitest.New(t)
	env := userEnv(t, srv)
	srv.ResetRequests()

	bets := NewBets(env)
	err := bets.Place(context.Background(), forms.Bet{MarketID: 7, Selection: "HOME", Stake: "cincuenta"})
	var verrs forms.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.HasPrefix(bets.Message, "stake: ") {
		t.Errorf("message: got %q", bets.Message)
	}
	if len(srv.Requests()) != 0 {
		t.Error("nothing should reach the server")
	}
}

func TestTopUpWithoutProofIsRejectedLocally(t *testing.T) {
	srv := apitest.New(t)
	env := userEnv(t, srv)
	srv.ResetRequests()

	s := NewTopUp(env)
	err := s.Submit(context.Background(), s.Form, nil)
	if !errors.Is(err, apiclient.ErrMissingProof) {
		t.Fatalf("got %v", err)
	}
	if s.Message != "Selecciona un comprobante" {
		t.Errorf("message: got %q", s.Message)
	}
	if len(srv.Requests()) != 0 {
		t.Error("nothing should reach the server")
	}
}

func TestTopUpWithProof(t *testing.T) {
	srv := apitest.New(t)
	env := userEnv(t, srv)

	s := NewTopUp(env)
	proof := &apiclient.Proof{FileName: "recibo.png", ContentType: "image/png", Content: strings.NewReader("png-bytes")}
	if err := s.Submit(context.Background(), s.Form, proof); err != nil {
		t.Fatal(err)
	}
	if s.Message != "Recarga enviada, pendiente de aprobación" {
		t.Errorf("message: got %q", s.Message)
	}
	if n := srv.Count(http.MethodPost, "/wallet/topups"); n != 1 {
		t.Errorf("posts: got %d", n)
	}
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	srv := apitest.New(t)
	env := userEnv(t, srv)

	s := NewWithdraw(env)
	if err := s.Submit(context.Background(), s.Form); err == nil {
		t.Fatal("expected rejection")
	}
	if s.Message != "Saldo insuficiente" {
		t.Errorf("message: got %q", s.Message)
	}
}

func TestHomeLimitsMatches(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedBoard()
	env := userEnv(t, srv)

	h := NewHome(env)
	if err := h.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(h.Matches) != 2 || !h.Balance.IsZero() {
		t.Errorf("home: matches=%d balance=%s", len(h.Matches), h.Balance)
	}
}

func TestProfileUpdate(t *testing.T) {
	srv := apitest.New(t)
	env := userEnv(t, srv)
	ctx := context.Background()

	p := NewProfile(env)
	if err := p.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if p.Form.DocType != "DNI" {
		t.Errorf("default doc type: %q", p.Form.DocType)
	}
	if err := p.Update(ctx, forms.KYC{DocType: "PASAPORTE", DocNumber: "X123"}); err != nil {
		t.Fatal(err)
	}
	if got := p.KYC.DocNumber.OrElse(""); got != "X123" {
		t.Errorf("doc number: %q", got)
	}
	if p.Verified() != "Pendiente" {
		t.Errorf("verified: %q", p.Verified())
	}
}

func TestProfileUpdateKeepsStoredImage(t *testing.T) {
	srv := apitest.New(t)
	srv.SetKYC(apitest.UserEmail, resources.KYC{
		DocType:     resources.Some("DNI"),
		DocNumber:   resources.Some("111"),
		DocImageURL: resources.Some("/uploads/dni.jpg"),
		Verified:    resources.Some(true),
	})
	env := userEnv(t, srv)
	ctx := context.Background()

	p := NewProfile(env)
	if err := p.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := p.Update(ctx, forms.KYC{DocType: "DNI", DocNumber: "222"}); err != nil {
		t.Fatal(err)
	}
	stored := srv.KYC(apitest.UserEmail)
	if got := stored.DocImageURL.OrElse(""); got != "/uploads/dni.jpg" {
		t.Errorf("image reference: got %q", got)
	}
	if got := stored.DocNumber.OrElse(""); got != "222" {
		t.Errorf("doc number: got %q", got)
	}
	if p.Verified() != "Verificado" {
		t.Errorf("verification changed by the save: %q", p.Verified())
	}
}

func TestProfileUpdateWithoutLoadOmitsImage(t *testing.T) {
	srv := apitest.New(t)
	srv.SetKYC(apitest.UserEmail, resources.KYC{DocImageURL: resources.Some("/uploads/dni.jpg")})
	env := userEnv(t, srv)
	srv.ResetRequests()

	if err := NewProfile(env).Update(context.Background(), forms.KYC{DocType: "DNI", DocNumber: "9"}); err != nil {
		t.Fatal(err)
	}
	for _, r := range srv.Requests() {
		if r.Method == http.MethodPut && strings.Contains(string(r.Body), "doc_image_url") {
			t.Errorf("unset image must not be sent: %s", r.Body)
		}
	}
	if got := srv.KYC(apitest.UserEmail).DocImageURL.OrElse(""); got != "/uploads/dni.jpg" {
		t.Errorf("image reference: got %q", got)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	srv := apitest.New(t)
	tr := i18n.New("es")
	ctx := context.Background()
	sh, err := nav.New(ctx, session.NewMemoryStore(), nav.Config{BaseURL: srv.URL, Entry: Home, Screens: All})
	if err != nil {
		t.Fatal(err)
	}

	reg := NewRegister(Env{API: sh.Client(), Tr: tr})
	f := forms.Register{FullName: "Ana Pérez", Email: "ana@example.com", Password: "Segura123", Dob: "1990-01-01"}
	if err := reg.Submit(ctx, f); err != nil {
		t.Fatal(err)
	}
	if err := reg.Submit(ctx, f); err == nil || reg.Message != "Email ya registrado" {
		t.Errorf("duplicate register: err=%v message=%q", err, reg.Message)
	}

	login := &LoginScreen{}
	if err := login.Submit(ctx, sh, tr, forms.Login{Email: f.Email, Password: f.Password}); err != nil {
		t.Fatal(err)
	}
	if sh.Active() != Home || sh.Session().Identity != f.Email {
		t.Errorf("after login: active=%s identity=%s", sh.Active(), sh.Session().Identity)
	}
}

func TestExpiredSession(t *testing.T) {
	srv := apitest.New(t)
	env := userEnv(t, srv)
	srv.Expire()

	b := NewBalance(env)
	err := b.Load(context.Background())
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("got %v", err)
	}
	if b.Message != "Sesión expirada, vuelve a ingresar" {
		t.Errorf("message: got %q", b.Message)
	}
}
