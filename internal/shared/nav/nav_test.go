package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/radieske/sports-bet-clients/internal/shared/apitest"
	"github.com/radieske/sports-bet-clients/internal/shared/session"
)

var appScreens = []Screen{"home", "topup", "balance", "bets"}

func newShell(t *testing.T, srv *apitest.Server, store session.Store) *Shell {
	t.Helper()
	sh, err := New(context.Background(), store, Config{
		BaseURL: srv.URL,
		Entry:   "home",
		Screens: appScreens,
	})
	if err != nil {
		t.Fatal(err)
	}
	return sh
}

func TestAnonymousOnlyReachesPublicScreens(t *testing.T) {
	srv := apitest.New(t)
	sh := newShell(t, srv, session.NewMemoryStore())

	if sh.Active() != Login {
		t.Fatalf("active: got %s", sh.Active())
	}
	if err := sh.Select("balance"); !errors.Is(err, ErrLoginRequired) {
		t.Errorf("select balance: got %v", err)
	}
	if sh.Active() != Login {
		t.Errorf("active changed to %s", sh.Active())
	}
	if err := sh.Select(Register); err != nil {
		t.Errorf("select register: %v", err)
	}
	if err := sh.Select("nope"); !errors.Is(err, ErrUnknownScreen) {
		t.Errorf("select unknown: got %v", err)
	}
	if sh.Client().Authenticated() {
		t.Error("anonymous client should not carry a token")
	}
}

func TestLoginPersistsAndRecreatesClient(t *testing.T) {
	srv := apitest.New(t)
	store := session.NewMemoryStore()
	sh := newShell(t, srv, store)
	before := sh.Client()

	if err := sh.Login(context.Background(), apitest.UserEmail, apitest.UserPassword); err != nil {
		t.Fatal(err)
	}
	if sh.Active() != "home" {
		t.Errorf("active: got %s, want home", sh.Active())
	}
	if sh.Client() == before || !sh.Client().Authenticated() {
		t.Error("client should be recreated with the token")
	}
	persisted, _ := store.Load(context.Background())
	if persisted.Token == "" || persisted.Identity != apitest.UserEmail {
		t.Errorf("persisted: %+v", persisted)
	}
	if err := sh.Select("balance"); err != nil {
		t.Errorf("select balance: %v", err)
	}

	// sessão persistida é recarregada por um shell novo
	again := newShell(t, srv, store)
	if again.Active() != "home" || !again.Client().Authenticated() {
		t.Errorf("reloaded shell: active=%s auth=%v", again.Active(), again.Client().Authenticated())
	}
}

func TestFailedLoginChangesNothing(t *testing.T) {
	srv := apitest.New(t)
	store := session.NewMemoryStore()
	sh := newShell(t, srv, store)

	err := sh.Login(context.Background(), apitest.UserEmail, "wrong-pass")
	if err == nil {
		t.Fatal("expected error")
	}
	if sh.Authenticated() || sh.Active() != Login {
		t.Errorf("state changed: auth=%v active=%s", sh.Authenticated(), sh.Active())
	}
	persisted, _ := store.Load(context.Background())
	if persisted.Present() {
		t.Error("nothing should be persisted")
	}
}

func TestLogoutClearsAndGoesAnonymous(t *testing.T) {
	srv := apitest.New(t)
	store := session.NewMemoryStore()
	sh := newShell(t, srv, store)
	ctx := context.Background()
	if err := sh.Login(ctx, apitest.UserEmail, apitest.UserPassword); err != nil {
		t.Fatal(err)
	}

	if err := sh.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if sh.Authenticated() || sh.Client().Authenticated() {
		t.Error("logout should leave an anonymous client")
	}
	if sh.Active() != Login {
		t.Errorf("active: got %s", sh.Active())
	}
	persisted, _ := store.Load(ctx)
	if persisted.Present() {
		t.Error("store should be cleared")
	}

	srv.ResetRequests()
	if _, err := sh.Client().Balance(ctx); err == nil {
		t.Fatal("expected 401 without token")
	}
	if reqs := srv.Requests(); len(reqs) != 1 || reqs[0].Authorization != "" {
		t.Errorf("requests after logout: %+v", reqs)
	}
}

func TestRoleIdentity(t *testing.T) {
	srv := apitest.New(t)
	store := session.NewMemoryStore()
	sh, err := New(context.Background(), store, Config{
		BaseURL: srv.URL, Entry: "dashboard", Screens: []Screen{"dashboard"}, Identity: RoleIdentity,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := sh.Login(context.Background(), apitest.AdminEmail, apitest.AdminPassword); err != nil {
		t.Fatal(err)
	}
	if got := sh.Session().Identity; got != "admin" {
		t.Errorf("identity: got %q, want admin", got)
	}
}
