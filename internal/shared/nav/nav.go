// Package nav guarda a sessão corrente, o client da API derivado dela e a tela ativa.
//
// Sem token só as telas públicas (login, registro) são alcançáveis. Login e logout
// persistem a sessão no Store e recriam o client.
package nav

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/session"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

type Screen string

const (
	Login    Screen = "login"
	Register Screen = "register"
)

var (
	ErrLoginRequired = errors.New("login required")
	ErrUnknownScreen = errors.New("unknown screen")
)

// IdentityFunc deriva a identidade guardada na sessão a partir do login.
type IdentityFunc func(email string, tok resources.Token) string

// EmailIdentity guarda o e-mail usado no login (app de apostas).
func EmailIdentity(email string, _ resources.Token) string { return email }

// RoleIdentity guarda o papel do token; "admin" quando o token não traz role.
func RoleIdentity(_ string, tok resources.Token) string {
	if _, role := session.Claims(tok.AccessToken); role != "" {
		return role
	}
	return "admin"
}

type Config struct {
	BaseURL string
	// Entry é a tela ativa logo após o login.
	Entry Screen
	// Screens são as telas que exigem sessão.
	Screens  []Screen
	Identity IdentityFunc
	Client   []apiclient.Option
	Log      *zap.Logger
}

type Shell struct {
	cfg    Config
	store  session.Store
	sess   session.Session
	client *apiclient.Client
	active Screen
}

// New carrega a sessão persistida e monta o client inicial.
func New(ctx context.Context, store session.Store, cfg Config) (*Shell, error) {
	if cfg.Identity == nil {
		cfg.Identity = EmailIdentity
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	sess, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	s := &Shell{cfg: cfg, store: store}
	s.apply(sess)
	return s, nil
}

// apply troca a sessão em memória, recria o client e volta para a tela inicial do estado.
func (s *Shell) apply(sess session.Session) {
	s.sess = sess
	if sess.Present() {
		s.client = apiclient.New(s.cfg.BaseURL, &sess, s.cfg.Client...)
		s.active = s.cfg.Entry
		return
	}
	s.client = apiclient.New(s.cfg.BaseURL, nil, s.cfg.Client...)
	s.active = Login
}

func (s *Shell) Client() *apiclient.Client { return s.client }

func (s *Shell) Session() session.Session { return s.sess }

func (s *Shell) Authenticated() bool { return s.sess.Present() }

func (s *Shell) Active() Screen { return s.active }

// Reachable lista as telas selecionáveis no estado atual.
func (s *Shell) Reachable() []Screen {
	if !s.Authenticated() {
		return []Screen{Login, Register}
	}
	return slices.Clone(s.cfg.Screens)
}

// Select troca a tela ativa. Só memória; nenhuma busca acontece aqui.
func (s *Shell) Select(screen Screen) error {
	if screen == Login || screen == Register {
		if s.Authenticated() {
			return fmt.Errorf("select %s: already logged in", screen)
		}
		s.active = screen
		return nil
	}
	if !slices.Contains(s.cfg.Screens, screen) {
		return fmt.Errorf("select %s: %w", screen, ErrUnknownScreen)
	}
	if !s.Authenticated() {
		return fmt.Errorf("select %s: %w", screen, ErrLoginRequired)
	}
	s.active = screen
	return nil
}

// Login autentica com o client atual, persiste a sessão e recria o client com o token.
// Em falha nada muda.
func (s *Shell) Login(ctx context.Context, email, password string) error {
	tok, err := s.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	sess := session.Session{Token: tok.AccessToken, Identity: s.cfg.Identity(email, tok)}
	if err := s.store.Set(ctx, sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.apply(sess)
	s.cfg.Log.Info("login", zap.String("identity", sess.Identity))
	return nil
}

// Logout apaga a sessão persistida e volta para um client anônimo.
// O estado em memória é limpo mesmo se o Store falhar.
func (s *Shell) Logout(ctx context.Context) error {
	err := s.store.Clear(ctx)
	s.cfg.Log.Info("logout", zap.String("identity", s.sess.Identity))
	s.apply(session.Session{})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
