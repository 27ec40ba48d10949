package httpapi

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radieske/sports-bet-clients/internal/admin-backoffice/producer"
	"github.com/radieske/sports-bet-clients/internal/admin-backoffice/views"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/internal/shared/nav"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	ScreenDashboard   nav.Screen = "dashboard"
	ScreenTopUps      nav.Screen = "topups"
	ScreenWithdrawals nav.Screen = "withdrawals"
	ScreenTournaments nav.Screen = "tournaments"
	ScreenMarkets     nav.Screen = "markets"
	ScreenAudit       nav.Screen = "audit"
	ScreenLegal       nav.Screen = "legal"
)

// Screens na ordem do menu lateral.
var Screens = []nav.Screen{
	ScreenDashboard, ScreenTopUps, ScreenWithdrawals, ScreenTournaments, ScreenMarkets, ScreenAudit, ScreenLegal,
}

// Server é o backoffice web: uma sessão de operador por instância.
// mu serializa todo acesso ao shell e às views.
type Server struct {
	mu      sync.Mutex
	shell   *nav.Shell
	tr      *i18n.Translator
	events  producer.Publisher
	log     *zap.Logger
	now     func() time.Time
	pages   map[string]*template.Template
	login   *views.Login
	markets *views.Markets
}

type Options struct {
	Shell  *nav.Shell
	Tr     *i18n.Translator
	Events producer.Publisher
	Log    *zap.Logger
	Now    func() time.Time
}

func New(o Options) (*Server, error) {
	if o.Events == nil {
		o.Events = producer.Nop{}
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Tr == nil {
		o.Tr = i18n.New(i18n.DefaultLocale.String())
	}
	pages, err := parsePages(o.Tr)
	if err != nil {
		return nil, err
	}
	return &Server{
		shell:  o.Shell,
		tr:     o.Tr,
		events: o.Events,
		log:    o.Log,
		now:    o.Now,
		pages:  pages,
		login:  views.NewLogin(o.Tr),
	}, nil
}

func funcs(tr *i18n.Translator) template.FuncMap {
	return template.FuncMap{
		"t":    tr.T,
		"lang": func() string { return tr.Locale().String() },
		"date": func(ts resources.Timestamp) string {
			if ts.IsZero() {
				return "-"
			}
			return ts.Local().Format("02/01/2006 15:04")
		},
		// is informa se o opcional está definido com o id dado
		"is": func(o resources.Optional[int64], id int64) bool {
			v, ok := o.Get()
			return ok && v == id
		},
		"optID": func(o resources.Optional[int64]) string {
			if v, ok := o.Get(); ok {
				return fmt.Sprint(v)
			}
			return "—"
		},
	}
}

func parsePages(tr *i18n.Translator) (map[string]*template.Template, error) {
	names := []string{"login", "dashboard", "topups", "withdrawals", "tournaments", "markets", "audit", "legal"}
	pages := make(map[string]*template.Template, len(names))
	for _, n := range names {
		t, err := template.New("layout.html").Funcs(funcs(tr)).ParseFS(templateFS, "templates/layout.html", "templates/"+n+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", n, err)
		}
		pages[n] = t
	}
	return pages, nil
}

// Router retorna o roteador HTTP do backoffice.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.serialize)

	r.Get("/", s.home)
	r.Get("/login", s.loginPage)
	r.Post("/login", s.loginSubmit)
	r.Post("/logout", s.logout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/dashboard", s.dashboard)
		r.Get("/topups", s.topups)
		r.Post("/topups/{id}", s.reviewTopUp)
		r.Get("/withdrawals", s.withdrawals)
		r.Post("/withdrawals/{id}", s.reviewWithdrawal)
		r.Get("/tournaments", s.tournaments)
		r.Post("/tournaments", s.createTournament)
		r.Get("/markets", s.marketsPage)
		r.Post("/markets/{id}", s.updateMarket)
		r.Get("/audit", s.audit)
		r.Get("/legal", s.legal)
	})
	return r
}

func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// requireSession manda para /login quando não há token.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.shell.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) env() views.Env {
	return views.Env{
		API:    s.shell.Client(),
		Tr:     s.tr,
		Events: s.events,
		Actor:  s.shell.Session().Identity,
		Log:    s.log,
	}
}

type menuItem struct {
	Path   string
	Label  string
	Active bool
}

type page struct {
	Menu     []menuItem
	Identity string
	View     any
}

func (s *Server) render(w http.ResponseWriter, name string, view any) {
	s.renderStatus(w, http.StatusOK, name, view)
}

func (s *Server) renderStatus(w http.ResponseWriter, status int, name string, view any) {
	p := page{Identity: s.shell.Session().Identity, View: view}
	if s.shell.Authenticated() {
		for _, sc := range Screens {
			p.Menu = append(p.Menu, menuItem{Path: "/" + string(sc), Label: s.tr.T("menu." + string(sc)), Active: sc == s.shell.Active()})
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages[name].ExecuteTemplate(w, "layout", p); err != nil {
		s.log.Error("render", zap.String("page", name), zap.Error(err))
	}
}

// activate marca a tela ativa no shell antes de buscar dados.
func (s *Server) activate(screen nav.Screen) {
	if err := s.shell.Select(screen); err != nil {
		s.log.Warn("select screen", zap.String("screen", string(screen)), zap.Error(err))
	}
}

func (s *Server) loadFailed(screen nav.Screen, err error) {
	s.log.Warn("load failed", zap.String("screen", string(screen)), zap.Error(err))
}
