// Package terminal é o app de apostas interativo: lê comandos linha a linha e
// desenha a tela ativa do shell.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/sports-bet-clients/internal/bet-app/screens"
	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/internal/shared/nav"
)

var errQuit = errors.New("quit")

type Terminal struct {
	shell *nav.Shell
	tr    *i18n.Translator
	in    *bufio.Scanner
	out   io.Writer
	log   *zap.Logger

	// tela de apostas fica viva entre comandos para manter a seleção
	bets *screens.BetsScreen
}

func New(sh *nav.Shell, tr *i18n.Translator, in io.Reader, out io.Writer, log *zap.Logger) *Terminal {
	if log == nil {
		log = zap.NewNop()
	}
	return &Terminal{shell: sh, tr: tr, in: bufio.NewScanner(in), out: out, log: log}
}

// Banner é a linha de boas-vindas no idioma do tradutor.
func (t *Terminal) Banner() {
	fmt.Fprintln(t.out, t.tr.T("term.banner"))
}

// Run processa comandos até "salir" ou fim da entrada.
func (t *Terminal) Run(ctx context.Context) error {
	t.prompt()
	for t.in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(t.in.Text())
		if line == "" {
			t.prompt()
			continue
		}
		err := t.exec(ctx, strings.Fields(line))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			t.log.Debug("command", zap.String("line", line), zap.Error(err))
		}
		t.prompt()
	}
	return t.in.Err()
}

func (t *Terminal) prompt() {
	fmt.Fprintf(t.out, "[%s]> ", t.shell.Active())
}

func (t *Terminal) env() screens.Env {
	return screens.Env{API: t.shell.Client(), Tr: t.tr}
}

// ask lê uma linha de resposta; vazio mantém o valor sugerido.
func (t *Terminal) ask(label, def string) string {
	if def != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", label)
	}
	if !t.in.Scan() {
		return def
	}
	if v := strings.TrimSpace(t.in.Text()); v != "" {
		return v
	}
	return def
}

func (t *Terminal) exec(ctx context.Context, args []string) error {
	cmd := args[0]
	switch cmd {
	case "salir", "quit", "exit":
		return errQuit
	case "ayuda", "help":
		t.help()
		return nil
	case "login":
		return t.login(ctx)
	case "registro", "register":
		return t.register(ctx)
	case "logout":
		t.bets = nil
		err := t.shell.Logout(ctx)
		fmt.Fprintln(t.out, t.tr.T("term.logged_out"))
		return err
	}

	// comandos da tela de apostas que não trocam de tela
	if action, ok := betsCommands[cmd]; ok {
		if t.shell.Active() != screens.Bets || t.bets == nil {
			fmt.Fprintln(t.out, t.tr.T("term.open_first", string(screens.Bets)))
			return nil
		}
		return t.betsAction(ctx, action, cmd, args[1:])
	}
	if cmd == "kyc" {
		if t.shell.Active() != screens.Profile {
			fmt.Fprintln(t.out, t.tr.T("term.open_first", string(screens.Profile)))
			return nil
		}
		return t.updateKYC(ctx, args[1:])
	}

	screen := nav.Screen(cmd)
	if err := t.shell.Select(screen); err != nil {
		switch {
		case errors.Is(err, nav.ErrLoginRequired):
			fmt.Fprintln(t.out, t.tr.T("term.login_first"))
		case errors.Is(err, nav.ErrUnknownScreen):
			fmt.Fprintln(t.out, t.tr.T("term.unknown", cmd))
		default:
			fmt.Fprintln(t.out, err)
		}
		return err
	}
	return t.open(ctx, screen)
}

// open ativa a tela: cada ativação busca os dados de novo.
func (t *Terminal) open(ctx context.Context, screen nav.Screen) error {
	env := t.env()
	switch screen {
	case screens.Home:
		s := screens.NewHome(env)
		err := s.Load(ctx)
		renderHome(t.out, t.tr, s)
		return err
	case screens.Balance:
		s := screens.NewBalance(env)
		err := s.Load(ctx)
		renderBalance(t.out, t.tr, s)
		return err
	case screens.Bets:
		t.bets = screens.NewBets(env)
		err := t.bets.Load(ctx)
		renderBets(t.out, t.tr, t.bets)
		return err
	case screens.MyBets:
		s := screens.NewMyBets(env)
		err := s.Load(ctx)
		renderMyBets(t.out, t.tr, s)
		return err
	case screens.Profile:
		s := screens.NewProfile(env)
		err := s.Load(ctx)
		renderProfile(t.out, t.tr, s)
		return err
	case screens.TopUp:
		return t.topUp(ctx)
	case screens.Withdraw:
		return t.withdraw(ctx)
	}
	return nil
}

func (t *Terminal) login(ctx context.Context) error {
	if t.shell.Authenticated() {
		fmt.Fprintln(t.out, t.tr.T("term.already_in"))
		return nil
	}
	_ = t.shell.Select(nav.Login)
	f := forms.Login{Email: t.ask(t.tr.T("field.email"), ""), Password: t.ask(t.tr.T("field.password"), "")}
	s := &screens.LoginScreen{}
	if err := s.Submit(ctx, t.shell, t.tr, f); err != nil {
		fmt.Fprintln(t.out, s.Message)
		return err
	}
	return t.open(ctx, t.shell.Active())
}

func (t *Terminal) register(ctx context.Context) error {
	if err := t.shell.Select(nav.Register); err != nil {
		fmt.Fprintln(t.out, t.tr.T("term.logout_first"))
		return err
	}
	f := forms.Register{
		FullName: t.ask(t.tr.T("field.full_name"), ""),
		Email:    t.ask(t.tr.T("field.email"), ""),
		Password: t.ask(t.tr.T("field.password"), ""),
		Dob:      t.ask(t.tr.T("field.dob"), "1990-01-01"),
	}
	s := screens.NewRegister(t.env())
	err := s.Submit(ctx, f)
	fmt.Fprintln(t.out, s.Message)
	if err == nil {
		_ = t.shell.Select(nav.Login)
	}
	return err
}

func (t *Terminal) topUp(ctx context.Context) error {
	s := screens.NewTopUp(t.env())
	f := forms.TopUp{
		Amount:    t.ask(t.tr.T("field.amount"), s.Form.Amount),
		BankName:  t.ask(t.tr.T("field.bank"), s.Form.BankName),
		RefNumber: t.ask(t.tr.T("field.ref"), s.Form.RefNumber),
	}
	var proof *apiclient.Proof
	if path := t.ask(t.tr.T("field.proof_path"), ""); path != "" {
		fh, err := os.Open(path)
		if err != nil {
			fmt.Fprintln(t.out, t.tr.T("term.open_failed", path))
			return fmt.Errorf("open proof: %w", err)
		}
		defer fh.Close()
		proof = &apiclient.Proof{
			FileName:    filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Content:     fh,
		}
	}
	err := s.Submit(ctx, f, proof)
	fmt.Fprintln(t.out, s.Message)
	if err != nil {
		return err
	}
	return t.goTo(ctx, screens.Balance)
}

func (t *Terminal) withdraw(ctx context.Context) error {
	s := screens.NewWithdraw(t.env())
	f := forms.Withdrawal{
		Amount:     t.ask(t.tr.T("field.amount"), s.Form.Amount),
		BankAlias:  t.ask(t.tr.T("field.alias"), s.Form.BankAlias),
		BankHolder: t.ask(t.tr.T("field.holder"), s.Form.BankHolder),
	}
	err := s.Submit(ctx, f)
	fmt.Fprintln(t.out, s.Message)
	if err != nil {
		return err
	}
	return t.goTo(ctx, screens.Balance)
}

// goTo navega depois de uma ação bem-sucedida (recarga e saque levam ao saldo).
func (t *Terminal) goTo(ctx context.Context, screen nav.Screen) error {
	if err := t.shell.Select(screen); err != nil {
		return err
	}
	return t.open(ctx, screen)
}

type betsCmd int

const (
	cmdTournament betsCmd = iota
	cmdMatch
	cmdMarket
	cmdBet
)

// betsCommands aceita os comandos em espanhol e em inglês.
var betsCommands = map[string]betsCmd{
	"torneo": cmdTournament, "tournament": cmdTournament,
	"partido": cmdMatch, "match": cmdMatch,
	"mercado": cmdMarket, "market": cmdMarket,
	"apostar": cmdBet, "bet": cmdBet,
}

func (t *Terminal) betsAction(ctx context.Context, action betsCmd, cmd string, args []string) error {
	if action == cmdBet {
		return t.placeBet(ctx, args)
	}
	if len(args) != 1 {
		fmt.Fprintln(t.out, t.tr.T("term.usage_id", cmd))
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(t.out, t.tr.T("term.bad_id", args[0]))
		return nil
	}
	switch action {
	case cmdTournament:
		err = t.bets.SelectTournament(ctx, id)
	case cmdMatch:
		err = t.bets.SelectMatch(ctx, id)
	case cmdMarket:
		err = t.bets.SelectMarket(ctx, id)
	}
	renderBets(t.out, t.tr, t.bets)
	return err
}

// placeBet: apostar <selección> [monto], sempre no mercado selecionado.
func (t *Terminal) placeBet(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(t.out, t.tr.T("term.usage_bet"))
		return nil
	}
	m, ok := t.bets.Chain.SelectedMarket()
	if !ok {
		fmt.Fprintln(t.out, t.tr.T("term.pick_market"))
		return nil
	}
	stake := t.bets.Stake
	if len(args) > 1 {
		stake = args[1]
	}
	err := t.bets.Place(ctx, forms.Bet{MarketID: m.ID, Selection: strings.ToUpper(args[0]), Stake: stake})
	fmt.Fprintln(t.out, t.bets.Message)
	return err
}

// updateKYC relê o perfil antes de gravar para reenviar a imagem já guardada.
func (t *Terminal) updateKYC(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(t.out, t.tr.T("term.usage_kyc"))
		return nil
	}
	s := screens.NewProfile(t.env())
	if err := s.Load(ctx); err != nil {
		fmt.Fprintln(t.out, s.Message)
		return err
	}
	err := s.Update(ctx, forms.KYC{DocType: args[0], DocNumber: args[1]})
	fmt.Fprintln(t.out, s.Message)
	if err == nil {
		renderProfile(t.out, t.tr, s)
	}
	return err
}

func (t *Terminal) help() {
	if !t.shell.Authenticated() {
		fmt.Fprintln(t.out, t.tr.T("term.help_anonymous"))
		return
	}
	names := make([]string, 0, len(screens.All))
	for _, s := range t.shell.Reachable() {
		names = append(names, string(s))
	}
	fmt.Fprintln(t.out, t.tr.T("term.help_screens", strings.Join(names, ", ")))
	fmt.Fprintln(t.out, t.tr.T("term.help_bets"))
	fmt.Fprintln(t.out, t.tr.T("term.help_profile"))
	fmt.Fprintln(t.out, t.tr.T("term.help_other"))
}
