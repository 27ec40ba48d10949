// Package cascade encadeia as buscas dependentes torneio -> partida -> mercado -> odds.
//
// Cada nível é um estágio tipado. Selecionar um item limpa todos os estágios
// abaixo dele e busca o próximo nível. Um contexto cancelado interrompe a cadeia
// entre estágios e deixa o último estágio completo como está.
package cascade

import (
	"context"
	"fmt"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

// Source é o subconjunto da API usado pela cadeia (implementado por *apiclient.Client).
type Source interface {
	Tournaments(ctx context.Context) ([]resources.Tournament, error)
	Matches(ctx context.Context, tournamentID int64) ([]resources.Match, error)
	Markets(ctx context.Context, matchID int64) ([]resources.Market, error)
	Odds(ctx context.Context, marketID int64) ([]resources.Odd, error)
}

type TournamentStage struct {
	Items    []resources.Tournament
	Selected resources.Optional[int64]
}

type MatchStage struct {
	TournamentID int64
	Items        []resources.Match
	Selected     resources.Optional[int64]
}

type MarketStage struct {
	MatchID  int64
	Items    []resources.Market
	Selected resources.Optional[int64]
}

type OddsStage struct {
	MarketID int64
	Items    []resources.Odd
}

// Chain guarda os estágios carregados; nil = nível ainda não buscado.
type Chain struct {
	src Source
	// Descend seleciona automaticamente o primeiro item de cada nível buscado.
	Descend bool

	Tournaments *TournamentStage
	Matches     *MatchStage
	Markets     *MarketStage
	Odds        *OddsStage
}

func New(src Source, descend bool) *Chain {
	return &Chain{src: src, Descend: descend}
}

// Load busca os torneios e zera toda a cadeia.
func (c *Chain) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	items, err := c.src.Tournaments(ctx)
	if err != nil {
		return fmt.Errorf("load tournaments: %w", err)
	}
	c.Tournaments = &TournamentStage{Items: items}
	c.Matches, c.Markets, c.Odds = nil, nil, nil

	if c.Descend && len(items) > 0 {
		return c.SelectTournament(ctx, items[0].ID)
	}
	return nil
}

func (c *Chain) SelectTournament(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Tournaments == nil {
		c.Tournaments = &TournamentStage{}
	}
	c.Tournaments.Selected = resources.Some(id)
	c.Matches, c.Markets, c.Odds = nil, nil, nil

	items, err := c.src.Matches(ctx, id)
	if err != nil {
		return fmt.Errorf("load matches of tournament %d: %w", id, err)
	}
	c.Matches = &MatchStage{TournamentID: id, Items: items}

	if c.Descend && len(items) > 0 {
		return c.SelectMatch(ctx, items[0].ID)
	}
	return nil
}

func (c *Chain) SelectMatch(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Matches != nil {
		c.Matches.Selected = resources.Some(id)
	}
	c.Markets, c.Odds = nil, nil

	items, err := c.src.Markets(ctx, id)
	if err != nil {
		return fmt.Errorf("load markets of match %d: %w", id, err)
	}
	c.Markets = &MarketStage{MatchID: id, Items: items}

	if c.Descend && len(items) > 0 {
		return c.SelectMarket(ctx, items[0].ID)
	}
	return nil
}

// SelectMarket busca as odds do mercado. Se ele já está selecionado e com as odds
// carregadas (Descend já desceu até ele), não busca de novo.
func (c *Chain) SelectMarket(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.Odds != nil && c.Odds.MarketID == id && c.Markets != nil {
		if sel, ok := c.Markets.Selected.Get(); ok && sel == id {
			return nil
		}
	}
	if c.Markets != nil {
		c.Markets.Selected = resources.Some(id)
	}
	c.Odds = nil

	items, err := c.src.Odds(ctx, id)
	if err != nil {
		return fmt.Errorf("load odds of market %d: %w", id, err)
	}
	c.Odds = &OddsStage{MarketID: id, Items: items}
	return nil
}

// ReloadMatch busca de novo os mercados da partida selecionada e as odds do mercado
// selecionado (ou do primeiro, se ele sumiu e Descend estiver ligado).
func (c *Chain) ReloadMatch(ctx context.Context) error {
	if c.Markets == nil {
		return nil
	}
	prev, hadMarket := c.Markets.Selected.Get()
	matchID := c.Markets.MatchID
	if err := ctx.Err(); err != nil {
		return err
	}

	items, err := c.src.Markets(ctx, matchID)
	if err != nil {
		return fmt.Errorf("reload markets of match %d: %w", matchID, err)
	}
	c.Markets = &MarketStage{MatchID: matchID, Items: items}
	c.Odds = nil

	if hadMarket && containsMarket(items, prev) {
		return c.SelectMarket(ctx, prev)
	}
	if c.Descend && len(items) > 0 {
		return c.SelectMarket(ctx, items[0].ID)
	}
	return nil
}

func containsMarket(items []resources.Market, id int64) bool {
	for _, m := range items {
		if m.ID == id {
			return true
		}
	}
	return false
}

// SelectedMarket devolve o mercado selecionado, se houver.
func (c *Chain) SelectedMarket() (resources.Market, bool) {
	if c.Markets == nil {
		return resources.Market{}, false
	}
	id, ok := c.Markets.Selected.Get()
	if !ok {
		return resources.Market{}, false
	}
	for _, m := range c.Markets.Items {
		if m.ID == id {
			return m, true
		}
	}
	return resources.Market{}, false
}
