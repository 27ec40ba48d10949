package views

import (
	"context"
	"fmt"
	"time"

	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

// layout dos campos datetime-local do formulário
const formDateTime = "2006-01-02T15:04"

type Tournaments struct {
	env     Env
	Items   []resources.Tournament
	Form    forms.Tournament
	Message string
}

// NewTournaments já preenche o formulário: início agora, fim em 24h.
func NewTournaments(env Env, now time.Time) *Tournaments {
	return &Tournaments{env: env, Form: forms.Tournament{
		Name:     "Torneo Corporativo",
		Company:  "Empresa",
		StartsAt: now.Format(formDateTime),
		EndsAt:   now.Add(24 * time.Hour).Format(formDateTime),
	}}
}

func (v *Tournaments) Load(ctx context.Context) error {
	items, err := v.env.API.Tournaments(ctx)
	if err != nil {
		v.Message = v.env.message(err, "load.failed")
		return err
	}
	v.Items = items
	return nil
}

// Create não compara início e fim; se o servidor rejeitar, o detail aparece na tela.
func (v *Tournaments) Create(ctx context.Context, f forms.Tournament) error {
	v.Form = f
	v.Message = ""
	in, err := tournamentCreate(f)
	if err != nil {
		v.Message = v.env.message(err, "tournament.failed")
		return err
	}
	if _, err := v.env.API.CreateTournament(ctx, in); err != nil {
		_ = v.Load(ctx)
		v.Message = v.env.message(err, "tournament.failed")
		return fmt.Errorf("create tournament: %w", err)
	}
	v.Message = v.env.Tr.T("tournament.created")
	return v.Load(ctx)
}

func tournamentCreate(f forms.Tournament) (resources.TournamentCreate, error) {
	if err := forms.Validate(f); err != nil {
		return resources.TournamentCreate{}, err
	}
	var verrs forms.ValidationErrors
	start, err := resources.ParseTimestamp(f.StartsAt)
	if err != nil {
		verrs = append(verrs, forms.FieldError{Field: "starts_at", Tag: "datetime"})
	}
	end, err := resources.ParseTimestamp(f.EndsAt)
	if err != nil {
		verrs = append(verrs, forms.FieldError{Field: "ends_at", Tag: "datetime"})
	}
	if len(verrs) > 0 {
		return resources.TournamentCreate{}, verrs
	}
	return resources.TournamentCreate{
		Name:        f.Name,
		CompanyName: f.Company,
		StartsAt:    resources.Timestamp{Time: start},
		EndsAt:      resources.Timestamp{Time: end},
		Status:      "ACTIVE",
	}, nil
}
