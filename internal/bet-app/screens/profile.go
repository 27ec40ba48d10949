package screens

import (
	"context"
	"fmt"

	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

// ProfileScreen lê e sobrescreve os dados de KYC; a verificação é do servidor.
type ProfileScreen struct {
	env     Env
	KYC     resources.KYC
	Form    forms.KYC
	Message string
}

func NewProfile(env Env) *ProfileScreen {
	return &ProfileScreen{env: env, Form: forms.KYC{DocType: "DNI"}}
}

func (s *ProfileScreen) Load(ctx context.Context) error {
	kyc, err := s.env.API.MyKYC(ctx)
	if err != nil {
		s.Message = s.env.message(err, "load.failed")
		return err
	}
	s.KYC = kyc
	s.Form = forms.KYC{DocType: kyc.DocType.OrElse("DNI"), DocNumber: kyc.DocNumber.OrElse("")}
	return nil
}

// Verified devolve o texto do estado de verificação.
func (s *ProfileScreen) Verified() string {
	if s.KYC.Verified.OrElse(false) {
		return s.env.Tr.T("kyc.verified")
	}
	return s.env.Tr.T("kyc.pending")
}

func (s *ProfileScreen) Update(ctx context.Context, f forms.KYC) error {
	s.Form = f
	s.Message = ""
	if err := forms.Validate(f); err != nil {
		s.Message = s.env.message(err, "profile.failed")
		return err
	}
	kyc, err := s.env.API.UpdateKYC(ctx, resources.KYCUpdate{
		DocType:     resources.Some(f.DocType),
		DocNumber:   resources.Some(f.DocNumber),
		DocImageURL: s.KYC.DocImageURL,
	})
	if err != nil {
		s.Message = s.env.message(err, "profile.failed")
		return fmt.Errorf("update kyc: %w", err)
	}
	s.KYC = kyc
	s.Message = s.env.Tr.T("profile.updated")
	return nil
}
