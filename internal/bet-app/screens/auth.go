package screens

import (
	"context"
	"fmt"

	"github.com/radieske/sports-bet-clients/internal/shared/feedback"
	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/internal/shared/nav"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

type LoginScreen struct {
	Message string
}

// Submit valida, autentica pelo shell e guarda o e-mail como identidade.
func (s *LoginScreen) Submit(ctx context.Context, sh *nav.Shell, tr *i18n.Translator, f forms.Login) error {
	s.Message = ""
	if err := forms.Validate(f); err != nil {
		s.Message = feedback.LoginMessage(tr, err)
		return err
	}
	if err := sh.Login(ctx, f.Email, f.Password); err != nil {
		s.Message = feedback.LoginMessage(tr, err)
		return err
	}
	return nil
}

type RegisterScreen struct {
	env     Env
	Message string
}

func NewRegister(env Env) *RegisterScreen { return &RegisterScreen{env: env} }

// Submit cria a conta; em sucesso o usuário volta para o login.
func (s *RegisterScreen) Submit(ctx context.Context, f forms.Register) error {
	s.Message = ""
	if err := forms.Validate(f); err != nil {
		s.Message = s.env.message(err, "register.failed")
		return err
	}
	_, err := s.env.API.Register(ctx, resources.RegisterRequest{
		FullName: f.FullName, Email: f.Email, Password: f.Password, Dob: f.Dob,
	})
	if err != nil {
		s.Message = s.env.message(err, "register.failed")
		return fmt.Errorf("register: %w", err)
	}
	s.Message = s.env.Tr.T("register.done")
	return nil
}
