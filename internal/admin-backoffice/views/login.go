package views

import (
	"context"

	"github.com/radieske/sports-bet-clients/internal/shared/feedback"
	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
	"github.com/radieske/sports-bet-clients/internal/shared/nav"
)

type Login struct {
	Email   string
	Hint    string
	Message string
}

func NewLogin(tr *i18n.Translator) *Login {
	return &Login{Email: "admin@example.com", Hint: tr.T("login.admin_hint")}
}

// Submit valida localmente e delega ao shell. Qualquer recusa vira "credenciais inválidas".
func (v *Login) Submit(ctx context.Context, sh *nav.Shell, tr *i18n.Translator, email, password string) bool {
	v.Email = email
	v.Message = ""
	if err := forms.Validate(forms.AdminLogin{Email: email, Password: password}); err != nil {
		v.Message = feedback.LoginMessage(tr, err)
		return false
	}
	if err := sh.Login(ctx, email, password); err != nil {
		v.Message = feedback.LoginMessage(tr, err)
		return false
	}
	return true
}
