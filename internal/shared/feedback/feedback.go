// Package feedback transforma erros em mensagens curtas para exibir na tela.
package feedback

import (
	"errors"
	"strings"

	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/forms"
	"github.com/radieske/sports-bet-clients/internal/shared/i18n"
)

// Message escolhe o texto para err:
//   - validação local: mensagem por campo
//   - 401: sessão expirada, sem tentar renovar o token
//   - rejeição de negócio: o "detail" do servidor, literal
//   - rede e o resto: a mensagem genérica fallbackKey
func Message(tr *i18n.Translator, err error, fallbackKey string) string {
	if err == nil {
		return ""
	}
	var verrs forms.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Field+": "+FieldMessage(tr, fe))
		}
		return strings.Join(msgs, "; ")
	}
	if errors.Is(err, apiclient.ErrMissingProof) {
		return tr.T("topup.missing_proof")
	}
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return tr.T("error.unauthorized")
	}
	if d, ok := apiclient.Detail(err); ok {
		return d
	}
	return tr.T(fallbackKey)
}

// LoginMessage: qualquer recusa do servidor vira "credenciais inválidas".
func LoginMessage(tr *i18n.Translator, err error) string {
	if err == nil {
		return ""
	}
	var verrs forms.ValidationErrors
	if errors.As(err, &verrs) {
		return Message(tr, err, "error.generic")
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return tr.T("login.invalid_credentials")
	}
	return tr.T("error.network")
}

// FieldMessage traduz uma falha de campo.
func FieldMessage(tr *i18n.Translator, fe forms.FieldError) string {
	switch fe.Tag {
	case "required":
		switch fe.Field {
		case "full_name":
			return tr.T("validation.full_name")
		case "dob":
			return tr.T("validation.dob")
		}
		return tr.T("validation.required")
	case "email":
		return tr.T("validation.email")
	case "min":
		return tr.T("validation.min", fe.Param)
	case "max":
		return tr.T("validation.max", fe.Param)
	case "numeric":
		return tr.T("validation.numeric")
	case "datetime":
		return tr.T("validation.datetime")
	}
	return tr.T("validation.invalid")
}
