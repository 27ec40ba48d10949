package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized casa com qualquer APIError de status 401 (token ausente, inválido ou expirado).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidDecision é devolvido antes de qualquer request quando o status de revisão não é permitido.
	ErrInvalidDecision = errors.New("invalid review decision")
	// ErrMissingProof é devolvido quando a recarga não tem comprovante anexado.
	ErrMissingProof = errors.New("missing top-up proof")
)

// APIError representa uma resposta não-2xx da API.
type APIError struct {
	Method string
	Path   string
	Status int
	Detail string // campo "detail" do corpo, quando houver
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: http %d", e.Method, e.Path, e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// TransportError embrulha falhas de rede ou de decodificação da resposta.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Detail devolve a mensagem de negócio enviada pelo servidor, se existir.
func Detail(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

// parseDetail entende {"detail": "msg"} e {"detail": [{"msg": "..."}]} (erros de validação 422).
func parseDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
