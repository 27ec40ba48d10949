// Package session guarda o token de acesso e a identidade do usuário logado.
//
// Um Store só persiste; quem mantém o valor em memória e recria o client da API
// a cada login/logout é o nav.Shell.
package session

import "context"

// Session é o único estado local com ciclo de vida: criado no login, apagado no logout.
type Session struct {
	Token    string `json:"token"`
	Identity string `json:"identity"` // papel (admin) ou e-mail (app)
}

// Present informa se há token.
func (s Session) Present() bool { return s.Token != "" }

// Store persiste a sessão em armazenamento durável.
type Store interface {
	// Load lê a sessão persistida; sessão vazia quando não há nada salvo.
	Load(ctx context.Context) (Session, error)
	Set(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}
