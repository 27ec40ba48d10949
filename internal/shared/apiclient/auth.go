package apiclient

import (
	"context"
	"net/http"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
	"github.com/radieske/sports-bet-clients/pkg/contracts/routes"
)

// Login troca credenciais por um access token. Não altera este client; o chamador
// cria um novo com a sessão resultante.
func (c *Client) Login(ctx context.Context, email, password string) (resources.Token, error) {
	var out resources.Token
	err := c.doJSON(ctx, http.MethodPost, routes.Login, nil, resources.LoginRequest{Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, req resources.RegisterRequest) (resources.RegisterResponse, error) {
	var out resources.RegisterResponse
	err := c.doJSON(ctx, http.MethodPost, routes.Register, nil, req, &out)
	return out, err
}

// Refresh troca um refresh token por um novo par. Nada no client chama isto sozinho.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (resources.Token, error) {
	var out resources.Token
	err := c.doJSON(ctx, http.MethodPost, routes.Refresh, nil, resources.RefreshRequest{RefreshToken: refreshToken}, &out)
	return out, err
}
