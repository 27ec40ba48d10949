package apiclient

import (
	"context"
	"net/http"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
	"github.com/radieske/sports-bet-clients/pkg/contracts/routes"
)

func (c *Client) MyKYC(ctx context.Context) (resources.KYC, error) {
	var out resources.KYC
	err := c.doJSON(ctx, http.MethodGet, routes.MyKYC, nil, nil, &out)
	return out, err
}

// UpdateKYC sobrescreve o perfil; campos não informados vão como null.
func (c *Client) UpdateKYC(ctx context.Context, in resources.KYCUpdate) (resources.KYC, error) {
	var out resources.KYC
	err := c.doJSON(ctx, http.MethodPut, routes.MyKYC, nil, in, &out)
	return out, err
}
