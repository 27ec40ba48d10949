package apiclient

import (
	"context"
	"net/http"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
	"github.com/radieske/sports-bet-clients/pkg/contracts/routes"
)

func (c *Client) AuditLog(ctx context.Context) ([]resources.AuditLog, error) {
	var out []resources.AuditLog
	err := c.doJSON(ctx, http.MethodGet, routes.Audit, nil, nil, &out)
	return out, err
}
