package views

import (
	"context"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

type Audit struct {
	env     Env
	Items   []resources.AuditLog
	Message string
}

func NewAudit(env Env) *Audit { return &Audit{env: env} }

func (v *Audit) Load(ctx context.Context) error {
	items, err := v.env.API.AuditLog(ctx)
	if err != nil {
		v.Message = v.env.message(err, "load.failed")
		return err
	}
	v.Items = items
	return nil
}
