package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
	"github.com/radieske/sports-bet-clients/pkg/contracts/routes"
)

// TopUps lista recargas filtradas por status (admin). Status vazio = sem filtro.
func (c *Client) TopUps(ctx context.Context, status resources.TopUpStatus) ([]resources.TopUp, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {string(status)}}
	}
	var out []resources.TopUp
	err := c.doJSON(ctx, http.MethodGet, routes.TopUps, q, nil, &out)
	return out, err
}

func (c *Client) MyTopUps(ctx context.Context) ([]resources.TopUp, error) {
	var out []resources.TopUp
	err := c.doJSON(ctx, http.MethodGet, routes.MyTopUps, nil, nil, &out)
	return out, err
}

// ReviewTopUp aprova ou rejeita uma recarga pendente.
func (c *Client) ReviewTopUp(ctx context.Context, id int64, status resources.TopUpStatus) (resources.TopUp, error) {
	if status != resources.TopUpApproved && status != resources.TopUpRejected {
		return resources.TopUp{}, fmt.Errorf("topup %d -> %s: %w", id, status, ErrInvalidDecision)
	}
	var out resources.TopUp
	err := c.doJSON(ctx, http.MethodPatch, routes.TopUp(id), nil, resources.TopUpReview{Status: status}, &out)
	return out, err
}

// Proof é o comprovante anexado à recarga.
type Proof struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

// TopUpSubmission é o formulário multipart de POST /wallet/topups.
type TopUpSubmission struct {
	Amount    decimal.Decimal
	BankName  string
	RefNumber string
	Proof     *Proof
}

// SubmitTopUp envia a recarga com o comprovante. Sem comprovante nada é enviado.
func (c *Client) SubmitTopUp(ctx context.Context, in TopUpSubmission) (resources.TopUp, error) {
	if in.Proof == nil || in.Proof.Content == nil {
		return resources.TopUp{}, ErrMissingProof
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := []struct{ k, v string }{
		{"amount", in.Amount.String()},
		{"bank_name", in.BankName},
		{"ref_number", in.RefNumber},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.k, f.v); err != nil {
			return resources.TopUp{}, fmt.Errorf("write field %s: %w", f.k, err)
		}
	}

	name := in.Proof.FileName
	if name == "" {
		name = "comprobante.jpg"
	}
	ctype := in.Proof.ContentType
	if ctype == "" {
		ctype = "image/jpeg"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="proof"; filename=%q`, name))
	h.Set("Content-Type", ctype)
	part, err := mw.CreatePart(h)
	if err != nil {
		return resources.TopUp{}, fmt.Errorf("create proof part: %w", err)
	}
	if _, err := io.Copy(part, in.Proof.Content); err != nil {
		return resources.TopUp{}, fmt.Errorf("copy proof: %w", err)
	}
	if err := mw.Close(); err != nil {
		return resources.TopUp{}, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, routes.TopUps, nil, &buf, mw.FormDataContentType())
	if err != nil {
		return resources.TopUp{}, err
	}
	var out resources.TopUp
	err = c.do(req, routes.TopUps, &out)
	return out, err
}

// Withdrawals lista saques filtrados por status (admin).
func (c *Client) Withdrawals(ctx context.Context, status resources.WithdrawalStatus) ([]resources.Withdrawal, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {string(status)}}
	}
	var out []resources.Withdrawal
	err := c.doJSON(ctx, http.MethodGet, routes.Withdrawals, q, nil, &out)
	return out, err
}

func (c *Client) MyWithdrawals(ctx context.Context) ([]resources.Withdrawal, error) {
	var out []resources.Withdrawal
	err := c.doJSON(ctx, http.MethodGet, routes.MyWithdrawals, nil, nil, &out)
	return out, err
}

// ReviewWithdrawal só aceita PAID ou REJECTED.
func (c *Client) ReviewWithdrawal(ctx context.Context, id int64, status resources.WithdrawalStatus) (resources.Withdrawal, error) {
	if status != resources.WithdrawalPaid && status != resources.WithdrawalRejected {
		return resources.Withdrawal{}, fmt.Errorf("withdrawal %d -> %s: %w", id, status, ErrInvalidDecision)
	}
	var out resources.Withdrawal
	err := c.doJSON(ctx, http.MethodPatch, routes.Withdrawal(id), nil, resources.WithdrawalReview{Status: status}, &out)
	return out, err
}

func (c *Client) RequestWithdrawal(ctx context.Context, in resources.WithdrawalCreate) (resources.Withdrawal, error) {
	var out resources.Withdrawal
	err := c.doJSON(ctx, http.MethodPost, routes.Withdrawals, nil, in, &out)
	return out, err
}

func (c *Client) Balance(ctx context.Context) (resources.Balance, error) {
	var out resources.Balance
	err := c.doJSON(ctx, http.MethodGet, routes.MyBalance, nil, nil, &out)
	return out, err
}

func (c *Client) Ledger(ctx context.Context) ([]resources.LedgerEntry, error) {
	var out []resources.LedgerEntry
	err := c.doJSON(ctx, http.MethodGet, routes.MyLedger, nil, nil, &out)
	return out, err
}
