package apiclient_test

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/radieske/sports-bet-clients/internal/shared/apiclient"
	"github.com/radieske/sports-bet-clients/internal/shared/apitest"
	"github.com/radieske/sports-bet-clients/internal/shared/metrics"
	"github.com/radieske/sports-bet-clients/internal/shared/session"
	"github.com/radieske/sports-bet-clients/pkg/contracts/resources"
)

func login(t *testing.T, srv *apitest.Server, email, password string) *apiclient.Client {
	t.Helper()
	tok, err := apiclient.New(srv.URL, nil).Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login %s: %v", email, err)
	}
	return apiclient.New(srv.URL, &session.Session{Token: tok.AccessToken, Identity: email})
}

func TestBearerAttachedOnlyWithToken(t *testing.T) {
	srv := apitest.New(t)
	ctx := context.Background()

	anon := apiclient.New(srv.URL, nil)
	_, _ = anon.Tournaments(ctx)
	empty := apiclient.New(srv.URL, &session.Session{})
	_, _ = empty.Tournaments(ctx)

	authed := apiclient.New(srv.URL, &session.Session{Token: "abc", Identity: "admin"})
	_, _ = authed.Tournaments(ctx)

	reqs := srv.Requests()
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(reqs))
	}
	if reqs[0].Authorization != "" || reqs[1].Authorization != "" {
		t.Errorf("anonymous requests carried Authorization: %q %q", reqs[0].Authorization, reqs[1].Authorization)
	}
	if reqs[2].Authorization != "Bearer abc" {
		t.Errorf("authed request: got %q", reqs[2].Authorization)
	}
}

func TestSessionIsCopied(t *testing.T) {
	srv := apitest.New(t)
	sess := &session.Session{Token: "first"}
	c := apiclient.New(srv.URL, sess)
	sess.Token = "second"

	_, _ = c.Tournaments(context.Background())
	if got := srv.Requests()[0].Authorization; got != "Bearer first" {
		t.Errorf("got %q", got)
	}
}

func TestUnauthorized(t *testing.T) {
	srv := apitest.New(t)
	_, err := apiclient.New(srv.URL, nil).Balance(context.Background())
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := apitest.New(t)
	_, err := apiclient.New(srv.URL, nil).Login(context.Background(), apitest.AdminEmail, "wrong-password")
	if !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if d, _ := apiclient.Detail(err); d != "Credenciales inválidas" {
		t.Errorf("detail: got %q", d)
	}
}

func TestBusinessDetailVerbatim(t *testing.T) {
	srv := apitest.New(t)
	srv.SeedBoard()
	c := login(t, srv, apitest.UserEmail, apitest.UserPassword)

	_, err := c.PlaceBet(context.Background(), resources.PlaceBet{MarketID: 7, Selection: "HOME", Stake: decimal.RequireFromString("50")})
	d, ok := apiclient.Detail(err)
	if !ok || d != "Saldo insuficiente" {
		t.Fatalf("detail: got %q ok=%v err=%v", d, ok, err)
	}
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Errorf("expected 400 APIError, got %v", err)
	}
}

func TestTransportError(t *testing.T) {
	c := apiclient.New("http://127.0.0.1:1", nil)
	_, err := c.Tournaments(context.Background())
	var te *apiclient.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T %v", err, err)
	}
	if _, ok := apiclient.Detail(err); ok {
		t.Error("transport error should carry no detail")
	}
}

func TestRequestIDHeader(t *testing.T) {
	var ids []string
	api := apitest.New(t)
	c := apiclient.New(api.URL, nil, apiclient.WithHTTPClient(&http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			ids = append(ids, r.Header.Get(apiclient.HeaderRequestID))
			return http.DefaultTransport.RoundTrip(r)
		}),
	}))
	_, _ = c.Tournaments(context.Background())
	_, _ = c.Tournaments(context.Background())
	if len(ids) != 2 || ids[0] == "" || ids[0] == ids[1] {
		t.Errorf("request ids: %v", ids)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestReviewRejectsOtherStatusesLocally(t *testing.T) {
	srv := apitest.New(t)
	c := login(t, srv, apitest.AdminEmail, apitest.AdminPassword)
	srv.ResetRequests()
	ctx := context.Background()

	if _, err := c.ReviewWithdrawal(ctx, 1, resources.WithdrawalRequested); !errors.Is(err, apiclient.ErrInvalidDecision) {
		t.Errorf("withdrawal -> REQUESTED: got %v", err)
	}
	if _, err := c.ReviewTopUp(ctx, 1, resources.TopUpPending); !errors.Is(err, apiclient.ErrInvalidDecision) {
		t.Errorf("topup -> PENDING: got %v", err)
	}
	if _, err := c.UpdateMarketStatus(ctx, 1, "SETTLED"); !errors.Is(err, apiclient.ErrInvalidDecision) {
		t.Errorf("market -> SETTLED: got %v", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestSubmitTopUpMultipart(t *testing.T) {
	srv := apitest.New(t)
	c := login(t, srv, apitest.UserEmail, apitest.UserPassword)
	srv.ResetRequests()

	top, err := c.SubmitTopUp(context.Background(), apiclient.TopUpSubmission{
		Amount:    decimal.RequireFromString("100"),
		BankName:  "Banco Demo",
		RefNumber: "REF123",
		Proof:     &apiclient.Proof{FileName: "recibo.png", ContentType: "image/png", Content: strings.NewReader("PNGDATA")},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if top.Status != resources.TopUpPending {
		t.Errorf("status: got %s", top.Status)
	}
	if got := string(srv.Upload(top.ID)); got != "PNGDATA" {
		t.Errorf("uploaded proof: got %q", got)
	}

	req := srv.Requests()[0]
	mediaType, params, err := mime.ParseMediaType(req.ContentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("content type: %q (%v)", req.ContentType, err)
	}
	form, err := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"]).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	for k, want := range map[string]string{"amount": "100", "bank_name": "Banco Demo", "ref_number": "REF123"} {
		if got := form.Value[k]; len(got) != 1 || got[0] != want {
			t.Errorf("field %s: got %v", k, got)
		}
	}
	if files := form.File["proof"]; len(files) != 1 || files[0].Filename != "recibo.png" {
		t.Errorf("proof part: %+v", files)
	}
}

func TestSubmitTopUpWithoutProof(t *testing.T) {
	srv := apitest.New(t)
	c := login(t, srv, apitest.UserEmail, apitest.UserPassword)
	srv.ResetRequests()

	_, err := c.SubmitTopUp(context.Background(), apiclient.TopUpSubmission{Amount: decimal.NewFromInt(10)})
	if !errors.Is(err, apiclient.ErrMissingProof) {
		t.Fatalf("expected ErrMissingProof, got %v", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestMetricsObserved(t *testing.T) {
	srv := apitest.New(t)
	reg := prometheus.NewRegistry()
	c := apiclient.New(srv.URL, nil, apiclient.WithMetrics(metrics.NewClientMetrics(reg)))
	_, _ = c.Matches(context.Background(), 3)

	n, err := testutil.GatherAndCount(reg, "betclient_api_requests_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("series: got %d", n)
	}
}

func TestRefreshIsExplicit(t *testing.T) {
	srv := apitest.New(t)
	c := login(t, srv, apitest.UserEmail, apitest.UserPassword)
	srv.Expire()
	srv.ResetRequests()

	if _, err := c.Balance(context.Background()); !errors.Is(err, apiclient.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if n := srv.Count(http.MethodPost, "/auth/refresh"); n != 0 {
		t.Errorf("refresh called %d times", n)
	}
	if n := len(srv.Requests()); n != 1 {
		t.Errorf("expected a single request without retry, got %d", n)
	}
}
