package resources

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOptionalNullAndMissing(t *testing.T) {
	var k KYC
	if err := json.Unmarshal([]byte(`{"doc_type":"DNI","doc_number":null}`), &k); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := k.DocType.Get(); !ok || v != "DNI" {
		t.Errorf("doc_type: got %q set=%v", v, ok)
	}
	if k.DocNumber.IsSet() {
		t.Error("doc_number should be unset for null")
	}
	if k.Verified.IsSet() {
		t.Error("verified_bool should be unset when missing")
	}
	if k.Verified.OrElse(false) {
		t.Error("OrElse should return default")
	}
}

func TestKYCUpdateOmitsUnset(t *testing.T) {
	b, err := json.Marshal(KYCUpdate{DocType: Some("DNI"), DocNumber: Some("123")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"doc_type":"DNI","doc_number":"123"}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestTimestampNaive(t *testing.T) {
	var m Match
	if err := json.Unmarshal([]byte(`{"id":1,"scheduled_at":"2025-03-15T18:00:00"}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)
	if !m.ScheduledAt.Equal(want) {
		t.Errorf("scheduled_at: got %v", m.ScheduledAt)
	}
}

func TestDecimalAmounts(t *testing.T) {
	var top TopUp
	if err := json.Unmarshal([]byte(`{"id":1,"amount":"100.50","status":"PENDING"}`), &top); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !top.Amount.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("amount: got %s", top.Amount)
	}
	b, _ := json.Marshal(PlaceBet{MarketID: 7, Selection: "HOME", Stake: decimal.RequireFromString("50")})
	if string(b) != `{"market_id":7,"selection":"HOME","stake":"50"}` {
		t.Errorf("place bet body: %s", b)
	}
}
