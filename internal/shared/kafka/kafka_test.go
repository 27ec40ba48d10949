package kafka

import (
	"strings"
	"testing"
)

func TestNewWriterSplitsBrokers(t *testing.T) {
	w := NewWriter("a:9092,b:9092", "backoffice_review_decided")
	if w.Topic != "backoffice_review_decided" {
		t.Errorf("topic: got %s", w.Topic)
	}
	got := w.Addr.String()
	if !strings.Contains(got, "a:9092") || !strings.Contains(got, "b:9092") {
		t.Errorf("addr: got %s", got)
	}
}
