package entity

import (
	"encoding/json"
	"testing"
)

func TestErrorResult(t *testing.T) {
	r := ErrorResult("a@x.com")
	if !r.Failed() {
		t.Fatalf("expected error marker to be failed")
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"email":"a@x.com","status":"error","sub_status":"network_error"}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestResultNullSubStatus(t *testing.T) {
	r := Result{Email: "a@x.com", Status: "valid", Upstream: json.RawMessage(`{"status":"valid"}`)}
	if r.Failed() {
		t.Fatalf("did not expect failed")
	}
	if got := r.SubStatusOrEmpty(); got != "" {
		t.Fatalf("expected empty sub status, got %q", got)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"email":"a@x.com","status":"valid","sub_status":null}` {
		t.Fatalf("unexpected json: %s", got)
	}
}
