package ledger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-token")
}

func TestLoginDecodesSession(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %q, want /api/auth/login", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["identifier"] != "ada" || body["password"] != "hunter2" {
			t.Errorf("body = %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","user":{"user_id":"u1","username":"ada","balance":"42.50"}}`))
	})

	s, err := c.Login(context.Background(), "ada", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Token != "tok-1" {
		t.Errorf("token = %q, want tok-1", s.Token)
	}
	if !s.User.Balance.Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("balance = %s, want 42.50", s.User.Balance)
	}
}

func TestSendPaymentHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID missing on mutating call")
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		w.Write([]byte(`{"transaction_id":"t1","fee":"0.25","new_balance":"10.00"}`))
	})

	res, err := c.SendPayment(context.Background(), "u2", decimal.RequireFromString("5.00"), "lunch")
	if err != nil {
		t.Fatalf("SendPayment: %v", err)
	}
	if res.TransactionID != "t1" {
		t.Errorf("transaction id = %q, want t1", res.TransactionID)
	}
	if !res.Fee.Equal(decimal.RequireFromString("0.25")) {
		t.Errorf("fee = %s, want 0.25", res.Fee)
	}
}

func TestGetOmitsRequestID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-ID") != "" {
			t.Error("X-Request-ID set on read call")
		}
		w.Write([]byte(`[]`))
	})

	if _, err := c.ListTransactions(context.Background()); err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
}

func TestDeclineMapsToRejection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Insufficient funds"}`))
	})

	_, err := c.SendPayment(context.Background(), "u2", decimal.RequireFromString("999.00"), "")
	rej, ok := IsRejection(err)
	if !ok {
		t.Fatalf("error = %v, want *Rejection", err)
	}
	if rej.Detail != "Insufficient funds" {
		t.Errorf("detail = %q, want server message verbatim", rej.Detail)
	}
	if rej.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rej.Status)
	}
}

func TestServerErrorIsTransient(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetProfile(context.Background())
	var te *TransientError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TransientError", err)
	}
	if _, ok := IsRejection(err); ok {
		t.Error("5xx must not surface as a decline")
	}
}

func TestNetworkFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(srv.URL, "")

	_, err := c.ListReceivedRequests(context.Background())
	var te *TransientError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TransientError", err)
	}
}

func TestLookupUsers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "bob" {
			t.Errorf("query = %q, want bob", got)
		}
		w.Write([]byte(`[{"user_id":"u2","username":"bob"},{"user_id":"u3","username":"bobby"}]`))
	})

	users, err := c.LookupUsers(context.Background(), "bob")
	if err != nil {
		t.Fatalf("LookupUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	if users[0].Username != "bob" {
		t.Errorf("first match = %q, want bob", users[0].Username)
	}
}

func TestWithdrawCarriesSpeed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["transfer_speed"] != "instant" {
			t.Errorf("transfer_speed = %v, want instant", body["transfer_speed"])
		}
		w.Write([]byte(`{"transaction_id":"t9","fee":"1.50","new_balance":"8.50","estimated_arrival":"Within 30 minutes"}`))
	})

	res, err := c.Withdraw(context.Background(), decimal.RequireFromString("100.00"), "acct-1", SpeedInstant)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if res.EstimatedArrival != "Within 30 minutes" {
		t.Errorf("estimated arrival = %q", res.EstimatedArrival)
	}
}
