package payment

import (
	"context"
	"runtime"
	"testing"

	"github.com/shopspring/decimal"

	"payme-tui/ledger"
)

type fakeService struct {
	sends     int
	requests  int
	fulfills  int
	adds      int
	withdraws int

	sendErr error
	release chan struct{} // when set, FulfillMoneyRequest blocks on it

	lastRecipient string
	lastAmount    decimal.Decimal
	lastNote      string
	lastSpeed     ledger.TransferSpeed
}

func (f *fakeService) SendPayment(_ context.Context, recipientID string, amount decimal.Decimal, note string) (ledger.PaymentResult, error) {
	f.sends++
	f.lastRecipient = recipientID
	f.lastAmount = amount
	f.lastNote = note
	if f.sendErr != nil {
		return ledger.PaymentResult{}, f.sendErr
	}
	return ledger.PaymentResult{
		TransactionID: "t1",
		Fee:           decimal.RequireFromString("0.25"),
		NewBalance:    decimal.RequireFromString("24.25"),
	}, nil
}

func (f *fakeService) CreateMoneyRequest(_ context.Context, requesteeID string, amount decimal.Decimal, note string) (ledger.MoneyRequest, error) {
	f.requests++
	f.lastRecipient = requesteeID
	f.lastAmount = amount
	f.lastNote = note
	return ledger.MoneyRequest{RequestID: "r1", Amount: amount}, nil
}

func (f *fakeService) FulfillMoneyRequest(_ context.Context, requestID string) (ledger.FulfillResult, error) {
	if f.release != nil {
		<-f.release
	}
	f.fulfills++
	return ledger.FulfillResult{
		TransactionID: "t2",
		NewBalance:    decimal.RequireFromString("10.00"),
	}, nil
}

func (f *fakeService) AddFunds(_ context.Context, amount decimal.Decimal, paymentMethodID string) (ledger.BalanceResult, error) {
	f.adds++
	f.lastAmount = amount
	return ledger.BalanceResult{TransactionID: "t3", NewBalance: amount}, nil
}

func (f *fakeService) Withdraw(_ context.Context, amount decimal.Decimal, accountID string, speed ledger.TransferSpeed) (ledger.WithdrawResult, error) {
	f.withdraws++
	f.lastSpeed = speed
	return ledger.WithdrawResult{
		TransactionID:    "t4",
		Fee:              decimal.RequireFromString("1.50"),
		NewBalance:       decimal.Zero,
		EstimatedArrival: "Within 30 minutes",
	}, nil
}

func bob() ledger.UserSummary {
	return ledger.UserSummary{UserID: "u2", Username: "bob"}
}

func TestSubmitSend(t *testing.T) {
	svc := &fakeService{}
	o := NewOrchestrator(svc)

	for _, k := range "25" {
		o.PressDigit(k)
	}
	o.PressDecimal()
	o.PressDigit('5')
	o.SetRecipient(bob())
	o.SetNote("lunch")

	out, err := o.Submit(context.Background(), KindSend)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if svc.sends != 1 {
		t.Fatalf("sends = %d, want 1", svc.sends)
	}
	if !svc.lastAmount.Equal(decimal.RequireFromString("25.5")) {
		t.Errorf("sent amount = %s, want 25.5", svc.lastAmount)
	}
	if svc.lastNote != "lunch" {
		t.Errorf("note = %q, want lunch", svc.lastNote)
	}
	if !out.HasBalance || !out.NewBalance.Equal(decimal.RequireFromString("24.25")) {
		t.Errorf("new balance = %s, want 24.25", out.NewBalance)
	}
	if !out.Refresh.Has(RefreshBalance) || !out.Refresh.Has(RefreshTransactions) {
		t.Errorf("refresh mask = %b, want balance and transactions", out.Refresh)
	}
	if out.Refresh.Has(RefreshRequests) {
		t.Error("a send must not invalidate received requests")
	}

	// Composition is cleared after success.
	if got := o.AmountDisplay(); got != "0" {
		t.Errorf("amount after submit = %q, want 0", got)
	}
	if _, ok := o.Recipient(); ok {
		t.Error("recipient should be cleared after submit")
	}
}

func TestSubmitRequestDoesNotMoveMoney(t *testing.T) {
	svc := &fakeService{}
	o := NewOrchestrator(svc)
	o.PressDigit('5')
	o.SetRecipient(bob())

	out, err := o.Submit(context.Background(), KindRequest)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if svc.requests != 1 || svc.sends != 0 {
		t.Fatalf("requests = %d, sends = %d", svc.requests, svc.sends)
	}
	if out.HasBalance {
		t.Error("a request carries no balance")
	}
	if out.Refresh.Has(RefreshBalance) {
		t.Error("a request must not invalidate the balance")
	}
	if !out.Refresh.Has(RefreshRequests) {
		t.Error("a request should refresh the request list")
	}
}

func TestSubmitValidation(t *testing.T) {
	t.Run("zero amount never reaches the service", func(t *testing.T) {
		svc := &fakeService{}
		o := NewOrchestrator(svc)
		o.SetRecipient(bob())

		_, err := o.Submit(context.Background(), KindSend)
		ve, ok := IsValidation(err)
		if !ok {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if ve.Field != "amount" {
			t.Errorf("field = %q, want amount", ve.Field)
		}
		if svc.sends != 0 {
			t.Errorf("service called %d times on invalid input", svc.sends)
		}
	})

	t.Run("missing recipient", func(t *testing.T) {
		svc := &fakeService{}
		o := NewOrchestrator(svc)
		o.PressDigit('5')

		_, err := o.Submit(context.Background(), KindSend)
		ve, ok := IsValidation(err)
		if !ok {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
		if ve.Field != "recipient" {
			t.Errorf("field = %q, want recipient", ve.Field)
		}
	})

	t.Run("validation failure does not latch busy", func(t *testing.T) {
		svc := &fakeService{}
		o := NewOrchestrator(svc)
		o.SetRecipient(bob())
		if _, err := o.Submit(context.Background(), KindSend); err == nil {
			t.Fatal("expected validation error")
		}
		if o.Busy() {
			t.Error("orchestrator stuck busy after validation failure")
		}
	})
}

func TestSubmitKeepsCompositionOnFailure(t *testing.T) {
	svc := &fakeService{sendErr: &ledger.Rejection{Status: 400, Detail: "Insufficient funds"}}
	o := NewOrchestrator(svc)
	o.PressDigit('9')
	o.SetRecipient(bob())

	_, err := o.Submit(context.Background(), KindSend)
	if _, ok := ledger.IsRejection(err); !ok {
		t.Fatalf("error = %v, want rejection passed through", err)
	}
	if got := o.AmountDisplay(); got != "9" {
		t.Errorf("amount after failure = %q, want 9 so the user can retry", got)
	}
	if o.Busy() {
		t.Error("orchestrator stuck busy after failure")
	}
}

func TestPayRequestAtMostOnce(t *testing.T) {
	svc := &fakeService{release: make(chan struct{})}
	o := NewOrchestrator(svc)
	req := ledger.MoneyRequest{
		RequestID: "r1",
		Requester: bob(),
		Amount:    decimal.RequireFromString("5.00"),
	}

	done := make(chan error, 1)
	go func() {
		_, err := o.PayRequest(context.Background(), req)
		done <- err
	}()

	// Wait for the first call to take the guard, then mash the key.
	for !o.Busy() {
		runtime.Gosched()
	}
	if _, err := o.PayRequest(context.Background(), req); err != ErrBusy {
		t.Fatalf("second PayRequest: %v, want ErrBusy", err)
	}

	close(svc.release)
	if err := <-done; err != nil {
		t.Fatalf("first PayRequest: %v", err)
	}
	if svc.fulfills != 1 {
		t.Errorf("fulfills = %d, want exactly 1", svc.fulfills)
	}
}

func TestAddFundsValidation(t *testing.T) {
	svc := &fakeService{}
	o := NewOrchestrator(svc)

	_, err := o.AddFunds(context.Background(), decimal.Zero, "acct-1")
	if _, ok := IsValidation(err); !ok {
		t.Fatalf("error = %v, want validation failure", err)
	}
	if svc.adds != 0 {
		t.Errorf("service called on zero amount")
	}

	out, err := o.AddFunds(context.Background(), decimal.RequireFromString("25.00"), "acct-1")
	if err != nil {
		t.Fatalf("AddFunds: %v", err)
	}
	if !out.Refresh.Has(RefreshBalance) || !out.Refresh.Has(RefreshTransactions) {
		t.Errorf("refresh mask = %b", out.Refresh)
	}
}

func TestWithdrawSoftBalanceCheck(t *testing.T) {
	svc := &fakeService{}
	o := NewOrchestrator(svc)
	balance := decimal.RequireFromString("10.00")

	_, _, err := o.Withdraw(context.Background(), decimal.RequireFromString("50.00"), balance, "acct-1", ledger.SpeedStandard)
	ve, ok := IsValidation(err)
	if !ok {
		t.Fatalf("error = %v, want validation failure", err)
	}
	if ve.Field != "amount" {
		t.Errorf("field = %q, want amount", ve.Field)
	}
	if svc.withdraws != 0 {
		t.Errorf("service called when amount exceeds balance")
	}

	out, arrival, err := o.Withdraw(context.Background(), decimal.RequireFromString("10.00"), balance, "acct-1", ledger.SpeedInstant)
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if svc.lastSpeed != ledger.SpeedInstant {
		t.Errorf("speed = %q, want instant", svc.lastSpeed)
	}
	if arrival != "Within 30 minutes" {
		t.Errorf("arrival = %q", arrival)
	}
	if !out.Fee.Equal(decimal.RequireFromString("1.50")) {
		t.Errorf("fee = %s, want server's 1.50", out.Fee)
	}
}

func TestPayRequestRefreshesEverything(t *testing.T) {
	svc := &fakeService{}
	o := NewOrchestrator(svc)
	req := ledger.MoneyRequest{RequestID: "r1", Requester: bob(), Amount: decimal.RequireFromString("5.00")}

	out, err := o.PayRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("PayRequest: %v", err)
	}
	want := RefreshBalance | RefreshTransactions | RefreshRequests
	if out.Refresh != want {
		t.Errorf("refresh mask = %b, want %b", out.Refresh, want)
	}
}
