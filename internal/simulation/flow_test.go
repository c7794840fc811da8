package simulation

import (
	"errors"
	"testing"

	"github.com/ranilearn/rani/internal/catalog"
)

func newFlow(t *testing.T, kind catalog.SimulationKind) *Flow {
	t.Helper()
	f, err := New(kind, "1234")
	if err != nil {
		t.Fatalf("New(%s): %v", kind, err)
	}
	return f
}

func typeAll(fn func(rune), s string) {
	for _, r := range s {
		fn(r)
	}
}

func TestPaymentFlow_HappyPath(t *testing.T) {
	for _, kind := range []catalog.SimulationKind{catalog.SimUPIPay, catalog.SimPaytm, catalog.SimGPay} {
		f := newFlow(t, kind)
		if f.Stage() != StageLauncher {
			t.Fatalf("%s: start stage = %v, want launcher", kind, f.Stage())
		}
		if err := f.Open(); err != nil {
			t.Fatalf("%s: Open: %v", kind, err)
		}
		if err := f.Scan(); err != nil {
			t.Fatalf("%s: Scan: %v", kind, err)
		}
		typeAll(f.TypeAmount, "50")
		if err := f.Pay(); err != nil {
			t.Fatalf("%s: Pay: %v", kind, err)
		}
		typeAll(f.TypePIN, "1234")
		if err := f.SubmitPIN(); err != nil {
			t.Fatalf("%s: SubmitPIN: %v", kind, err)
		}
		if f.Stage() != StageSuccess {
			t.Fatalf("%s: stage = %v, want success", kind, f.Stage())
		}
		if !f.Finish() {
			t.Errorf("%s: first Finish() = false", kind)
		}
		if f.Finish() {
			t.Errorf("%s: second Finish() = true, want completion once", kind)
		}
	}
}

func TestPaymentFlow_AmountRequired(t *testing.T) {
	f := newFlow(t, catalog.SimUPIPay)
	f.Open()
	f.Scan()
	if err := f.Pay(); !errors.Is(err, ErrAmountRequired) {
		t.Fatalf("Pay() error = %v, want ErrAmountRequired", err)
	}
	typeAll(f.TypeAmount, "0a")
	if f.Amount() != "" {
		t.Errorf("amount = %q, want leading zero and letters ignored", f.Amount())
	}
	typeAll(f.TypeAmount, "12345678")
	if f.Amount() != "123456" {
		t.Errorf("amount = %q, want capped at 6 digits", f.Amount())
	}
	f.EraseAmount()
	if f.Amount() != "12345" {
		t.Errorf("amount after erase = %q", f.Amount())
	}
}

func TestPaymentFlow_IncorrectPIN(t *testing.T) {
	f := newFlow(t, catalog.SimGPay)
	f.Open()
	f.Scan()
	f.TypeAmount('5')
	f.Pay()

	typeAll(f.TypePIN, "12")
	if err := f.SubmitPIN(); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("short PIN error = %v, want ErrInvalidAction", err)
	}
	typeAll(f.TypePIN, "999")
	if f.PINDigits() != 4 {
		t.Errorf("PIN digits = %d, want capped at 4", f.PINDigits())
	}
	if err := f.SubmitPIN(); !errors.Is(err, ErrIncorrectPIN) {
		t.Fatalf("SubmitPIN() error = %v, want ErrIncorrectPIN", err)
	}
	if f.PINDigits() != 0 || f.Stage() != StagePIN {
		t.Errorf("after wrong PIN: digits %d, stage %v", f.PINDigits(), f.Stage())
	}
	if f.Finish() {
		t.Error("Finish() before success should not complete")
	}
}

func TestPaymentFlow_BackReturnsToLauncher(t *testing.T) {
	f := newFlow(t, catalog.SimPaytm)
	if err := f.Back(); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Back() at launcher error = %v, want ErrInvalidAction", err)
	}
	f.Open()
	f.Scan()
	f.TypeAmount('7')
	f.Pay()
	f.TypePIN('1')
	if err := f.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if f.Stage() != StageLauncher || f.Amount() != "" || f.PINDigits() != 0 {
		t.Errorf("after back: stage %v, amount %q, pin %d", f.Stage(), f.Amount(), f.PINDigits())
	}
}

func TestMapsFlow(t *testing.T) {
	f := newFlow(t, catalog.SimMaps)
	if f.Stage() != StageMap {
		t.Fatalf("stage = %v, want map", f.Stage())
	}
	if err := f.Open(); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("Open() on maps error = %v, want ErrInvalidAction", err)
	}
	if !f.Finish() || !f.Done() {
		t.Error("maps should complete on a single confirm")
	}
	if f.Finish() {
		t.Error("maps completed twice")
	}
}

func TestNew_UnknownKind(t *testing.T) {
	if _, err := New("bhim", "1234"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestAppName(t *testing.T) {
	tests := map[catalog.SimulationKind]string{
		catalog.SimUPIPay: "BHIM UPI",
		catalog.SimPaytm:  "Paytm",
		catalog.SimGPay:   "Google Pay",
		catalog.SimMaps:   "Maps",
	}
	for kind, want := range tests {
		if got := newFlow(t, kind).AppName(); got != want {
			t.Errorf("AppName(%s) = %q, want %q", kind, got, want)
		}
	}
}
