// Package simulation implements the simulated payment and maps apps that
// simulation steps hand control to. A flow reports completion exactly once.
package simulation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ranilearn/rani/internal/catalog"
)

var (
	// ErrAmountRequired is returned when paying without an amount.
	ErrAmountRequired = errors.New("amount required")
	// ErrIncorrectPIN is returned for a wrong PIN; the entry is cleared.
	ErrIncorrectPIN = errors.New("incorrect PIN")
	// ErrInvalidAction is returned for an action the current stage does
	// not offer.
	ErrInvalidAction = errors.New("invalid action for stage")
)

const (
	PINLength       = 4
	maxAmountDigits = 6
	// TransactionID is shown on the success screen.
	TransactionID = "839201"
	// Payee is the merchant every payment goes to.
	Payee = "Merchant Store"
)

// Stage is a screen within a simulated app.
type Stage int

const (
	StageLauncher Stage = iota // app home with the scan entry point
	StageScanQR
	StageAmount
	StagePIN
	StageSuccess
	StageMap  // maps: the service centre search
	StageDone // completion delivered
)

func (s Stage) String() string {
	return [...]string{"launcher", "scan_qr", "amount", "pin", "success", "map", "done"}[s]
}

// Flow is one run of a simulated app.
type Flow struct {
	kind    catalog.SimulationKind
	demoPIN string
	stage   Stage
	amount  string
	pin     string
}

// New starts a flow of the given kind. demoPIN is the only PIN a payment
// flow accepts.
func New(kind catalog.SimulationKind, demoPIN string) (*Flow, error) {
	f := &Flow{kind: kind, demoPIN: demoPIN}
	switch kind {
	case catalog.SimUPIPay, catalog.SimPaytm, catalog.SimGPay:
		f.stage = StageLauncher
	case catalog.SimMaps:
		f.stage = StageMap
	default:
		return nil, fmt.Errorf("unknown simulation kind %q", kind)
	}
	return f, nil
}

func (f *Flow) Kind() catalog.SimulationKind { return f.kind }
func (f *Flow) Stage() Stage                 { return f.stage }
func (f *Flow) Amount() string               { return f.amount }

// PINDigits returns how many PIN digits have been entered.
func (f *Flow) PINDigits() int { return len(f.pin) }

// Done reports whether the flow has delivered its completion.
func (f *Flow) Done() bool { return f.stage == StageDone }

// AppName is the display name of the simulated app.
func (f *Flow) AppName() string {
	switch f.kind {
	case catalog.SimPaytm:
		return "Paytm"
	case catalog.SimGPay:
		return "Google Pay"
	case catalog.SimMaps:
		return "Maps"
	}
	return "BHIM UPI"
}

func (f *Flow) require(stage Stage, action string) error {
	if f.stage != stage {
		return fmt.Errorf("%s at %s: %w", action, f.stage, ErrInvalidAction)
	}
	return nil
}

// Open leaves the launcher for the QR scanner.
func (f *Flow) Open() error {
	if err := f.require(StageLauncher, "open"); err != nil {
		return err
	}
	f.stage = StageScanQR
	return nil
}

// Scan pretends to read the merchant QR code.
func (f *Flow) Scan() error {
	if err := f.require(StageScanQR, "scan"); err != nil {
		return err
	}
	f.stage = StageAmount
	return nil
}

// TypeAmount appends a digit to the amount. Other runes are ignored.
func (f *Flow) TypeAmount(r rune) {
	if f.stage != StageAmount || !unicode.IsDigit(r) || len(f.amount) >= maxAmountDigits {
		return
	}
	if f.amount == "" && r == '0' {
		return
	}
	f.amount += string(r)
}

// EraseAmount removes the last amount digit.
func (f *Flow) EraseAmount() {
	if f.stage == StageAmount && f.amount != "" {
		f.amount = f.amount[:len(f.amount)-1]
	}
}

// Pay submits the amount and moves to PIN entry.
func (f *Flow) Pay() error {
	if err := f.require(StageAmount, "pay"); err != nil {
		return err
	}
	if strings.TrimSpace(f.amount) == "" {
		return ErrAmountRequired
	}
	f.stage = StagePIN
	return nil
}

// TypePIN appends a digit to the PIN, up to PINLength digits.
func (f *Flow) TypePIN(r rune) {
	if f.stage != StagePIN || !unicode.IsDigit(r) || len(f.pin) >= PINLength {
		return
	}
	f.pin += string(r)
}

// ErasePIN removes the last PIN digit.
func (f *Flow) ErasePIN() {
	if f.stage == StagePIN && f.pin != "" {
		f.pin = f.pin[:len(f.pin)-1]
	}
}

// SubmitPIN confirms the payment. It needs exactly PINLength digits; a
// wrong PIN clears the entry.
func (f *Flow) SubmitPIN() error {
	if err := f.require(StagePIN, "submit pin"); err != nil {
		return err
	}
	if len(f.pin) != PINLength {
		return fmt.Errorf("submit pin with %d digits: %w", len(f.pin), ErrInvalidAction)
	}
	if f.pin != f.demoPIN {
		f.pin = ""
		return ErrIncorrectPIN
	}
	f.stage = StageSuccess
	return nil
}

// Back returns from any in-app stage to the launcher, discarding the
// amount and PIN.
func (f *Flow) Back() error {
	switch f.stage {
	case StageScanQR, StageAmount, StagePIN:
		f.stage = StageLauncher
		f.amount, f.pin = "", ""
		return nil
	}
	return fmt.Errorf("back at %s: %w", f.stage, ErrInvalidAction)
}

// Finish delivers completion from the success screen or, for maps, from
// the map. It returns true only the first time.
func (f *Flow) Finish() bool {
	if f.stage != StageSuccess && f.stage != StageMap {
		return false
	}
	f.stage = StageDone
	return true
}
