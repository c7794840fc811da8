package catalog

import "github.com/ranilearn/rani/internal/i18n"

// SimulationKind identifies a simulated payment-app flow.
type SimulationKind string

const (
	SimUPIPay SimulationKind = "upi_pay"
	SimPaytm  SimulationKind = "paytm"
	SimGPay   SimulationKind = "gpay"
	SimMaps   SimulationKind = "maps"
)

// SimulationKinds returns every known simulation kind.
func SimulationKinds() []SimulationKind {
	return []SimulationKind{SimUPIPay, SimPaytm, SimGPay, SimMaps}
}

// Step is one content step of a lesson. The set of implementations is
// closed: *InfoStep, *SimulationStep and *PracticeStep.
type Step interface {
	Base() StepBase
	isStep()
}

// StepBase holds the fields every step variant carries.
type StepBase struct {
	ID          string
	Title       i18n.Text
	Description i18n.Text
}

func (b StepBase) Base() StepBase { return b }

// InfoStep displays content only.
type InfoStep struct {
	StepBase
	Image string
	Video i18n.Text
}

// SimulationStep hands control to a simulated app flow and is complete
// once that flow signals completion.
type SimulationStep struct {
	StepBase
	Kind SimulationKind
}

// PracticeStep is a word-bank sentence construction exercise.
type PracticeStep struct {
	StepBase
	SourceText      i18n.Text
	CorrectSentence string
	WordBank        []string
}

func (*InfoStep) isStep()       {}
func (*SimulationStep) isStep() {}
func (*PracticeStep) isStep()   {}
