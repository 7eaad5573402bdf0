package quiz

// Step identifies one screen of the quiz by its route name.
type Step string

const (
	StepAgeSelection        Step = "age-selection"
	StepGoals               Step = "goals"
	StepChairYogaExperience Step = "chair-yoga-experience"
	StepChairYogaInfo       Step = "chair-yoga-info"
	StepBodyType            Step = "body-type"
	StepDreamBody           Step = "dream-body"
	StepTargetZones         Step = "target-zones"
	StepSensitivityCheck    Step = "sensitivity-check"
	StepSupport             Step = "support-step"
	StepExerciseStyle       Step = "exercise-style"
	StepAvailableTime       Step = "available-time"
	StepBMICalculator       Step = "bmi-calculator"
	StepProfileSummary      Step = "profile-summary"
	StepCreatingPlan        Step = "creating-plan"
	StepResults             Step = "results"
	StepSales               Step = "sales"
	StepCheckout            Step = "checkout"
	StepSuccess             Step = "success"
)

// StartStep is where new sessions begin and where unknown steps recover to.
const StartStep = StepAgeSelection

var sequence = []Step{
	StepAgeSelection,
	StepGoals,
	StepChairYogaExperience,
	StepChairYogaInfo,
	StepBodyType,
	StepDreamBody,
	StepTargetZones,
	StepSensitivityCheck,
	StepSupport,
	StepExerciseStyle,
	StepAvailableTime,
	StepBMICalculator,
	StepProfileSummary,
	StepCreatingPlan,
	StepResults,
	StepSales,
	StepCheckout,
	StepSuccess,
}

type Kind string

const (
	KindSingleChoice Kind = "single_choice"
	KindMultiChoice  Kind = "multiple_choice"
	KindInput        Kind = "input"
	KindInfo         Kind = "info"
)

var kinds = map[Step]Kind{
	StepAgeSelection:        KindSingleChoice,
	StepGoals:               KindMultiChoice,
	StepChairYogaExperience: KindSingleChoice,
	StepBodyType:            KindSingleChoice,
	StepDreamBody:           KindSingleChoice,
	StepTargetZones:         KindMultiChoice,
	StepSensitivityCheck:    KindMultiChoice,
	StepExerciseStyle:       KindMultiChoice,
	StepAvailableTime:       KindSingleChoice,
	StepBMICalculator:       KindInput,
	StepSales:               KindSingleChoice,
}

// KindOf reports how a step collects input. Steps that collect nothing are
// KindInfo.
func KindOf(s Step) Kind {
	if k, ok := kinds[s]; ok {
		return k
	}
	return KindInfo
}

// Steps returns the canonical order.
func Steps() []Step {
	out := make([]Step, len(sequence))
	copy(out, sequence)
	return out
}

func TotalSteps() int { return len(sequence) }

// Position is the 1-based index of s in the canonical order, or 0 when s is
// not a known step.
func Position(s Step) int {
	for i, v := range sequence {
		if v == s {
			return i + 1
		}
	}
	return 0
}

func Known(s Step) bool { return Position(s) > 0 }

// NextStep maps the current step to the one that follows it. Unknown steps
// and the last step lead back to StartStep. The sensitivity check skips the
// support screen when nothing (or "none") was reported.
//
// NextStep only reads a.
func NextStep(current Step, a *Answers) Step {
	switch current {
	case StepSensitivityCheck:
		if needsSupport(a) {
			return StepSupport
		}
		return StepExerciseStyle
	}

	i := Position(current)
	if i == 0 || i == len(sequence) {
		return StartStep
	}
	return sequence[i]
}

func needsSupport(a *Answers) bool {
	if a == nil {
		return false
	}
	if a.HasSensitivity(SensitivityNone) {
		return false
	}
	return len(a.sensitivities) > 0
}
