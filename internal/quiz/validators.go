package quiz

// CanAdvance reports whether forward navigation from s is allowed with the
// current answers. Steps that collect nothing are always passable.
func CanAdvance(s Step, a *Answers) bool {
	if a == nil {
		a = NewAnswers()
	}
	switch s {
	case StepAgeSelection:
		return a.ageRange != ""
	case StepGoals:
		return len(a.SelectedGoalIDs()) > 0
	case StepChairYogaExperience:
		return a.experience != ""
	case StepBodyType:
		return a.bodyType != ""
	case StepDreamBody:
		return a.dreamBody != ""
	case StepTargetZones:
		return len(a.targetZones) > 0
	case StepExerciseStyle:
		return len(a.exerciseStyle) > 0
	case StepAvailableTime:
		return a.availableTime != ""
	case StepBMICalculator:
		return a.bmi > 0
	case StepSales:
		return a.selectedPlan != ""
	default:
		// sensitivity-check accepts an empty answer; info screens gate nothing
		return true
	}
}

// Advance returns the next step when s may be left, and (s, false) when the
// move is blocked. A blocked move touches nothing.
func Advance(s Step, a *Answers) (Step, bool) {
	if !CanAdvance(s, a) {
		return s, false
	}
	return NextStep(s, a), true
}
