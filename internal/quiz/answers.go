package quiz

import "strings"

// Answers is the session's answer store. It is not safe for concurrent use;
// callers sharing one across goroutines must route every write through a
// single owner (see memcache.SessionStore.Update).
type Answers struct {
	ageRange      AgeRange
	bodyType      BodyType
	dreamBody     DreamBody
	goals         []Goal
	experience    Experience
	targetZones   map[TargetZone]struct{}
	exerciseStyle map[ExerciseStyle]struct{}
	availableTime AvailableTime
	bmi           float64
	sensitivities map[Sensitivity]struct{}
	email         string
	selectedPlan  PlanCode
}

func NewAnswers() *Answers {
	return &Answers{
		goals:         goalCatalog(),
		targetZones:   make(map[TargetZone]struct{}),
		exerciseStyle: make(map[ExerciseStyle]struct{}),
		sensitivities: make(map[Sensitivity]struct{}),
	}
}

func (a *Answers) AgeRange() AgeRange { return a.ageRange }
func (a *Answers) SetAgeRange(v AgeRange) { a.ageRange = v }
func (a *Answers) BodyType() BodyType { return a.bodyType }
func (a *Answers) SetBodyType(v BodyType) { a.bodyType = v }
func (a *Answers) DreamBody() DreamBody { return a.dreamBody }
func (a *Answers) SetDreamBody(v DreamBody) { a.dreamBody = v }
func (a *Answers) ChairYogaExperience() Experience { return a.experience }
func (a *Answers) SetChairYogaExperience(v Experience) { a.experience = v }
func (a *Answers) AvailableTime() AvailableTime { return a.availableTime }
func (a *Answers) SetAvailableTime(v AvailableTime) { a.availableTime = v }
func (a *Answers) SelectedPlan() PlanCode { return a.selectedPlan }
func (a *Answers) SetSelectedPlan(v PlanCode) { a.selectedPlan = v }

// Goals returns a copy of the catalog in its fixed order.
func (a *Answers) Goals() []Goal {
	out := make([]Goal, len(a.goals))
	copy(out, a.goals)
	return out
}

// ToggleGoal flips the selected flag of the goal with the given id. Other
// goals are untouched; an id outside the catalog changes nothing.
func (a *Answers) ToggleGoal(id string) bool {
	for i := range a.goals {
		if a.goals[i].ID == id {
			a.goals[i].Selected = !a.goals[i].Selected
			return true
		}
	}
	return false
}

func (a *Answers) GoalSelected(id string) bool {
	for _, g := range a.goals {
		if g.ID == id {
			return g.Selected
		}
	}
	return false
}

func (a *Answers) SelectedGoalIDs() []string {
	var ids []string
	for _, g := range a.goals {
		if g.Selected {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

func (a *Answers) TargetZones() []TargetZone {
	return orderedSet(a.targetZones, targetZones)
}

func (a *Answers) ToggleTargetZone(z TargetZone) {
	toggle(a.targetZones, z)
}

func (a *Answers) ExerciseStyles() []ExerciseStyle {
	return orderedSet(a.exerciseStyle, exerciseStyles)
}

func (a *Answers) ToggleExerciseStyle(s ExerciseStyle) {
	toggle(a.exerciseStyle, s)
}

func (a *Answers) BodyMassIndex() float64 { return a.bmi }

// SetBodyMassIndex stores the BMI once. Non-positive values and any write
// after the first accepted one are ignored.
func (a *Answers) SetBodyMassIndex(v float64) bool {
	if v <= 0 || a.bmi > 0 {
		return false
	}
	a.bmi = v
	return true
}

func (a *Answers) Sensitivities() []Sensitivity {
	return orderedSet(a.sensitivities, sensitivities)
}

func (a *Answers) HasSensitivity(s Sensitivity) bool {
	_, ok := a.sensitivities[s]
	return ok
}

// ToggleSensitivity applies one selection click. "none" is exclusive: picking
// it drops every other value, picking anything else drops "none".
func (a *Answers) ToggleSensitivity(s Sensitivity) {
	if _, held := a.sensitivities[s]; held {
		delete(a.sensitivities, s)
		return
	}
	if s == SensitivityNone {
		clear(a.sensitivities)
	} else {
		delete(a.sensitivities, SensitivityNone)
	}
	a.sensitivities[s] = struct{}{}
}

func (a *Answers) Email() string { return a.email }

// SetEmail keeps the address only if it contains '@'.
func (a *Answers) SetEmail(email string) bool {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return false
	}
	a.email = email
	return true
}

// Snapshot is a read-only copy of the store for transport.
type Snapshot struct {
	AgeRange            AgeRange        `json:"age_range,omitempty"`
	BodyType            BodyType        `json:"body_type,omitempty"`
	DreamBody           DreamBody       `json:"dream_body,omitempty"`
	Goals               []Goal          `json:"goals"`
	ChairYogaExperience Experience      `json:"chair_yoga_experience,omitempty"`
	TargetZones         []TargetZone    `json:"target_zones"`
	ExerciseStyle       []ExerciseStyle `json:"exercise_style"`
	AvailableTime       AvailableTime   `json:"available_time,omitempty"`
	BodyMassIndex       float64         `json:"body_mass_index,omitempty"`
	Sensitivities       []Sensitivity   `json:"sensitivities"`
	Email               string          `json:"email,omitempty"`
	SelectedPlan        PlanCode        `json:"selected_plan,omitempty"`
}

func (a *Answers) Snapshot() Snapshot {
	return Snapshot{
		AgeRange:            a.ageRange,
		BodyType:            a.bodyType,
		DreamBody:           a.dreamBody,
		Goals:               a.Goals(),
		ChairYogaExperience: a.experience,
		TargetZones:         nonNil(a.TargetZones()),
		ExerciseStyle:       nonNil(a.ExerciseStyles()),
		AvailableTime:       a.availableTime,
		BodyMassIndex:       a.bmi,
		Sensitivities:       nonNil(a.Sensitivities()),
		Email:               a.email,
		SelectedPlan:        a.selectedPlan,
	}
}

func toggle[T comparable](set map[T]struct{}, v T) {
	if _, ok := set[v]; ok {
		delete(set, v)
		return
	}
	set[v] = struct{}{}
}

func orderedSet[T comparable](set map[T]struct{}, order []T) []T {
	var out []T
	for _, v := range order {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
