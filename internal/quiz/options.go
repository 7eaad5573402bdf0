package quiz

// Every enum below uses the empty string as its "not answered" value, so an
// unset field can never be mistaken for a real option.

type AgeRange string

const (
	Age35to44 AgeRange = "35-44"
	Age45to54 AgeRange = "45-54"
	Age55to64 AgeRange = "55-64"
	Age65Plus AgeRange = "65+"
)

type BodyType string

const (
	BodyNormal BodyType = "normal" // slim/normal
	BodyCurvy  BodyType = "curvy"
	BodyPlus   BodyType = "plus"
)

type DreamBody string

const (
	DreamFit      DreamBody = "fit"
	DreamAthletic DreamBody = "athletic"
	DreamShapely  DreamBody = "shapely"
	DreamContent  DreamBody = "content"
)

type Experience string

const (
	ExperienceNever   Experience = "never"
	ExperienceTried   Experience = "tried"
	ExperienceRegular Experience = "regular"
)

type AvailableTime string

const (
	TimeLess15 AvailableTime = "less15"
	Time15to30 AvailableTime = "15to30"
	Time30to45 AvailableTime = "30to45"
	TimeMore45 AvailableTime = "more45"
)

type Sensitivity string

const (
	SensitivityBack  Sensitivity = "back"
	SensitivityKnees Sensitivity = "knees"
	SensitivityNone  Sensitivity = "none"
)

type TargetZone string

const (
	ZoneFullBody TargetZone = "full-body"
	ZoneBreasts  TargetZone = "breasts"
	ZoneArms     TargetZone = "arms"
	ZoneBelly    TargetZone = "belly"
	ZoneButt     TargetZone = "butt"
	ZoneLegs     TargetZone = "legs"
)

type ExerciseStyle string

const (
	StyleYoga     ExerciseStyle = "yoga"
	StyleStrength ExerciseStyle = "strength"
	StyleCardio   ExerciseStyle = "cardio"
	StyleHIIT     ExerciseStyle = "hiit"
	StyleMobility ExerciseStyle = "mobility"
)

type PlanCode string

const (
	PlanStarter  PlanCode = "starter"
	PlanComplete PlanCode = "complete"
	PlanPremium  PlanCode = "premium"
)

var (
	ageRanges      = []AgeRange{Age35to44, Age45to54, Age55to64, Age65Plus}
	bodyTypes      = []BodyType{BodyNormal, BodyCurvy, BodyPlus}
	dreamBodies    = []DreamBody{DreamFit, DreamAthletic, DreamShapely, DreamContent}
	experiences    = []Experience{ExperienceNever, ExperienceTried, ExperienceRegular}
	availableTimes = []AvailableTime{TimeLess15, Time15to30, Time30to45, TimeMore45}
	sensitivities  = []Sensitivity{SensitivityBack, SensitivityKnees, SensitivityNone}
	targetZones    = []TargetZone{ZoneFullBody, ZoneBreasts, ZoneArms, ZoneBelly, ZoneButt, ZoneLegs}
	exerciseStyles = []ExerciseStyle{StyleYoga, StyleStrength, StyleCardio, StyleHIIT, StyleMobility}
	planCodes      = []PlanCode{PlanStarter, PlanComplete, PlanPremium}
)

func parseOption[T ~string](raw string, known []T) (T, bool) {
	for _, v := range known {
		if string(v) == raw {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func ParseAgeRange(s string) (AgeRange, bool) { return parseOption(s, ageRanges) }
func ParseBodyType(s string) (BodyType, bool) { return parseOption(s, bodyTypes) }
func ParseDreamBody(s string) (DreamBody, bool) { return parseOption(s, dreamBodies) }
func ParseExperience(s string) (Experience, bool) { return parseOption(s, experiences) }
func ParseAvailableTime(s string) (AvailableTime, bool) { return parseOption(s, availableTimes) }
func ParseSensitivity(s string) (Sensitivity, bool) { return parseOption(s, sensitivities) }
func ParseTargetZone(s string) (TargetZone, bool) { return parseOption(s, targetZones) }
func ParseExerciseStyle(s string) (ExerciseStyle, bool) { return parseOption(s, exerciseStyles) }
func ParsePlanCode(s string) (PlanCode, bool) { return parseOption(s, planCodes) }

// Goal is one entry of the fixed goals catalog. Only Selected ever changes.
type Goal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Selected    bool   `json:"selected"`
}

const (
	GoalLoseWeight      = "lose-weight"
	GoalManageMood      = "manage-mood"
	GoalBalanceHormones = "balance-hormones"
	GoalImproveMobility = "improve-mobility"
	GoalEnhanceSkin     = "enhance-skin"
	GoalImproveHeart    = "improve-heart"
)

func goalCatalog() []Goal {
	return []Goal{
		{ID: GoalLoseWeight, Title: "Lose weight", Description: "Burn those extra pounds"},
		{ID: GoalManageMood, Title: "Manage mood swings", Description: "Feel more balanced and less stressed"},
		{ID: GoalBalanceHormones, Title: "Balance hormones", Description: "Ease menopause symptoms"},
		{ID: GoalImproveMobility, Title: "Improve mobility", Description: "Keep joints healthy and prevent arthritis"},
		{ID: GoalEnhanceSkin, Title: "Enhance skin", Description: "A younger glow and fewer wrinkles"},
		{ID: GoalImproveHeart, Title: "Improve heart health", Description: "Control blood pressure and cholesterol"},
	}
}
