package response_models

type PlanSummary struct {
	PlanName      string   `json:"plan_name"`
	RiskProfile   string   `json:"risk_profile"`
	MainBenefit   string   `json:"main_benefit"`
	FocusBenefit  string   `json:"focus_benefit"`
	SpecialUnlock string   `json:"special_unlock"`
	Obstacles     []string `json:"obstacles"`
	DailyPractice string   `json:"daily_practice,omitempty"`
	CurrentWeight int      `json:"current_weight_kg"`
	TargetWeight  int      `json:"target_weight_kg"`
	WeightChange  int      `json:"weight_change_kg"`
	ProgramDays   int      `json:"program_days"`
	TargetDate    string   `json:"target_date"`
	Testimonials  []string `json:"testimonials"`
}
