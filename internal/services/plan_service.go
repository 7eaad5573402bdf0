package services

import (
	"math"
	"time"

	"yogafunnel/internal/models/response_models"
	"yogafunnel/internal/quiz"
	"yogafunnel/pkg/utils"
)

// SalesPlan is one purchasable offer on the sales page.
type SalesPlan struct {
	Code       quiz.PlanCode
	Name       string
	PriceMinor int64 // 1990 = R$19.90
	Currency   string
}

var salesPlans = []SalesPlan{
	{Code: quiz.PlanStarter, Name: "Chair Yoga Starter", PriceMinor: 1990, Currency: "BRL"},
	{Code: quiz.PlanComplete, Name: "Chair Yoga Complete", PriceMinor: 3700, Currency: "BRL"},
	{Code: quiz.PlanPremium, Name: "Chair Yoga Premium", PriceMinor: 9700, Currency: "BRL"},
}

// highlightedPlan is what the sales page pre-selects.
const highlightedPlan = quiz.PlanComplete

type PlanServiceInterface interface {
	Summarize(a *quiz.Answers) response_models.PlanSummary
	SalesPlans() []response_models.SalesPlan
	LookupPlan(code string) (SalesPlan, error)
}

type PlanService struct {
	now func() time.Time
}

func NewPlanService() PlanServiceInterface {
	return &PlanService{now: time.Now}
}

func (p *PlanService) SalesPlans() []response_models.SalesPlan {
	out := make([]response_models.SalesPlan, 0, len(salesPlans))
	for _, sp := range salesPlans {
		out = append(out, response_models.SalesPlan{
			Code:        string(sp.Code),
			Name:        sp.Name,
			PriceMinor:  sp.PriceMinor,
			Currency:    sp.Currency,
			Highlighted: sp.Code == highlightedPlan,
		})
	}
	return out
}

func (p *PlanService) LookupPlan(code string) (SalesPlan, error) {
	pc, ok := quiz.ParsePlanCode(code)
	if !ok {
		return SalesPlan{}, utils.ErrPlanNotFound
	}
	for _, sp := range salesPlans {
		if sp.Code == pc {
			return sp, nil
		}
	}
	return SalesPlan{}, utils.ErrPlanNotFound
}

// estimatedHeight is used to turn a BMI back into kilograms.
const estimatedHeight = 1.7

// Summarize picks the canned copy shown on the results and sales screens.
// It only reads a.
func (p *PlanService) Summarize(a *quiz.Answers) response_models.PlanSummary {
	bmi := a.BodyMassIndex()

	summary := response_models.PlanSummary{
		PlanName:      planName(a),
		RiskProfile:   riskProfile(bmi),
		MainBenefit:   mainBenefit(a),
		FocusBenefit:  focusBenefit(a),
		SpecialUnlock: specialUnlock(a),
		Obstacles:     obstacles(a),
		DailyPractice: dailyPractice(a.AvailableTime()),
		Testimonials:  testimonials(a),
	}

	days := 21
	if bmi > 0 && (a.AgeRange() == quiz.Age55to64 || a.AgeRange() == quiz.Age65Plus) {
		days += 7
	}
	summary.ProgramDays = days
	summary.TargetDate = utils.FormatDateBR(p.now().AddDate(0, 0, days))

	if bmi <= 0 {
		summary.CurrentWeight, summary.TargetWeight, summary.WeightChange = 70, 65, 5
		return summary
	}

	h2 := estimatedHeight * estimatedHeight
	current := int(math.Round(bmi * h2))
	var target int
	switch {
	case bmi > 25:
		target = int(math.Round(24 * h2))
	case bmi < 18.5:
		target = int(math.Round(19 * h2))
	case a.GoalSelected(quiz.GoalLoseWeight):
		target = int(math.Round(float64(current) * 0.95))
	default:
		target = current
	}
	summary.CurrentWeight = current
	summary.TargetWeight = target
	summary.WeightChange = int(math.Abs(float64(current - target)))
	return summary
}

func riskProfile(bmi float64) string {
	switch {
	case bmi > 30:
		return "high"
	case bmi > 25:
		return "moderate"
	default:
		return "low"
	}
}

func planName(a *quiz.Answers) string {
	prefix := "Method"
	switch bmi := a.BodyMassIndex(); {
	case bmi > 30:
		prefix = "Total System"
	case bmi > 25:
		prefix = "Complete Program"
	}

	suffix := "Chair Yoga"
	switch {
	case a.GoalSelected(quiz.GoalLoseWeight):
		suffix += " for Weight Loss"
	case a.GoalSelected(quiz.GoalImproveMobility):
		suffix += " for Mobility"
	case a.GoalSelected(quiz.GoalManageMood):
		suffix += " for Balance"
	}
	return prefix + " " + suffix
}

func focusBenefit(a *quiz.Answers) string {
	switch {
	case a.GoalSelected(quiz.GoalLoseWeight):
		return "targeted fat burning"
	case a.GoalSelected(quiz.GoalImproveMobility):
		return "flexibility and mobility"
	case a.GoalSelected(quiz.GoalManageMood):
		return "less stress and anxiety"
	default:
		return "full-body conditioning"
	}
}

func mainBenefit(a *quiz.Answers) string {
	switch {
	case a.GoalSelected(quiz.GoalImproveMobility):
		return "Recover your mobility and leave joint pain behind"
	case a.GoalSelected(quiz.GoalBalanceHormones):
		return "Rebalance your joints and hormones"
	case a.GoalSelected(quiz.GoalManageMood):
		return "Revitalize your joints and lower your stress"
	case a.GoalSelected(quiz.GoalLoseWeight):
		return "Reactivate your joints while you lose weight"
	default:
		return "Transform your joint mobility without strain"
	}
}

func specialUnlock(a *quiz.Answers) string {
	switch {
	case a.ChairYogaExperience() == quiz.ExperienceNever && a.BodyMassIndex() > 25:
		return "Beginner Guide: First Steps"
	case a.AgeRange() == quiz.Age55to64 || a.AgeRange() == quiz.Age65Plus:
		return "Special Module: Yoga for Joints"
	case a.BodyType() == quiz.BodyPlus:
		return "Adaptations for Every Body Type"
	default:
		return "Express Nutrition Guide"
	}
}

func obstacles(a *quiz.Answers) []string {
	var out []string
	if a.BodyMassIndex() > 25 {
		out = append(out, "Slowed metabolism")
	}
	if a.AvailableTime() == quiz.TimeLess15 {
		out = append(out, "No time for traditional workouts")
	}
	if a.ChairYogaExperience() == quiz.ExperienceNever {
		out = append(out, "No experience with low-impact exercise")
	}
	if len(out) == 0 {
		out = append(out, "Trouble staying consistent")
	}
	if len(out) == 1 {
		out = append(out, "Lack of personal guidance")
	}
	return out
}

func dailyPractice(t quiz.AvailableTime) string {
	switch t {
	case quiz.TimeLess15:
		return "5-10 minutes"
	case quiz.Time15to30:
		return "10-20 minutes"
	case quiz.Time30to45:
		return "15-30 minutes"
	case quiz.TimeMore45:
		return "20-45 minutes"
	default:
		return ""
	}
}

func testimonials(a *quiz.Answers) []string {
	weight := "I lost 7kg in 28 days without leaving my chair. - Maria S., 58"
	mobility := "My back pain was gone after 14 days. - Carlos L., 62"
	health := "My blood pressure normalized with 15 minutes a day. - Roberto M., 54"

	if a.GoalSelected(quiz.GoalImproveMobility) && !a.GoalSelected(quiz.GoalLoseWeight) {
		return []string{mobility, weight, health}
	}
	return []string{weight, mobility, health}
}
