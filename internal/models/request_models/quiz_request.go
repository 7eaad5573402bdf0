package request_models

type SelectOptionRequest struct {
	Option string `json:"option" binding:"required"`
}

// BMIRequest carries either a computed BMI or the raw height/weight.
type BMIRequest struct {
	BMI      float64 `json:"bmi,omitempty"`
	HeightCm float64 `json:"height_cm,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`
}

type EmailCaptureRequest struct {
	Email string `json:"email"`
}

type PlanChoiceRequest struct {
	PlanCode string `json:"plan_code" binding:"required"`
}
