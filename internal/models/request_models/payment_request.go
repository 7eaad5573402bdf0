package request_models

type CreateCheckoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	PlanCode  string `json:"plan_code" binding:"required"`
}
