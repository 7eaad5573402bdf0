package response_models

type CreateCheckoutResponse struct {
	CheckoutID   string `json:"checkout_id"`
	OrderCode    int64  `json:"order_code"`
	PlanCode     string `json:"plan_code"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	PaymentURL   string `json:"payment_url"`
	ProviderName string `json:"provider"`
}

type SalesPlan struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	PriceMinor  int64  `json:"price_minor"`
	Currency    string `json:"currency"`
	Highlighted bool   `json:"highlighted"`
}
