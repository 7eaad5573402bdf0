package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/payOSHQ/payos-lib-golang"
	"github.com/rs/zerolog/log"
	"yogafunnel/internal/metrics"
	"yogafunnel/internal/models/db_models"
	"yogafunnel/internal/models/response_models"
	"yogafunnel/internal/repositories"
	"yogafunnel/pkg/utils"
)

type PayOSConfig struct {
	ClientID     string
	ApiKey       string
	ChecksumKey  string
	ReturnURL    string
	CancelURL    string
	ProviderName string // stored on Checkout.Provider
}

// PaymentLinkRequest is the provider-neutral shape of a checkout order.
type PaymentLinkRequest struct {
	OrderCode   int64
	Amount      int64
	ItemName    string
	Description string
}

type PaymentLink struct {
	CheckoutURL   string
	PaymentLinkID string
	Status        string
}

// WebhookEvent is a verified provider notification.
type WebhookEvent struct {
	OrderCode int64
	Paid      bool
	Reference string
}

type PaymentGateway interface {
	CreateLink(ctx context.Context, req PaymentLinkRequest) (*PaymentLink, error)
	VerifyWebhook(raw []byte) (*WebhookEvent, error)
}

type payOSGateway struct {
	cfg PayOSConfig
}

func NewPayOSGateway(cfg PayOSConfig) (PaymentGateway, error) {
	if cfg.ClientID == "" || cfg.ApiKey == "" || cfg.ChecksumKey == "" {
		return nil, errors.New("missing payOS credentials")
	}
	if err := payos.Key(cfg.ClientID, cfg.ApiKey, cfg.ChecksumKey); err != nil {
		return nil, fmt.Errorf("payos client init: %w", err)
	}
	return &payOSGateway{cfg: cfg}, nil
}

func (g *payOSGateway) CreateLink(_ context.Context, req PaymentLinkRequest) (*PaymentLink, error) {
	body := payos.CheckoutRequestType{
		OrderCode:   req.OrderCode,
		Amount:      int(req.Amount),
		Items:       []payos.Item{{Name: req.ItemName, Price: int(req.Amount), Quantity: 1}},
		Description: req.Description,
		CancelUrl:   g.cfg.CancelURL,
		ReturnUrl:   g.cfg.ReturnURL,
	}

	resp, err := payos.CreatePaymentLink(body)
	if err != nil {
		return nil, err
	}
	return &PaymentLink{
		CheckoutURL:   resp.CheckoutUrl,
		PaymentLinkID: resp.PaymentLinkId,
		Status:        resp.Status,
	}, nil
}

func (g *payOSGateway) VerifyWebhook(raw []byte) (*WebhookEvent, error) {
	var body payos.WebhookType
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: webhook payload: %v", utils.ErrInvalidInput, err)
	}
	data, err := payos.VerifyPaymentWebhookData(body)
	if err != nil {
		return nil, fmt.Errorf("%w: webhook signature: %v", utils.ErrInvalidInput, err)
	}
	return &WebhookEvent{
		OrderCode: data.OrderCode,
		Paid:      body.Code == "00",
		Reference: data.Reference,
	}, nil
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, sessionID, planCode string) (*response_models.CreateCheckoutResponse, error)
	HandleWebhook(ctx context.Context, raw []byte) error
}

// payOS sends this order code when a webhook URL is first registered.
const webhookRegistrationOrderCode = 123

type paymentService struct {
	checkouts repositories.CheckoutRepositoryInterface
	gateway   PaymentGateway
	quiz      QuizServiceInterface
	plans     PlanServiceInterface
	funnel    *metrics.Funnel
	provider  string
	orderCode func() int64
}

func NewPaymentService(
	checkouts repositories.CheckoutRepositoryInterface,
	gateway PaymentGateway,
	quizService QuizServiceInterface,
	plans PlanServiceInterface,
	funnel *metrics.Funnel,
	providerName string,
) PaymentService {
	if providerName == "" {
		providerName = "payos"
	}
	return &paymentService{
		checkouts: checkouts,
		gateway:   gateway,
		quiz:      quizService,
		plans:     plans,
		funnel:    funnel,
		provider:  providerName,
		orderCode: newOrderCode,
	}
}

// newOrderCode keeps the code under 13 digits as payOS requires.
func newOrderCode() int64 {
	return time.Now().Unix()%1_000_000_000*10_000 + int64(rand.Intn(10_000))
}

var errPaymentsDisabled = fmt.Errorf("%w: payments are not configured", utils.ErrPaymentProvider)

func (p *paymentService) CreateCheckout(ctx context.Context, sessionID, planCode string) (*response_models.CreateCheckoutResponse, error) {
	if p.gateway == nil {
		return nil, errPaymentsDisabled
	}
	plan, err := p.plans.LookupPlan(planCode)
	if err != nil {
		return nil, err
	}
	email, err := p.quiz.BeginCheckout(sessionID, plan.Code)
	if err != nil {
		return nil, err
	}

	orderCode := p.orderCode()
	checkout := &db_models.Checkout{
		SessionID:     sessionID,
		Email:         email,
		PlanCode:      string(plan.Code),
		AmountMinor:   plan.PriceMinor,
		Currency:      plan.Currency,
		Status:        db_models.CheckoutPending,
		Provider:      p.provider,
		ProviderTxnID: providerTxnID(p.provider, orderCode),
	}
	if err := p.checkouts.CreateCheckout(ctx, checkout); err != nil {
		return nil, fmt.Errorf("%w: create checkout: %v", utils.ErrDatabaseError, err)
	}

	link, err := p.gateway.CreateLink(ctx, PaymentLinkRequest{
		OrderCode:   orderCode,
		Amount:      plan.PriceMinor,
		ItemName:    plan.Name,
		Description: fmt.Sprintf("Plan %s", plan.Code),
	})
	if err != nil {
		if uerr := p.checkouts.UpdateCheckout(ctx, checkout.ID.String(), map[string]interface{}{
			"status": db_models.CheckoutFailed,
		}); uerr != nil {
			log.Error().Err(uerr).Str("checkout_id", checkout.ID.String()).Msg("mark checkout failed")
		}
		p.funnel.Checkout(string(plan.Code), string(db_models.CheckoutFailed))
		return nil, fmt.Errorf("%w: %v", utils.ErrPaymentProvider, err)
	}

	meta, _ := json.Marshal(map[string]any{
		"payment_link_id": link.PaymentLinkID,
		"provider_status": link.Status,
	})
	if err := p.checkouts.UpdateCheckout(ctx, checkout.ID.String(), map[string]interface{}{
		"payment_url": link.CheckoutURL,
		"metadata":    meta,
	}); err != nil {
		// the link is live, so the visitor still gets it
		log.Error().Err(err).Str("checkout_id", checkout.ID.String()).Msg("store payment link")
	}
	p.funnel.Checkout(string(plan.Code), string(db_models.CheckoutPending))

	return &response_models.CreateCheckoutResponse{
		CheckoutID:   checkout.ID.String(),
		OrderCode:    orderCode,
		PlanCode:     string(plan.Code),
		Amount:       plan.PriceMinor,
		Currency:     plan.Currency,
		PaymentURL:   link.CheckoutURL,
		ProviderName: p.provider,
	}, nil
}

// HandleWebhook marks the matching checkout paid. Repeated deliveries are
// harmless and unknown orders are acknowledged so the provider stops retrying.
func (p *paymentService) HandleWebhook(ctx context.Context, raw []byte) error {
	if p.gateway == nil {
		return errPaymentsDisabled
	}
	event, err := p.gateway.VerifyWebhook(raw)
	if err != nil {
		return err
	}
	if event.OrderCode == webhookRegistrationOrderCode {
		return nil
	}

	txnID := providerTxnID(p.provider, event.OrderCode)
	checkout, err := p.checkouts.GetByProviderTxnID(ctx, txnID)
	if err != nil {
		return fmt.Errorf("%w: load checkout: %v", utils.ErrDatabaseError, err)
	}
	if checkout == nil {
		log.Warn().Int64("order_code", event.OrderCode).Msg("webhook for unknown checkout")
		return nil
	}
	if !event.Paid {
		log.Info().Int64("order_code", event.OrderCode).Msg("webhook without successful payment")
		return nil
	}

	updated, err := p.checkouts.MarkPaid(ctx, txnID)
	if err != nil {
		return fmt.Errorf("%w: mark paid: %v", utils.ErrDatabaseError, err)
	}
	if updated {
		p.funnel.Checkout(checkout.PlanCode, string(db_models.CheckoutPaid))
		log.Info().
			Str("checkout_id", checkout.ID.String()).
			Str("plan", checkout.PlanCode).
			Msg("checkout paid")
	}
	return nil
}

func providerTxnID(provider string, orderCode int64) string {
	return fmt.Sprintf("%s:%d", provider, orderCode)
}
