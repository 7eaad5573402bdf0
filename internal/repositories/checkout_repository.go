package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"yogafunnel/internal/models/db_models"
	"yogafunnel/pkg/utils"
)

type CheckoutRepositoryInterface interface {
	CreateCheckout(ctx context.Context, checkout *db_models.Checkout) error
	UpdateCheckout(ctx context.Context, id string, fields map[string]interface{}) error
	GetByProviderTxnID(ctx context.Context, providerTxnID string) (*db_models.Checkout, error)
	// MarkPaid flips a pending/failed checkout to paid. Returns false when the
	// checkout was already paid.
	MarkPaid(ctx context.Context, providerTxnID string) (bool, error)
}

type CheckoutRepository struct {
	db *gorm.DB
}

func NewCheckoutRepository(db *gorm.DB) CheckoutRepositoryInterface {
	return &CheckoutRepository{db: db}
}

func (r *CheckoutRepository) CreateCheckout(ctx context.Context, checkout *db_models.Checkout) error {
	return r.db.WithContext(ctx).Create(checkout).Error
}

func (r *CheckoutRepository) UpdateCheckout(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Checkout{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *CheckoutRepository) GetByProviderTxnID(ctx context.Context, providerTxnID string) (*db_models.Checkout, error) {
	var checkout db_models.Checkout
	err := r.db.WithContext(ctx).Where("provider_txn_id = ?", providerTxnID).First(&checkout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &checkout, nil
}

func (r *CheckoutRepository) MarkPaid(ctx context.Context, providerTxnID string) (bool, error) {
	var updated bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&db_models.Checkout{}).
			Where("provider_txn_id = ? AND status <> ?", providerTxnID, db_models.CheckoutPaid).
			Updates(map[string]interface{}{
				"status":  db_models.CheckoutPaid,
				"paid_at": utils.NowUnixSeconds(),
			})
		if res.Error != nil {
			return res.Error
		}
		updated = res.RowsAffected > 0
		return nil
	})
	return updated, err
}
