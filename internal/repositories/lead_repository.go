package repositories

import (
	"context"

	"gorm.io/gorm"
	"yogafunnel/internal/models/db_models"
)

type LeadRepositoryInterface interface {
	CreateLead(ctx context.Context, lead *db_models.Lead) error
}

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepositoryInterface {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) CreateLead(ctx context.Context, lead *db_models.Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}
