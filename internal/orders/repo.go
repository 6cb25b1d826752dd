package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/feiroulabs/feirou-backend/pkg/db/models"
	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
)

// Repo persists archived orders.
type Repo interface {
	Create(ctx context.Context, record *models.OrderRecord) error
	ListByCustomerPhone(ctx context.Context, phone string, limit int) ([]models.OrderRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.OrderRecord, error)
}

type repo struct {
	db *gorm.DB
}

// NewRepo builds the gorm-backed order archive repo.
func NewRepo(db *gorm.DB) Repo {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, record *models.OrderRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive order")
	}
	return nil
}

func (r *repo) ListByCustomerPhone(ctx context.Context, phone string, limit int) ([]models.OrderRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []models.OrderRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_phone = ?", phone).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return records, nil
}

func (r *repo) FindByID(ctx context.Context, id uuid.UUID) (models.OrderRecord, error) {
	var record models.OrderRecord
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OrderRecord{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return models.OrderRecord{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
	}
	return record, nil
}
