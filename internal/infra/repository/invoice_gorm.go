package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InvoiceGormRepository struct {
	db *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) *InvoiceGormRepository {
	return &InvoiceGormRepository{db: db}
}

// 請求書を1件作成して採番IDを返す
func (r *InvoiceGormRepository) Create(ctx context.Context, inv model.Invoice) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&inv).Error; err != nil {
		return 0, err
	}
	return inv.ID, nil
}

func (r *InvoiceGormRepository) FindByID(ctx context.Context, invoiceID int64) (model.Invoice, error) {
	var inv model.Invoice

	err := r.db.WithContext(ctx).Where("id = ?", invoiceID).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Invoice{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceGormRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Invoice, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []model.Invoice{}, 0, err
	}

	var items []model.Invoice
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Invoice{}, 0, err
	}

	return items, total, nil
}

func (r *InvoiceGormRepository) CountByCartID(ctx context.Context, cartID int64) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("cart_id = ?", cartID).
		Count(&count).Error

	if err != nil {
		return 0, err
	}
	return count, nil
}
