package repository

import (
	"context"

	"app/internal/domain/model"
)

// 請求書は追記専用。UpdateもDeleteも約束しない。
type InvoiceRepository interface {
	Create(ctx context.Context, inv model.Invoice) (int64, error)
	FindByID(ctx context.Context, invoiceID int64) (model.Invoice, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Invoice, int64, error)
	CountByCartID(ctx context.Context, cartID int64) (int64, error)
}
