package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

func newInvoice(userID int64, cartID int64, total int64) model.Invoice {
	return model.Invoice{
		UserID:      userID,
		CartID:      cartID,
		TotalAmount: total,
		CreatedAt:   time.Now(),
	}
}

// InvoiceUsecaseは自分の請求書の参照のみ。作成はCheckoutUsecase経由だけ。
type InvoiceUsecase struct {
	invoiceRepo repo.InvoiceRepository
}

func NewInvoiceUsecase(invoiceRepo repo.InvoiceRepository) *InvoiceUsecase {
	return &InvoiceUsecase{invoiceRepo: invoiceRepo}
}

type InvoiceListOutput struct {
	Items []model.Invoice `json:"items"`
	Total int64           `json:"total"`
}

func (u *InvoiceUsecase) ListMyInvoices(ctx context.Context, userID int64) (InvoiceListOutput, error) {
	if userID <= 0 {
		return InvoiceListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまず固定で取る
	items, total, err := u.invoiceRepo.ListByUserID(ctx, userID, 1, 50)
	if err != nil {
		return InvoiceListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return InvoiceListOutput{Items: items, Total: total}, nil
}

func (u *InvoiceUsecase) GetMyInvoice(ctx context.Context, userID int64, invoiceID int64) (model.Invoice, error) {
	if userID <= 0 {
		return model.Invoice{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if invoiceID <= 0 {
		return model.Invoice{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	inv, err := u.invoiceRepo.FindByID(ctx, invoiceID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Invoice{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Invoice{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//他人の請求書は「存在しない扱い」にする
	if inv.UserID != userID {
		return model.Invoice{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return inv, nil
}
