package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// AdminCatalogUsecaseはカタログ投入用の管理者ロジック。
// 操作は監査ログに残す。
type AdminCatalogUsecase struct {
	categoryRepo repo.CategoryRepository
	productRepo  repo.ProductRepository
	auditRepo    repo.AuditLogRepository
}

// DI
func NewAdminCatalogUsecase(
	categoryRepo repo.CategoryRepository,
	productRepo repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
) *AdminCatalogUsecase {
	return &AdminCatalogUsecase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		auditRepo:    auditRepo,
	}
}

type CreateCategoryInput struct {
	Name string
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	CategoryID  int64
	ImageURL    string
	IsActive    bool
}

func (u *AdminCatalogUsecase) CreateCategory(ctx context.Context, adminUserID int64, in CreateCategoryInput) (model.Category, error) {
	if adminUserID <= 0 {
		return model.Category{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 100 {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	//重複チェック
	if _, err := u.categoryRepo.FindByName(ctx, name); err == nil {
		return model.Category{}, NewHTTPError(http.StatusConflict, "category already exists")
	}

	now := time.Now()
	created, err := u.categoryRepo.Create(ctx, model.Category{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreateCategory, model.AuditResourceCategory, created.ID, created)

	return created, nil
}

func (u *AdminCatalogUsecase) CreateProduct(ctx context.Context, adminUserID int64, in CreateProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 255 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.CategoryID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}

	//カテゴリ存在チェック
	if _, err := u.categoryRepo.FindByID(ctx, in.CategoryID); err != nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}

	now := time.Now()
	created, err := u.productRepo.Create(ctx, model.Product{
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreateProduct, model.AuditResourceProduct, created.ID, created)

	return created, nil
}

// 監査ログは本処理を失敗させない（書けなければ黙って落とす）
func (u *AdminCatalogUsecase) writeAudit(ctx context.Context, actorID int64, action model.AuditAction, resource model.AuditResourceType, resourceID int64, detail interface{}) {
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return
	}

	_ = u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		DetailJSON:   string(detailJSON),
		CreatedAt:    time.Now(),
	})
}
