package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) ListByActor(ctx context.Context, actorUserID int64, limit int) ([]model.AuditLog, error) {
	args := m.Called(ctx, actorUserID, limit)
	items, _ := args.Get(0).([]model.AuditLog)
	return items, args.Error(1)
}

func TestAdminCatalogUsecase_CreateCategory_UnauthorizedActor(t *testing.T) {
	uc := usecase.NewAdminCatalogUsecase(new(CategoryRepoMock), new(ProductRepoMock), new(AuditRepoMock))

	_, err := uc.CreateCategory(context.Background(), 0, usecase.CreateCategoryInput{Name: "Books"})
	assertErrContains(t, err, "unauthorized")
}

func TestAdminCatalogUsecase_CreateCategory_EmptyName(t *testing.T) {
	uc := usecase.NewAdminCatalogUsecase(new(CategoryRepoMock), new(ProductRepoMock), new(AuditRepoMock))

	_, err := uc.CreateCategory(context.Background(), 1, usecase.CreateCategoryInput{Name: "   "})
	assertErrContains(t, err, "invalid name")
}

func TestAdminCatalogUsecase_CreateCategory_Duplicate(t *testing.T) {
	categories := new(CategoryRepoMock)

	categories.On("FindByName", mock.Anything, "Books").Return(model.Category{ID: 2, Name: "Books"}, nil)

	uc := usecase.NewAdminCatalogUsecase(categories, new(ProductRepoMock), new(AuditRepoMock))

	_, err := uc.CreateCategory(context.Background(), 1, usecase.CreateCategoryInput{Name: "Books"})
	assertErrContains(t, err, "already exists")

	categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminCatalogUsecase_CreateCategory_Success_Audits(t *testing.T) {
	categories := new(CategoryRepoMock)
	audit := new(AuditRepoMock)

	adminID := int64(999)

	categories.On("FindByName", mock.Anything, "Books").Return(model.Category{}, repo.ErrNotFound)
	categories.On("Create", mock.Anything, mock.MatchedBy(func(c model.Category) bool {
		return c.Name == "Books"
	})).Return(model.Category{ID: 2, Name: "Books"}, nil)

	audit.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.ActorUserID == adminID &&
			a.Action == model.AuditActionCreateCategory &&
			a.ResourceType == model.AuditResourceCategory &&
			a.ResourceID == int64(2)
	})).Return(nil)

	uc := usecase.NewAdminCatalogUsecase(categories, new(ProductRepoMock), audit)

	created, err := uc.CreateCategory(context.Background(), adminID, usecase.CreateCategoryInput{Name: "Books"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	categories.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdminCatalogUsecase_CreateProduct_NegativePrice(t *testing.T) {
	uc := usecase.NewAdminCatalogUsecase(new(CategoryRepoMock), new(ProductRepoMock), new(AuditRepoMock))

	_, err := uc.CreateProduct(context.Background(), 1, usecase.CreateProductInput{
		Name:       "Laptop",
		Price:      -1,
		CategoryID: 2,
	})
	assertErrContains(t, err, "invalid price")
}

func TestAdminCatalogUsecase_CreateProduct_UnknownCategory(t *testing.T) {
	categories := new(CategoryRepoMock)
	products := new(ProductRepoMock)

	categories.On("FindByID", mock.Anything, int64(99)).Return(model.Category{}, repo.ErrNotFound)

	uc := usecase.NewAdminCatalogUsecase(categories, products, new(AuditRepoMock))

	_, err := uc.CreateProduct(context.Background(), 1, usecase.CreateProductInput{
		Name:       "Laptop",
		Price:      1000,
		CategoryID: 99,
	})
	assertErrContains(t, err, "invalid category_id")

	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminCatalogUsecase_CreateProduct_Success_Audits(t *testing.T) {
	categories := new(CategoryRepoMock)
	products := new(ProductRepoMock)
	audit := new(AuditRepoMock)

	adminID := int64(999)

	categories.On("FindByID", mock.Anything, int64(2)).Return(model.Category{ID: 2, Name: "Electronics"}, nil)
	products.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Laptop" &&
			p.Price == int64(1000) &&
			p.CategoryID == int64(2) &&
			p.IsActive
	})).Return(model.Product{ID: 10, Name: "Laptop", Price: 1000, CategoryID: 2, IsActive: true}, nil)

	audit.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.ActorUserID == adminID &&
			a.Action == model.AuditActionCreateProduct &&
			a.ResourceType == model.AuditResourceProduct &&
			a.ResourceID == int64(10)
	})).Return(nil)

	uc := usecase.NewAdminCatalogUsecase(categories, products, audit)

	created, err := uc.CreateProduct(context.Background(), adminID, usecase.CreateProductInput{
		Name:       "Laptop",
		Price:      1000,
		CategoryID: 2,
		IsActive:   true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)

	products.AssertExpectations(t)
	audit.AssertExpectations(t)
}
