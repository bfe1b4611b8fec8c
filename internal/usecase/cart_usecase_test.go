package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func TestCartUsecase_GetCart_Unauthorized(t *testing.T) {
	uc := usecase.NewCartUsecase(new(CartRepoMock), new(CartItemRepoMock), new(ProductRepoMock))

	_, err := uc.GetCart(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}

func TestCartUsecase_GetCart_EmptyCartCreated(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("GetOrCreateOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	items.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{}, nil)

	uc := usecase.NewCartUsecase(carts, items, products)

	out, err := uc.GetCart(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.ID)
	assert.Equal(t, 0, len(out.Items))
	assert.Equal(t, int64(0), out.Total)
}

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	uc := usecase.NewCartUsecase(new(CartRepoMock), new(CartItemRepoMock), new(ProductRepoMock))

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 10, Quantity: 0})
	assertErrContains(t, err, "invalid quantity")
}

func TestCartUsecase_AddToCart_UnknownProduct(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("GetOrCreateOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, items, products)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 10, Quantity: 1})
	assertErrContains(t, err, "invalid product")

	items.AssertNotCalled(t, "UpsertByCartAndProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_InactiveProductRejected(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("GetOrCreateOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{
		ID:       10,
		IsActive: false,
	}, nil)

	uc := usecase.NewCartUsecase(carts, items, products)

	_, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 10, Quantity: 1})
	assertErrContains(t, err, "invalid product")
}

// 同一商品の追加は数量加算としてrepoに委譲する
func TestCartUsecase_AddToCart_Success_UpsertsQuantity(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("GetOrCreateOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{
		ID:       10,
		Name:     "Laptop",
		Price:    1000,
		IsActive: true,
	}, nil)
	items.On("UpsertByCartAndProduct", mock.Anything, int64(3), int64(10), int64(2)).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 1, CartID: 3, ProductID: 10, Quantity: 2},
	}, nil)

	uc := usecase.NewCartUsecase(carts, items, products)

	out, err := uc.AddToCart(context.Background(), 1, usecase.AddCartInput{ProductID: 10, Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(2000), out.Total)
	assert.Equal(t, int64(2000), out.Items[0].Subtotal)

	items.AssertExpectations(t)
}

// 合計は常に現在価格×数量
func TestCartUsecase_GetCart_TotalUsesCurrentPrice(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("GetOrCreateOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	items.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 1, CartID: 3, ProductID: 10, Quantity: 2},
		{ID: 2, CartID: 3, ProductID: 11, Quantity: 1},
	}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Name: "Laptop", Price: 1000, IsActive: true}, nil)
	products.On("FindByID", mock.Anything, int64(11)).Return(model.Product{ID: 11, Name: "Mouse", Price: 500, IsActive: true}, nil)

	uc := usecase.NewCartUsecase(carts, items, products)

	out, err := uc.GetCart(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2500), out.Total)
	assert.Equal(t, 2, len(out.Items))
}

// 非公開になった商品は表示からも合計からも外す
func TestCartUsecase_GetCart_SkipsInactiveItems(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("GetOrCreateOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	items.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 1, CartID: 3, ProductID: 10, Quantity: 1},
		{ID: 2, CartID: 3, ProductID: 11, Quantity: 1},
	}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{ID: 10, Price: 1000, IsActive: true}, nil)
	products.On("FindByID", mock.Anything, int64(11)).Return(model.Product{ID: 11, Price: 9999, IsActive: false}, nil)

	uc := usecase.NewCartUsecase(carts, items, products)

	out, err := uc.GetCart(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(1000), out.Total)
}

func TestCartUsecase_RemoveFromCart_NoOpenCart(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("FindOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(carts, items, products)

	_, err := uc.RemoveFromCart(context.Background(), 1, 10)
	assertErrContains(t, err, "not found")
}

func TestCartUsecase_RemoveFromCart_Success(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("FindOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	items.On("DeleteByCartAndProduct", mock.Anything, int64(3), int64(10)).Return(nil)
	items.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{}, nil)

	uc := usecase.NewCartUsecase(carts, items, products)

	out, err := uc.RemoveFromCart(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Total)

	items.AssertExpectations(t)
}

// 商品参照の一時的なDB障害は明細を落とさず500にする
func TestCartUsecase_GetCart_ProductLookupDBError(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("GetOrCreateOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	items.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 1, CartID: 3, ProductID: 10, Quantity: 1},
	}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{}, errors.New("db down"))

	uc := usecase.NewCartUsecase(carts, items, products)

	_, err := uc.GetCart(context.Background(), 1)
	assertErrContains(t, err, "db error")
}

// 削除済み（ErrNotFound）の明細だけはスキップして表示を続ける
func TestCartUsecase_GetCart_SkipsDeletedProduct(t *testing.T) {
	carts := new(CartRepoMock)
	items := new(CartItemRepoMock)
	products := new(ProductRepoMock)

	carts.On("GetOrCreateOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3, UserID: 1}, nil)
	items.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ID: 1, CartID: 3, ProductID: 10, Quantity: 1},
		{ID: 2, CartID: 3, ProductID: 11, Quantity: 1},
	}, nil)
	products.On("FindByID", mock.Anything, int64(10)).Return(model.Product{}, repo.ErrNotFound)
	products.On("FindByID", mock.Anything, int64(11)).Return(model.Product{ID: 11, Price: 500, IsActive: true}, nil)

	uc := usecase.NewCartUsecase(carts, items, products)

	out, err := uc.GetCart(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(500), out.Total)
}

func TestCartUsecase_GetCart_DBError(t *testing.T) {
	carts := new(CartRepoMock)

	carts.On("GetOrCreateOpenByUserID", mock.Anything, int64(1)).Return(model.Cart{}, errors.New("db down"))

	uc := usecase.NewCartUsecase(carts, new(CartItemRepoMock), new(ProductRepoMock))

	_, err := uc.GetCart(context.Background(), 1)
	assertErrContains(t, err, "db error")
}
