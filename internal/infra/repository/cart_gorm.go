package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのオープンカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreateOpenByUserID(ctx context.Context, userID int64) (model.Cart, error) {

	var cart model.Cart

	//トランザクションで探す→無ければ作る
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND ordered = ?", userID, false).
			Order("id desc").
			First(&cart).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		now := time.Now()
		newCart := model.Cart{
			UserID:    userID,
			Ordered:   false,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Create(&newCart).Error; err != nil {
			//同時作成と競合した場合はもう一度探す
			retryErr := tx.
				Where("user_id = ? AND ordered = ?", userID, false).
				Order("id desc").
				First(&cart).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		cart = newCart
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ユーザーのオープンカートを取得
func (r *CartGormRepository) FindOpenByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND ordered = ?", userID, false).
		Order("id desc").
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// チェックアウト用の取得。orderedの値は見ない（呼び出し側で判定する）。
// 行ロックを取るのでトランザクション内で呼ぶこと。
func (r *CartGormRepository) FindForCheckout(ctx context.Context, cartID int64, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", cartID, userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ordered=false の行だけ true に更新（0件なら ErrNotFound）
func (r *CartGormRepository) MarkOrdered(ctx context.Context, cartID int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ? AND ordered = ?", cartID, false).
		Updates(map[string]interface{}{
			"ordered":    true,
			"updated_at": time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カート合計 = Σ 現在価格 × 数量。
// カート表示と同じ商品集合（公開中かつ未削除）で計算する。
// ここがズレると表示合計と請求額が食い違う。
func (r *CartGormRepository) TotalByCartID(ctx context.Context, cartID int64) (int64, error) {
	var total *int64

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Joins("join products on products.id = cart_items.product_id").
		Where("cart_items.cart_id = ?", cartID).
		Where("products.deleted_at IS NULL").
		Where("products.is_active = ?", true).
		Select("sum(products.price * cart_items.quantity)").
		Scan(&total).Error

	if err != nil {
		return 0, err
	}
	if total == nil {
		//明細ゼロ
		return 0, nil
	}
	return *total, nil
}
