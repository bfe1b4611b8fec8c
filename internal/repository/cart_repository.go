package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateOpenByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindOpenByUserID(ctx context.Context, userID int64) (model.Cart, error)

	// チェックアウト用。行ロック（FOR UPDATE）付きで取得する。
	// orderedの値に関係なく (id, user_id) が一致すれば返す。
	FindForCheckout(ctx context.Context, cartID int64, userID int64) (model.Cart, error)

	// ordered=false の行だけを true に更新する。
	// 0件更新は ErrNotFound（既に消費済みか、行が消えた）。
	MarkOrdered(ctx context.Context, cartID int64) error

	// カート合計 = Σ products.price × cart_items.quantity（現在価格）
	TotalByCartID(ctx context.Context, cartID int64) (int64, error)
}
