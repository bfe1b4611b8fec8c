package model

import "time"

// 購入確定の記録。作成後は更新も削除もしない（追記専用）。
// cart_id のuniqueIndexで同一カートの二重請求をDBレベルでも防ぐ。
type Invoice struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	CartID      int64     `gorm:"not null;uniqueIndex" json:"cart_id"`
	TotalAmount int64     `gorm:"not null" json:"total_amount"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
