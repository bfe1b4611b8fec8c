package model

import "time"

// 1ユーザーにつきオープン（ordered=false）カートは1つ。
// ordered は false→true に一度だけ遷移する（チェックアウト時）。
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Ordered   bool      `gorm:"not null;default:false;index" json:"ordered"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
