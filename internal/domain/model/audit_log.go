package model

import "time"

// 管理者操作の種類
type AuditAction string

const (
	//カテゴリを作成した操作。
	AuditActionCreateCategory AuditAction = "CREATE_CATEGORY"
	//商品を作成した操作。
	AuditActionCreateProduct AuditAction = "CREATE_PRODUCT"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceCategory AuditResourceType = "category"
	AuditResourceProduct  AuditResourceType = "product"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」行ったかを残す。
type AuditLog struct {
	ID          int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID int64       `gorm:"not null;index" json:"actor_user_id"`
	Action      AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	//対象の種類（category / product）。
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	DetailJSON string `gorm:"type:text" json:"detail_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
