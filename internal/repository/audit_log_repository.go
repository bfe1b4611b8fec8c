package repository

import (
	"context"

	"app/internal/domain/model"
)

// 監査ログの保存・一覧取得の約束。
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	ListByActor(ctx context.Context, actorUserID int64, limit int) ([]model.AuditLog, error)
}
