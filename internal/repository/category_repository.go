package repository

import (
	"app/internal/domain/model"
	"context"
)

// カテゴリの永続化の約束。公開側は読み取りのみ。
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	FindByName(ctx context.Context, name string) (model.Category, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
}
