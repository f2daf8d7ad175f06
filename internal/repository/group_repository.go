package repository

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// GroupRepository はグループ永続化のインターフェース
type GroupRepository interface {
	// GetByID は ID でグループを取得する
	GetByID(ctx context.Context, id string) (*model.Group, error)
	// ListByUserID はユーザーが所属（PENDING 含む）するグループ一覧を返す
	ListByUserID(ctx context.Context, userID string) ([]*model.Group, error)
	// ListByOwnerID はユーザーが作成したグループ一覧を返す
	ListByOwnerID(ctx context.Context, ownerID string) ([]*model.Group, error)
	// Create はグループを作成し、作成者を ADMIN / JOINED のメンバーとして
	// 同一トランザクションで登録する
	Create(ctx context.Context, group *model.Group) error
	// Update は name, description を更新する
	Update(ctx context.Context, group *model.Group) error
}
