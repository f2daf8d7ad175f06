package service

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// GroupService はグループに関するビジネスロジックのインターフェース
type GroupService interface {
	// ListMine はユーザーが所属するグループ一覧を返す
	ListMine(ctx context.Context, userID string) ([]*model.Group, error)
	// GetByID はグループをメンバー一覧付きで取得する。メンバーのみ閲覧可能。
	GetByID(ctx context.Context, actorID, groupID string) (*model.Group, error)
	// Create はグループを作成し、作成者を最初の ADMIN として登録する
	Create(ctx context.Context, group *model.Group) (*model.Group, error)
	// Update は名前・説明を更新する。ADMIN のみ。
	Update(ctx context.Context, actorID string, group *model.Group) error
}
