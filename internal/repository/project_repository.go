package repository

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// ProjectRepository はプロジェクト永続化のインターフェース
type ProjectRepository interface {
	// GetByID は ID でプロジェクトを取得する
	GetByID(ctx context.Context, id string) (*model.Project, error)
	// ListByOwnerID はユーザーが所有するプロジェクト一覧を返す
	ListByOwnerID(ctx context.Context, ownerID string) ([]*model.Project, error)
	// ListVisibleTo はユーザーが閲覧可能な（所有 or 所属グループに紐づく）
	// プロジェクト一覧を返す
	ListVisibleTo(ctx context.Context, userID string) ([]*model.Project, error)
	// ListByGroupID はグループに紐づくプロジェクト一覧を返す
	ListByGroupID(ctx context.Context, groupID string) ([]*model.Project, error)
	// Create は新しいプロジェクトを作成する
	Create(ctx context.Context, project *model.Project) error
	// Update は name, description, repository_url, updated_at を更新する。
	// version はアップデート公開の副作用としてのみ変わる。
	Update(ctx context.Context, project *model.Project) error
}
