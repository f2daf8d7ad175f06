package service

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// ProjectService はプロジェクトに関するビジネスロジックのインターフェース
type ProjectService interface {
	// ListVisible はユーザーが閲覧可能なプロジェクト一覧を返す
	ListVisible(ctx context.Context, userID string) ([]*model.Project, error)
	// ListOwned はユーザーが所有するプロジェクト一覧を返す
	ListOwned(ctx context.Context, userID string) ([]*model.Project, error)
	// GetByID はプロジェクトを紐づくグループ ID 付きで取得する。
	// 閲覧権限が無い場合は ErrNotFound。
	GetByID(ctx context.Context, actorID, projectID string) (*model.Project, error)
	// Create は新しいプロジェクトを作成する。version は空で始まり、
	// アップデート公開の副作用としてのみ変わる。
	Create(ctx context.Context, project *model.Project) (*model.Project, error)
	// Update は名前・説明・リポジトリ URL を更新する。所有者のみ。
	Update(ctx context.Context, actorID string, project *model.Project) error
}
