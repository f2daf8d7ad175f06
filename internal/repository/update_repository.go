package repository

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// UpdateRepository はアップデート永続化のインターフェース。
// 状態遷移メソッドは遷移とチェンジログ挿入を単一トランザクションで行う。
// ファンアウトが失敗した場合は遷移ごとロールバックされる。
type UpdateRepository interface {
	// GetByID は ID でアップデートを取得する
	GetByID(ctx context.Context, id string) (*model.Update, error)
	// ListByProjectID はプロジェクトのアップデート一覧を作成日時降順で返す
	ListByProjectID(ctx context.Context, projectID string) ([]*model.Update, error)
	// CreateWithNotes はアップデートと初期チェンジノートとチェンジログを
	// まとめて作成する。(project_id, target_version) の一意制約違反は ErrDuplicate。
	CreateWithNotes(ctx context.Context, update *model.Update, notes []*model.Note, logs []*model.Changelog) error
	// Start は SCHEDULED → IN_DEVELOPMENT の遷移を行う。
	// SCHEDULED 以外からは ErrInvalidState。
	Start(ctx context.Context, id, userID string, logs []*model.Changelog) (*model.Update, error)
	// Publish は IN_DEVELOPMENT → PUBLISHED の遷移を行い、親プロジェクトの
	// version を上書きする。IN_DEVELOPMENT 以外からは ErrInvalidState。
	Publish(ctx context.Context, id, userID, version string, logs []*model.Changelog) (*model.Update, error)
	// Delete はアップデートとそのチェンジノートをハードデリートする。
	// 任意の状態から可能。公開済みでもプロジェクトの version は戻さない。
	Delete(ctx context.Context, id string, logs []*model.Changelog) error
}
