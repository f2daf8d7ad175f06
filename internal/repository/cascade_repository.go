package repository

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// CascadeRepository はルート集約削除時の整合性維持を担う。
// 各メソッドは外部キー違反を起こさない決定的な順序で、
// 単一トランザクションとして削除を実行する。
type CascadeRepository interface {
	// DeleteUser はユーザーとその所有物を削除する。
	// アップデートに紐づくノートは author / done_by を NULL にして残し、
	// 個人ノートは削除する。logs には削除前に確定したファンアウト
	// （所有グループ解体に伴う PROJECT_REMOVED）を渡す。
	DeleteUser(ctx context.Context, userID string, logs []*model.Changelog) error
	// DeleteGroup はグループを削除する。紐づくプロジェクトの関連を外し、
	// メンバーとグループ参照チェンジログは FK で連鎖削除される。
	DeleteGroup(ctx context.Context, groupID string, logs []*model.Changelog) error
	// DeleteProject はプロジェクトを削除する。アップデート・ノート・
	// プロジェクト参照チェンジログは FK で連鎖削除される。
	DeleteProject(ctx context.Context, projectID string) error
}
