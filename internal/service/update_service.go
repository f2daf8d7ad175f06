package service

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// UpdateService はアップデートのライフサイクルに関するビジネスロジックの
// インターフェース。遷移は SCHEDULED → IN_DEVELOPMENT → PUBLISHED の
// 一方向のみで、スキップも逆行もできない。
type UpdateService interface {
	// ListByProjectID はプロジェクトのアップデート一覧を返す
	ListByProjectID(ctx context.Context, actorID, projectID string) ([]*model.Update, error)
	// GetByID はアップデートをチェンジノート付きで取得する
	GetByID(ctx context.Context, actorID, updateID string) (*model.Update, error)
	// Schedule は新しいアップデートを SCHEDULED で作成し、初期チェンジノートを
	// 一括登録する。(projectId, targetVersion) が重複する場合は
	// ErrDuplicateVersion。
	Schedule(ctx context.Context, actorID, projectID, targetVersion string, noteContents []string) (*model.Update, error)
	// Start は開発開始の遷移を行う
	Start(ctx context.Context, actorID, updateID string) (*model.Update, error)
	// Publish は公開の遷移を行い、親プロジェクトの version を
	// publishedVersion で上書きする。空文字なら targetVersion を使う。
	Publish(ctx context.Context, actorID, updateID, publishedVersion string) (*model.Update, error)
	// Delete はアップデートをチェンジノートごと削除する。任意の状態から可能。
	Delete(ctx context.Context, actorID, updateID string) error

	// チェンジノートのサブ操作。プロジェクトレベルのイベントではないため
	// ファンアウトは行わない。
	AddNote(ctx context.Context, actorID, updateID, content string) (*model.Note, error)
	MarkNoteDone(ctx context.Context, actorID, updateID, noteID string) error
	MarkNoteTodo(ctx context.Context, actorID, updateID, noteID string) error
	// MoveNote はチェンジノートを同一プロジェクト内の別アップデートへ移す。
	// ノートが updateID に属していなければ ErrNotFound。別プロジェクトへは
	// ErrCrossProjectMove、公開済みアップデートが絡む場合は ErrInvalidTransition。
	MoveNote(ctx context.Context, actorID, updateID, noteID, destUpdateID string) error
	DeleteNote(ctx context.Context, actorID, updateID, noteID string) error
}
