package service

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// NoteService は個人ノート（アップデートに紐づかないノート）に関する
// ビジネスロジックのインターフェース
type NoteService interface {
	// ListPersonal は自分の個人ノート一覧を返す
	ListPersonal(ctx context.Context, userID string) ([]*model.Note, error)
	// Create は個人ノートを作成する
	Create(ctx context.Context, userID, content string) (*model.Note, error)
	// MarkDone は done フラグを立てる
	MarkDone(ctx context.Context, userID, noteID string) error
	// MarkTodo は done フラグを下ろす
	MarkTodo(ctx context.Context, userID, noteID string) error
	// Delete は個人ノートを削除する
	Delete(ctx context.Context, userID, noteID string) error
}
