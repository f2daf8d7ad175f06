package repository

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// NoteRepository はノート永続化のインターフェース。
// update_id が NULL の行は個人ノート、非 NULL の行はチェンジノート。
type NoteRepository interface {
	// GetByID は ID でノートを取得する
	GetByID(ctx context.Context, id string) (*model.Note, error)
	// ListByUpdateID はアップデートのチェンジノート一覧を作成日時昇順で返す
	ListByUpdateID(ctx context.Context, updateID string) ([]*model.Note, error)
	// ListPersonal はユーザーの個人ノート一覧を返す
	ListPersonal(ctx context.Context, authorID string) ([]*model.Note, error)
	// Create は新しいノートを作成する
	Create(ctx context.Context, note *model.Note) error
	// SetDone は done フラグを立てる
	SetDone(ctx context.Context, id, userID string) error
	// SetTodo は done フラグを下ろし、done_by / done_at をクリアする
	SetTodo(ctx context.Context, id string) error
	// Move はチェンジノートを別のアップデートに付け替える。created_at は変えない。
	Move(ctx context.Context, id, destUpdateID string) error
	// Delete はノートを削除する
	Delete(ctx context.Context, id string) error
}
