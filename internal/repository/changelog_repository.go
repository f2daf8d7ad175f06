package repository

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// ChangelogRepository はチェンジログ永続化のインターフェース
type ChangelogRepository interface {
	// CreateBatch は 1 イベント分のチェンジログを全件まとめて挿入する。
	// 途中で失敗した場合は 1 件も残らない（all-or-nothing）。
	CreateBatch(ctx context.Context, logs []*model.Changelog) error
	// ListByOwnerID は timestamp 降順で limit/offset 分を返す
	ListByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*model.Changelog, error)
	// CountUnread は未読件数を返す
	CountUnread(ctx context.Context, ownerID string) (int, error)
	// GetByID は owner 所有のチェンジログを取得する。所有していなければ ErrNotFound。
	GetByID(ctx context.Context, ownerID, id string) (*model.Changelog, error)
	// MarkRead は既読フラグを立てる。既読なら no-op。所有していなければ ErrNotFound。
	MarkRead(ctx context.Context, ownerID, id string) error
	// Delete は owner 所有のチェンジログを削除する。所有していなければ ErrNotFound。
	Delete(ctx context.Context, ownerID, id string) error
}
