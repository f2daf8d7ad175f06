package service

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// ChangelogService はチェンジログの閲覧・既読・削除のインターフェース
type ChangelogService interface {
	// List は created_at 降順でページングした一覧と未読件数を返す
	List(ctx context.Context, ownerID string, page, pageSize int) (*model.ChangelogListResult, error)
	// MarkRead は既読にする（冪等）
	MarkRead(ctx context.Context, ownerID, id string) error
	// Delete はチェンジログを削除する。INVITED_GROUP のチェンジログは
	// groupID が必須で、削除は招待辞退（メンバー行の削除）を伴う。
	Delete(ctx context.Context, ownerID, id, groupID string) error
}
