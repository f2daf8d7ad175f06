package repository

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// MemberRepository はグループメンバー永続化のインターフェース。
// 「JOINED の ADMIN が常に 1 人以上残る」不変条件は、メンバー行を
// ロックした単一トランザクション内で検査・強制される。
type MemberRepository interface {
	// Get は (groupID, userID) のメンバー行を取得する
	Get(ctx context.Context, groupID, userID string) (*model.GroupMember, error)
	// ListByGroupID はグループのメンバー一覧（users との JOIN 付き）を返す
	ListByGroupID(ctx context.Context, groupID string) ([]*model.GroupMember, error)
	// ListJoinedUserIDs は複数グループの JOINED メンバーのユーザー ID を
	// 重複なく返す
	ListJoinedUserIDs(ctx context.Context, groupIDs []string) ([]string, error)
	// Invite は PENDING のメンバー行とチェンジログを作成する。
	// (user_id, group_id) が既に存在する場合は ErrDuplicate。
	Invite(ctx context.Context, member *model.GroupMember, logs []*model.Changelog) error
	// Accept は PENDING → JOINED の遷移とチェンジログ挿入を行う。
	// PENDING 行がなければ ErrNotFound。
	Accept(ctx context.Context, groupID, userID string, logs []*model.Changelog) error
	// Decline は PENDING のメンバー行を削除する。なければ ErrNotFound。
	Decline(ctx context.Context, groupID, userID string) error
	// ChangeRole はロールを変更する。最後の JOINED ADMIN を降格させる場合は
	// ErrLastAdmin。
	ChangeRole(ctx context.Context, groupID, userID string, role model.Role, logs []*model.Changelog) error
	// Remove はメンバー行を削除する。最後の JOINED ADMIN を削除する場合は
	// ErrLastAdmin。
	Remove(ctx context.Context, groupID, userID string, logs []*model.Changelog) error
}
