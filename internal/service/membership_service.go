package service

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// MembershipService はグループメンバーシップに関するビジネスロジックの
// インターフェース。不変条件: グループには JOINED の ADMIN が常に 1 人以上残る。
type MembershipService interface {
	// Invite はメールアドレスでユーザーを招待する。
	// 招待できるのは JOINED の MAINTAINER 以上。
	Invite(ctx context.Context, actorID, groupID, email string, role model.Role) (*model.GroupMember, error)
	// AcceptInvitation は PENDING → JOINED の遷移を行う
	AcceptInvitation(ctx context.Context, userID, groupID string) error
	// DeclineInvitation は PENDING の招待を取り消す
	DeclineInvitation(ctx context.Context, userID, groupID string) error
	// ChangeRole はメンバーのロールを変更する。ADMIN のみ。
	ChangeRole(ctx context.Context, actorID, targetID, groupID string, newRole model.Role) error
	// RemoveMember はメンバーを除名する。ADMIN のみ。
	RemoveMember(ctx context.Context, actorID, targetID, groupID string) error
	// LeaveGroup は自発的にグループを抜ける
	LeaveGroup(ctx context.Context, userID, groupID string) error
	// IsMaintainer は JOINED かつ MAINTAINER 以上かを返す。非メンバーは false。
	IsMaintainer(ctx context.Context, userID, groupID string) (bool, error)
	// IsAdmin は JOINED かつ ADMIN かを返す。非メンバーは false。
	IsAdmin(ctx context.Context, userID, groupID string) (bool, error)
	// ListMembers はグループのメンバー一覧を返す。メンバーのみ閲覧可能。
	ListMembers(ctx context.Context, actorID, groupID string) ([]*model.GroupMember, error)
}
