package service

import (
	"context"
	"errors"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
	"github.com/shiplog/backend/pkg/metrics"
)

// MembershipServiceImpl は MembershipService の実装
type MembershipServiceImpl struct {
	memberRepo repository.MemberRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository

	// broadcastJoin が true の場合、参加通知を既存メンバーにも配信する
	broadcastJoin bool
}

// NewMembershipService は MembershipServiceImpl を生成する
func NewMembershipService(
	memberRepo repository.MemberRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	broadcastJoin bool,
) MembershipService {
	return &MembershipServiceImpl{
		memberRepo:    memberRepo,
		groupRepo:     groupRepo,
		userRepo:      userRepo,
		broadcastJoin: broadcastJoin,
	}
}

// memberWithRole は actor が groupID の JOINED メンバーで minRole 以上かを検査する
func (s *MembershipServiceImpl) memberWithRole(ctx context.Context, userID, groupID string, minRole model.Role) (bool, error) {
	m, err := s.memberRepo.Get(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Joined() && m.Role.AtLeast(minRole), nil
}

// Invite はメールアドレスでユーザーを招待する
func (s *MembershipServiceImpl) Invite(ctx context.Context, actorID, groupID, email string, role model.Role) (*model.GroupMember, error) {
	if !role.Valid() {
		return nil, ErrInvalidInput
	}
	ok, err := s.memberWithRole(ctx, actorID, groupID, model.RoleMaintainer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAuthorized
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	member := &model.GroupMember{
		UserID:  user.ID,
		GroupID: groupID,
		Role:    role,
	}
	logs := invitedGroupLog(user.ID, groupID, group.Name)
	if err := s.memberRepo.Invite(ctx, member, logs); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	metrics.IncrementFanout(string(model.EventInvitedGroup), len(logs))
	member.Email = user.Email
	member.Name = user.Name
	return member, nil
}

// AcceptInvitation は招待を受諾する。
// 新メンバー参加の周知はポリシー設定（broadcastJoin）に従う。
func (s *MembershipServiceImpl) AcceptInvitation(ctx context.Context, userID, groupID string) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoSuchInvitation
		}
		return err
	}

	recipients := []string{userID}
	if s.broadcastJoin {
		existing, err := s.memberRepo.ListJoinedUserIDs(ctx, []string{groupID})
		if err != nil {
			return err
		}
		recipients = append(recipients, existing...)
	}

	logs := joinedGroupLogs(groupID, group.Name, recipients)
	if err := s.memberRepo.Accept(ctx, groupID, userID, logs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoSuchInvitation
		}
		return err
	}
	metrics.IncrementFanout(string(model.EventJoinedGroup), len(logs))
	return nil
}

// DeclineInvitation は招待を辞退する
func (s *MembershipServiceImpl) DeclineInvitation(ctx context.Context, userID, groupID string) error {
	err := s.memberRepo.Decline(ctx, groupID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoSuchInvitation
	}
	return err
}

// ChangeRole はメンバーのロールを変更する
func (s *MembershipServiceImpl) ChangeRole(ctx context.Context, actorID, targetID, groupID string, newRole model.Role) error {
	if !newRole.Valid() {
		return ErrInvalidInput
	}
	ok, err := s.memberWithRole(ctx, actorID, groupID, model.RoleAdmin)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthorized
	}

	logs := roleChangedLog(targetID, groupID, newRole)
	err = s.memberRepo.ChangeRole(ctx, groupID, targetID, newRole, logs)
	switch {
	case errors.Is(err, repository.ErrLastAdmin):
		return ErrLastAdminProtection
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return err
	}
	metrics.IncrementFanout(string(model.EventRoleChanged), len(logs))
	return nil
}

// RemoveMember はメンバーを除名する。除名されたユーザーにのみ通知する。
func (s *MembershipServiceImpl) RemoveMember(ctx context.Context, actorID, targetID, groupID string) error {
	ok, err := s.memberWithRole(ctx, actorID, groupID, model.RoleAdmin)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthorized
	}

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	logs := leftGroupLog(targetID, groupID, group.Name)
	err = s.memberRepo.Remove(ctx, groupID, targetID, logs)
	switch {
	case errors.Is(err, repository.ErrLastAdmin):
		return ErrLastAdminProtection
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return err
	}
	metrics.IncrementFanout(string(model.EventLeftGroup), len(logs))
	return nil
}

// LeaveGroup は自発的にグループを抜ける。本人への通知は行わない。
func (s *MembershipServiceImpl) LeaveGroup(ctx context.Context, userID, groupID string) error {
	err := s.memberRepo.Remove(ctx, groupID, userID, nil)
	switch {
	case errors.Is(err, repository.ErrLastAdmin):
		return ErrLastAdminProtection
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	}
	return err
}

// IsMaintainer は JOINED かつ MAINTAINER 以上かを返す
func (s *MembershipServiceImpl) IsMaintainer(ctx context.Context, userID, groupID string) (bool, error) {
	return s.memberWithRole(ctx, userID, groupID, model.RoleMaintainer)
}

// IsAdmin は JOINED かつ ADMIN かを返す
func (s *MembershipServiceImpl) IsAdmin(ctx context.Context, userID, groupID string) (bool, error) {
	return s.memberWithRole(ctx, userID, groupID, model.RoleAdmin)
}

// ListMembers はグループのメンバー一覧を返す
func (s *MembershipServiceImpl) ListMembers(ctx context.Context, actorID, groupID string) ([]*model.GroupMember, error) {
	if _, err := s.memberRepo.Get(ctx, groupID, actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, err
	}
	return s.memberRepo.ListByGroupID(ctx, groupID)
}
