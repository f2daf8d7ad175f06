package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
)

// GroupServiceImpl は GroupService の実装
type GroupServiceImpl struct {
	groupRepo  repository.GroupRepository
	memberRepo repository.MemberRepository
}

// NewGroupService は GroupServiceImpl を生成する
func NewGroupService(groupRepo repository.GroupRepository, memberRepo repository.MemberRepository) GroupService {
	return &GroupServiceImpl{groupRepo: groupRepo, memberRepo: memberRepo}
}

// ListMine はユーザーが所属するグループ一覧を返す
func (s *GroupServiceImpl) ListMine(ctx context.Context, userID string) ([]*model.Group, error) {
	return s.groupRepo.ListByUserID(ctx, userID)
}

// GetByID はグループをメンバー一覧付きで取得する
func (s *GroupServiceImpl) GetByID(ctx context.Context, actorID, groupID string) (*model.Group, error) {
	if _, err := s.memberRepo.Get(ctx, groupID, actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	members, err := s.memberRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return group, nil
}

// Create はグループを作成する
func (s *GroupServiceImpl) Create(ctx context.Context, group *model.Group) (*model.Group, error) {
	if strings.TrimSpace(group.Name) == "" {
		return nil, ErrInvalidInput
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Update は名前・説明を更新する
func (s *GroupServiceImpl) Update(ctx context.Context, actorID string, group *model.Group) error {
	m, err := s.memberRepo.Get(ctx, group.ID, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAuthorized
		}
		return err
	}
	if !m.Joined() || !m.Role.AtLeast(model.RoleAdmin) {
		return ErrNotAuthorized
	}
	if strings.TrimSpace(group.Name) == "" {
		return ErrInvalidInput
	}
	err = s.groupRepo.Update(ctx, group)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
