package service

import (
	"context"
	"errors"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ChangelogServiceImpl は ChangelogService の実装
type ChangelogServiceImpl struct {
	changelogRepo repository.ChangelogRepository
	memberRepo    repository.MemberRepository
}

// NewChangelogService は ChangelogServiceImpl を生成する
func NewChangelogService(changelogRepo repository.ChangelogRepository, memberRepo repository.MemberRepository) ChangelogService {
	return &ChangelogServiceImpl{changelogRepo: changelogRepo, memberRepo: memberRepo}
}

// List はページングした一覧と未読件数を返す
func (s *ChangelogServiceImpl) List(ctx context.Context, ownerID string, page, pageSize int) (*model.ChangelogListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	logs, err := s.changelogRepo.ListByOwnerID(ctx, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	unread, err := s.changelogRepo.CountUnread(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*model.Changelog{}
	}
	return &model.ChangelogListResult{
		Changelogs: logs,
		Unread:     unread,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// MarkRead は既読フラグを立てる
func (s *ChangelogServiceImpl) MarkRead(ctx context.Context, ownerID, id string) error {
	err := s.changelogRepo.MarkRead(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// Delete はチェンジログを削除する。
// INVITED_GROUP の削除は招待辞退と等価で、メンバー行も削除する。
func (s *ChangelogServiceImpl) Delete(ctx context.Context, ownerID, id, groupID string) error {
	l, err := s.changelogRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if l.Event == model.EventInvitedGroup {
		if groupID == "" {
			return ErrMissingGroupContext
		}
		err := s.memberRepo.Remove(ctx, groupID, ownerID, nil)
		switch {
		case errors.Is(err, repository.ErrLastAdmin):
			return ErrLastAdminProtection
		case errors.Is(err, repository.ErrNotFound):
			// メンバー行が既に無くてもチェンジログ削除は続行する
		case err != nil:
			return err
		}
	}

	err = s.changelogRepo.Delete(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
