package service

import (
	"context"
	"errors"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
	"github.com/shiplog/backend/pkg/metrics"
)

// AssociationServiceImpl は AssociationService の実装
type AssociationServiceImpl struct {
	assocRepo   repository.AssociationRepository
	projectRepo repository.ProjectRepository
	memberRepo  repository.MemberRepository
}

// NewAssociationService は AssociationServiceImpl を生成する
func NewAssociationService(
	assocRepo repository.AssociationRepository,
	projectRepo repository.ProjectRepository,
	memberRepo repository.MemberRepository,
) AssociationService {
	return &AssociationServiceImpl{
		assocRepo:   assocRepo,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
	}
}

// EditProjectGroups は対称差分だけを適用し、追加・削除の両方を適用した
// 後にファンアウトする。同じ集合の再送では何も起きない。差分計算と
// チェンジログ構築はリポジトリのプロジェクト行ロック下で行われるため、
// 同一プロジェクトへの並行編集が同じ追加を二重に通知することはない。
func (s *AssociationServiceImpl) EditProjectGroups(ctx context.Context, actorID, projectID string, target []string) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if project.OwnerID != actorID {
		return ErrNotAuthorized
	}

	fanout := 0
	buildLogs := func(toAdd, toRemove []string) ([]*model.Changelog, error) {
		// 追加先グループには JOINED メンバーとして所属していなければならない
		for _, groupID := range toAdd {
			m, err := s.memberRepo.Get(ctx, groupID, actorID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return nil, ErrNotAuthorized
				}
				return nil, err
			}
			if !m.Joined() {
				return nil, ErrNotAuthorized
			}
		}

		var logs []*model.Changelog
		if len(toAdd) > 0 {
			members, err := s.memberRepo.ListJoinedUserIDs(ctx, toAdd)
			if err != nil {
				return nil, err
			}
			logs = append(logs, projectAddedLogs(projectID, project.Name, members)...)
		}
		if len(toRemove) > 0 {
			members, err := s.memberRepo.ListJoinedUserIDs(ctx, toRemove)
			if err != nil {
				return nil, err
			}
			logs = append(logs, projectRemovedLogs(projectID, project.Name, members)...)
		}
		fanout = len(logs)
		return logs, nil
	}

	if err := s.assocRepo.Replace(ctx, projectID, target, buildLogs); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	metrics.IncrementFanout("project_association", fanout)
	return nil
}

// GroupsOf はプロジェクトに紐づくグループ ID の集合を返す
func (s *AssociationServiceImpl) GroupsOf(ctx context.Context, projectID string) ([]string, error) {
	return s.assocRepo.GroupsOf(ctx, projectID)
}

// IsVisibleTo はユーザーがプロジェクトを閲覧可能かを返す
func (s *AssociationServiceImpl) IsVisibleTo(ctx context.Context, userID, projectID string) (bool, error) {
	return s.assocRepo.IsVisibleTo(ctx, userID, projectID)
}
