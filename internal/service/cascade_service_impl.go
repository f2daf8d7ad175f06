package service

import (
	"context"
	"errors"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
	"github.com/shiplog/backend/pkg/metrics"
)

// CascadeServiceImpl は CascadeService の実装
type CascadeServiceImpl struct {
	cascadeRepo repository.CascadeRepository
	projectRepo repository.ProjectRepository
	groupRepo   repository.GroupRepository
	memberRepo  repository.MemberRepository
}

// NewCascadeService は CascadeServiceImpl を生成する
func NewCascadeService(
	cascadeRepo repository.CascadeRepository,
	projectRepo repository.ProjectRepository,
	groupRepo repository.GroupRepository,
	memberRepo repository.MemberRepository,
) CascadeService {
	return &CascadeServiceImpl{
		cascadeRepo: cascadeRepo,
		projectRepo: projectRepo,
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
	}
}

// removalLogs はグループ解体時の PROJECT_REMOVED ファンアウトを構築する。
// skipOwner が空でなければ、そのユーザー所有のプロジェクト（どのみち
// 一緒に消える）と、そのユーザー宛の行を除外する。
func (s *CascadeServiceImpl) removalLogs(ctx context.Context, groupID, skipOwner string) ([]*model.Changelog, error) {
	projects, err := s.projectRepo.ListByGroupID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}
	members, err := s.memberRepo.ListJoinedUserIDs(ctx, []string{groupID})
	if err != nil {
		return nil, err
	}

	var logs []*model.Changelog
	for _, p := range projects {
		if skipOwner != "" && p.OwnerID == skipOwner {
			continue
		}
		recipients := members
		if skipOwner != "" {
			recipients = nil
			for _, id := range members {
				if id != skipOwner {
					recipients = append(recipients, id)
				}
			}
		}
		logs = append(logs, projectRemovedLogs(p.ID, p.Name, recipients)...)
	}
	return logs, nil
}

// DeleteUser はアカウント削除を実行する。
// 所有グループの解体に伴う PROJECT_REMOVED は、残るメンバーにだけ、
// 削除と同一トランザクションで配信される。
func (s *CascadeServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	owned, err := s.groupRepo.ListByOwnerID(ctx, userID)
	if err != nil {
		return err
	}
	var logs []*model.Changelog
	for _, g := range owned {
		gl, err := s.removalLogs(ctx, g.ID, userID)
		if err != nil {
			return err
		}
		logs = append(logs, gl...)
	}

	err = s.cascadeRepo.DeleteUser(ctx, userID, logs)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrFanout):
		return ErrPartialFanout
	case err != nil:
		return err
	}
	metrics.IncrementFanout(string(model.EventProjectRemoved), len(logs))
	return nil
}

// DeleteGroup はグループ削除を実行する
func (s *CascadeServiceImpl) DeleteGroup(ctx context.Context, actorID, groupID string) error {
	m, err := s.memberRepo.Get(ctx, groupID, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAuthorized
		}
		return err
	}
	if !m.Joined() || !m.Role.AtLeast(model.RoleAdmin) {
		return ErrNotAuthorized
	}

	logs, err := s.removalLogs(ctx, groupID, "")
	if err != nil {
		return err
	}

	err = s.cascadeRepo.DeleteGroup(ctx, groupID, logs)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrFanout):
		return ErrPartialFanout
	case err != nil:
		return err
	}
	metrics.IncrementFanout(string(model.EventProjectRemoved), len(logs))
	return nil
}

// DeleteProject はプロジェクト削除を実行する。
// プロジェクト参照のチェンジログは FK で一緒に消えるため、
// ここでの PROJECT_REMOVED 発行は行わない。
func (s *CascadeServiceImpl) DeleteProject(ctx context.Context, actorID, projectID string) error {
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

	err = s.cascadeRepo.DeleteProject(ctx, projectID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
