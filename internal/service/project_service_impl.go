package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
)

// ProjectServiceImpl は ProjectService の実装
type ProjectServiceImpl struct {
	projectRepo repository.ProjectRepository
	assocRepo   repository.AssociationRepository
}

// NewProjectService は ProjectServiceImpl を生成する
func NewProjectService(projectRepo repository.ProjectRepository, assocRepo repository.AssociationRepository) ProjectService {
	return &ProjectServiceImpl{projectRepo: projectRepo, assocRepo: assocRepo}
}

// ListVisible はユーザーが閲覧可能なプロジェクト一覧を返す
func (s *ProjectServiceImpl) ListVisible(ctx context.Context, userID string) ([]*model.Project, error) {
	return s.projectRepo.ListVisibleTo(ctx, userID)
}

// ListOwned はユーザーが所有するプロジェクト一覧を返す
func (s *ProjectServiceImpl) ListOwned(ctx context.Context, userID string) ([]*model.Project, error) {
	return s.projectRepo.ListByOwnerID(ctx, userID)
}

// GetByID はプロジェクトを紐づくグループ ID 付きで取得する
func (s *ProjectServiceImpl) GetByID(ctx context.Context, actorID, projectID string) (*model.Project, error) {
	visible, err := s.assocRepo.IsVisibleTo(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrNotFound
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	groups, err := s.assocRepo.GroupsOf(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project.GroupIDs = groups
	return project, nil
}

// Create は新しいプロジェクトを作成する
func (s *ProjectServiceImpl) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	if strings.TrimSpace(project.Name) == "" {
		return nil, ErrInvalidInput
	}
	project.Version = ""
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update は名前・説明・リポジトリ URL を更新する
func (s *ProjectServiceImpl) Update(ctx context.Context, actorID string, project *model.Project) error {
	existing, err := s.projectRepo.GetByID(ctx, project.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if existing.OwnerID != actorID {
		return ErrNotAuthorized
	}
	if strings.TrimSpace(project.Name) == "" {
		return ErrInvalidInput
	}
	return s.projectRepo.Update(ctx, project)
}
