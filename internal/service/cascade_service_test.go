package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// Tests: CascadeService.DeleteUser
// ---------------------------------------------------------------------------

func TestCascadeService_DeleteUser_NotifiesSurvivingMembersOfOwnedGroups(t *testing.T) {
	groupRepo := &mockGroupRepository{
		listByOwnerFunc: func(ctx context.Context, ownerID string) ([]*model.Group, error) {
			return []*model.Group{{ID: "group-1", OwnerID: ownerID}}, nil
		},
	}
	projectRepo := &mockProjectRepository{
		listByGroupFunc: func(ctx context.Context, groupID string) ([]*model.Project, error) {
			return []*model.Project{
				// 本人所有のプロジェクトは一緒に消えるので通知しない
				{ID: "project-own", OwnerID: "user-1", Name: "own"},
				{ID: "project-other", OwnerID: "other-owner", Name: "other"},
			}, nil
		},
	}
	memberRepo := &mockMemberRepository{
		listJoinedUserIDsFunc: func(ctx context.Context, groupIDs []string) ([]string, error) {
			return []string{"user-1", "member-2", "member-3"}, nil
		},
	}
	var capturedLogs []*model.Changelog
	cascadeRepo := &mockCascadeRepository{
		deleteUserFunc: func(ctx context.Context, userID string, logs []*model.Changelog) error {
			capturedLogs = logs
			return nil
		},
	}

	svc := NewCascadeService(cascadeRepo, projectRepo, groupRepo, memberRepo)
	if err := svc.DeleteUser(context.Background(), "user-1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	// project-other の解除を member-2 / member-3 に通知（本人は除外）
	if len(capturedLogs) != 2 {
		t.Fatalf("expected 2 changelogs, got %d", len(capturedLogs))
	}
	for _, l := range capturedLogs {
		if l.Event != model.EventProjectRemoved {
			t.Errorf("expected PROJECT_REMOVED, got %s", l.Event)
		}
		if l.OwnerID == "user-1" {
			t.Error("deleted user must not receive changelogs")
		}
		if l.ProjectID == nil || *l.ProjectID != "project-other" {
			t.Error("expected changelog bound to project-other")
		}
	}
}

func TestCascadeService_DeleteUser_FanoutFailureSurfaces(t *testing.T) {
	cascadeRepo := &mockCascadeRepository{
		deleteUserFunc: func(ctx context.Context, userID string, logs []*model.Changelog) error {
			return repository.ErrFanout
		},
	}

	svc := NewCascadeService(cascadeRepo, &mockProjectRepository{}, &mockGroupRepository{}, &mockMemberRepository{})
	err := svc.DeleteUser(context.Background(), "user-1")
	if !errors.Is(err, ErrPartialFanout) {
		t.Errorf("expected ErrPartialFanout, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Tests: CascadeService.DeleteGroup
// ---------------------------------------------------------------------------

func TestCascadeService_DeleteGroup_RequiresJoinedAdmin(t *testing.T) {
	memberRepo := &mockMemberRepository{
		getFunc: func(ctx context.Context, groupID, userID string) (*model.GroupMember, error) {
			return joined(userID, groupID, model.RoleMaintainer), nil
		},
	}

	svc := NewCascadeService(&mockCascadeRepository{}, &mockProjectRepository{}, &mockGroupRepository{}, memberRepo)
	err := svc.DeleteGroup(context.Background(), "maintainer-1", "group-1")
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestCascadeService_DeleteGroup_NotifiesMembersOfDetachedProjects(t *testing.T) {
	memberRepo := &mockMemberRepository{
		getFunc: func(ctx context.Context, groupID, userID string) (*model.GroupMember, error) {
			return joined(userID, groupID, model.RoleAdmin), nil
		},
		listJoinedUserIDsFunc: func(ctx context.Context, groupIDs []string) ([]string, error) {
			return []string{"admin-1", "member-2"}, nil
		},
	}
	projectRepo := &mockProjectRepository{
		listByGroupFunc: func(ctx context.Context, groupID string) ([]*model.Project, error) {
			return []*model.Project{{ID: "project-1", OwnerID: "other", Name: "p"}}, nil
		},
	}
	var capturedLogs []*model.Changelog
	cascadeRepo := &mockCascadeRepository{
		deleteGroupFunc: func(ctx context.Context, groupID string, logs []*model.Changelog) error {
			capturedLogs = logs
			return nil
		},
	}

	svc := NewCascadeService(cascadeRepo, projectRepo, &mockGroupRepository{}, memberRepo)
	if err := svc.DeleteGroup(context.Background(), "admin-1", "group-1"); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	if len(capturedLogs) != 2 {
		t.Errorf("expected PROJECT_REMOVED for both members, got %d", len(capturedLogs))
	}
}

// ---------------------------------------------------------------------------
// Tests: CascadeService.DeleteProject
// ---------------------------------------------------------------------------

func TestCascadeService_DeleteProject_OwnerOnly(t *testing.T) {
	projectRepo := &mockProjectRepository{
		getFunc: func(ctx context.Context, id string) (*model.Project, error) {
			return &model.Project{ID: id, OwnerID: "owner-1"}, nil
		},
	}

	svc := NewCascadeService(&mockCascadeRepository{}, projectRepo, &mockGroupRepository{}, &mockMemberRepository{})
	err := svc.DeleteProject(context.Background(), "stranger", "project-1")
	if !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestCascadeService_DeleteProject_OwnerSucceeds(t *testing.T) {
	projectRepo := &mockProjectRepository{
		getFunc: func(ctx context.Context, id string) (*model.Project, error) {
			return &model.Project{ID: id, OwnerID: "owner-1"}, nil
		},
	}
	deleted := false
	cascadeRepo := &mockCascadeRepository{
		deleteProjectFunc: func(ctx context.Context, projectID string) error {
			deleted = true
			return nil
		},
	}

	svc := NewCascadeService(cascadeRepo, projectRepo, &mockGroupRepository{}, &mockMemberRepository{})
	if err := svc.DeleteProject(context.Background(), "owner-1", "project-1"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if !deleted {
		t.Error("DeleteProject not called on repository")
	}
}
