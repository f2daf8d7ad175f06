package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/service"
	"github.com/shiplog/backend/pkg/auth"
)

// authedRequest は "user-1" をコンテキストに積んだリクエストを作る
func authedRequest(method, target string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	return r.WithContext(auth.WithUserID(r.Context(), "user-1"))
}

// ---------------------------------------------------------------------------
// Mock UpdateService
// ---------------------------------------------------------------------------

type mockUpdateService struct {
	listByProjectIDFunc func(ctx context.Context, actorID, projectID string) ([]*model.Update, error)
	getByIDFunc         func(ctx context.Context, actorID, updateID string) (*model.Update, error)
	scheduleFunc        func(ctx context.Context, actorID, projectID, targetVersion string, noteContents []string) (*model.Update, error)
	startFunc           func(ctx context.Context, actorID, updateID string) (*model.Update, error)
	publishFunc         func(ctx context.Context, actorID, updateID, publishedVersion string) (*model.Update, error)
	deleteFunc          func(ctx context.Context, actorID, updateID string) error
	addNoteFunc         func(ctx context.Context, actorID, updateID, content string) (*model.Note, error)
	markNoteDoneFunc    func(ctx context.Context, actorID, updateID, noteID string) error
	markNoteTodoFunc    func(ctx context.Context, actorID, updateID, noteID string) error
	moveNoteFunc        func(ctx context.Context, actorID, updateID, noteID, destUpdateID string) error
	deleteNoteFunc      func(ctx context.Context, actorID, updateID, noteID string) error
}

func (m *mockUpdateService) ListByProjectID(ctx context.Context, actorID, projectID string) ([]*model.Update, error) {
	if m.listByProjectIDFunc != nil {
		return m.listByProjectIDFunc(ctx, actorID, projectID)
	}
	return nil, nil
}
func (m *mockUpdateService) GetByID(ctx context.Context, actorID, updateID string) (*model.Update, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, actorID, updateID)
	}
	return nil, service.ErrNotFound
}
func (m *mockUpdateService) Schedule(ctx context.Context, actorID, projectID, targetVersion string, noteContents []string) (*model.Update, error) {
	if m.scheduleFunc != nil {
		return m.scheduleFunc(ctx, actorID, projectID, targetVersion, noteContents)
	}
	return nil, nil
}
func (m *mockUpdateService) Start(ctx context.Context, actorID, updateID string) (*model.Update, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx, actorID, updateID)
	}
	return nil, nil
}
func (m *mockUpdateService) Publish(ctx context.Context, actorID, updateID, publishedVersion string) (*model.Update, error) {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, actorID, updateID, publishedVersion)
	}
	return nil, nil
}
func (m *mockUpdateService) Delete(ctx context.Context, actorID, updateID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, actorID, updateID)
	}
	return nil
}
func (m *mockUpdateService) AddNote(ctx context.Context, actorID, updateID, content string) (*model.Note, error) {
	if m.addNoteFunc != nil {
		return m.addNoteFunc(ctx, actorID, updateID, content)
	}
	return nil, nil
}
func (m *mockUpdateService) MarkNoteDone(ctx context.Context, actorID, updateID, noteID string) error {
	if m.markNoteDoneFunc != nil {
		return m.markNoteDoneFunc(ctx, actorID, updateID, noteID)
	}
	return nil
}
func (m *mockUpdateService) MarkNoteTodo(ctx context.Context, actorID, updateID, noteID string) error {
	if m.markNoteTodoFunc != nil {
		return m.markNoteTodoFunc(ctx, actorID, updateID, noteID)
	}
	return nil
}
func (m *mockUpdateService) MoveNote(ctx context.Context, actorID, updateID, noteID, destUpdateID string) error {
	if m.moveNoteFunc != nil {
		return m.moveNoteFunc(ctx, actorID, updateID, noteID, destUpdateID)
	}
	return nil
}
func (m *mockUpdateService) DeleteNote(ctx context.Context, actorID, updateID, noteID string) error {
	if m.deleteNoteFunc != nil {
		return m.deleteNoteFunc(ctx, actorID, updateID, noteID)
	}
	return nil
}

var _ service.UpdateService = (*mockUpdateService)(nil)

// ---------------------------------------------------------------------------
// Mock ProjectService
// ---------------------------------------------------------------------------

type mockProjectService struct {
	listVisibleFunc func(ctx context.Context, userID string) ([]*model.Project, error)
	listOwnedFunc   func(ctx context.Context, userID string) ([]*model.Project, error)
	getByIDFunc     func(ctx context.Context, actorID, projectID string) (*model.Project, error)
	createFunc      func(ctx context.Context, project *model.Project) (*model.Project, error)
	updateFunc      func(ctx context.Context, actorID string, project *model.Project) error
}

func (m *mockProjectService) ListVisible(ctx context.Context, userID string) ([]*model.Project, error) {
	if m.listVisibleFunc != nil {
		return m.listVisibleFunc(ctx, userID)
	}
	return nil, nil
}
func (m *mockProjectService) ListOwned(ctx context.Context, userID string) ([]*model.Project, error) {
	if m.listOwnedFunc != nil {
		return m.listOwnedFunc(ctx, userID)
	}
	return nil, nil
}
func (m *mockProjectService) GetByID(ctx context.Context, actorID, projectID string) (*model.Project, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, actorID, projectID)
	}
	return nil, service.ErrNotFound
}
func (m *mockProjectService) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	return project, nil
}
func (m *mockProjectService) Update(ctx context.Context, actorID string, project *model.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, actorID, project)
	}
	return nil
}

var _ service.ProjectService = (*mockProjectService)(nil)

// ---------------------------------------------------------------------------
// Mock AssociationService
// ---------------------------------------------------------------------------

type mockAssociationService struct {
	editProjectGroupsFunc func(ctx context.Context, actorID, projectID string, target []string) error
	groupsOfFunc          func(ctx context.Context, projectID string) ([]string, error)
	isVisibleToFunc       func(ctx context.Context, userID, projectID string) (bool, error)
}

func (m *mockAssociationService) EditProjectGroups(ctx context.Context, actorID, projectID string, target []string) error {
	if m.editProjectGroupsFunc != nil {
		return m.editProjectGroupsFunc(ctx, actorID, projectID, target)
	}
	return nil
}
func (m *mockAssociationService) GroupsOf(ctx context.Context, projectID string) ([]string, error) {
	if m.groupsOfFunc != nil {
		return m.groupsOfFunc(ctx, projectID)
	}
	return nil, nil
}
func (m *mockAssociationService) IsVisibleTo(ctx context.Context, userID, projectID string) (bool, error) {
	if m.isVisibleToFunc != nil {
		return m.isVisibleToFunc(ctx, userID, projectID)
	}
	return true, nil
}

var _ service.AssociationService = (*mockAssociationService)(nil)

// ---------------------------------------------------------------------------
// Mock MembershipService
// ---------------------------------------------------------------------------

type mockMembershipService struct {
	inviteFunc            func(ctx context.Context, actorID, groupID, email string, role model.Role) (*model.GroupMember, error)
	acceptInvitationFunc  func(ctx context.Context, userID, groupID string) error
	declineInvitationFunc func(ctx context.Context, userID, groupID string) error
	changeRoleFunc        func(ctx context.Context, actorID, targetID, groupID string, newRole model.Role) error
	removeMemberFunc      func(ctx context.Context, actorID, targetID, groupID string) error
	leaveGroupFunc        func(ctx context.Context, userID, groupID string) error
	isMaintainerFunc      func(ctx context.Context, userID, groupID string) (bool, error)
	isAdminFunc           func(ctx context.Context, userID, groupID string) (bool, error)
	listMembersFunc       func(ctx context.Context, actorID, groupID string) ([]*model.GroupMember, error)
}

func (m *mockMembershipService) Invite(ctx context.Context, actorID, groupID, email string, role model.Role) (*model.GroupMember, error) {
	if m.inviteFunc != nil {
		return m.inviteFunc(ctx, actorID, groupID, email, role)
	}
	return nil, nil
}
func (m *mockMembershipService) AcceptInvitation(ctx context.Context, userID, groupID string) error {
	if m.acceptInvitationFunc != nil {
		return m.acceptInvitationFunc(ctx, userID, groupID)
	}
	return nil
}
func (m *mockMembershipService) DeclineInvitation(ctx context.Context, userID, groupID string) error {
	if m.declineInvitationFunc != nil {
		return m.declineInvitationFunc(ctx, userID, groupID)
	}
	return nil
}
func (m *mockMembershipService) ChangeRole(ctx context.Context, actorID, targetID, groupID string, newRole model.Role) error {
	if m.changeRoleFunc != nil {
		return m.changeRoleFunc(ctx, actorID, targetID, groupID, newRole)
	}
	return nil
}
func (m *mockMembershipService) RemoveMember(ctx context.Context, actorID, targetID, groupID string) error {
	if m.removeMemberFunc != nil {
		return m.removeMemberFunc(ctx, actorID, targetID, groupID)
	}
	return nil
}
func (m *mockMembershipService) LeaveGroup(ctx context.Context, userID, groupID string) error {
	if m.leaveGroupFunc != nil {
		return m.leaveGroupFunc(ctx, userID, groupID)
	}
	return nil
}
func (m *mockMembershipService) IsMaintainer(ctx context.Context, userID, groupID string) (bool, error) {
	if m.isMaintainerFunc != nil {
		return m.isMaintainerFunc(ctx, userID, groupID)
	}
	return false, nil
}
func (m *mockMembershipService) IsAdmin(ctx context.Context, userID, groupID string) (bool, error) {
	if m.isAdminFunc != nil {
		return m.isAdminFunc(ctx, userID, groupID)
	}
	return false, nil
}
func (m *mockMembershipService) ListMembers(ctx context.Context, actorID, groupID string) ([]*model.GroupMember, error) {
	if m.listMembersFunc != nil {
		return m.listMembersFunc(ctx, actorID, groupID)
	}
	return nil, nil
}

var _ service.MembershipService = (*mockMembershipService)(nil)

// ---------------------------------------------------------------------------
// Mock GroupService
// ---------------------------------------------------------------------------

type mockGroupService struct {
	listMineFunc func(ctx context.Context, userID string) ([]*model.Group, error)
	getByIDFunc  func(ctx context.Context, actorID, groupID string) (*model.Group, error)
	createFunc   func(ctx context.Context, group *model.Group) (*model.Group, error)
	updateFunc   func(ctx context.Context, actorID string, group *model.Group) error
}

func (m *mockGroupService) ListMine(ctx context.Context, userID string) ([]*model.Group, error) {
	if m.listMineFunc != nil {
		return m.listMineFunc(ctx, userID)
	}
	return nil, nil
}
func (m *mockGroupService) GetByID(ctx context.Context, actorID, groupID string) (*model.Group, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, actorID, groupID)
	}
	return nil, service.ErrNotFound
}
func (m *mockGroupService) Create(ctx context.Context, group *model.Group) (*model.Group, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, group)
	}
	return group, nil
}
func (m *mockGroupService) Update(ctx context.Context, actorID string, group *model.Group) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, actorID, group)
	}
	return nil
}

var _ service.GroupService = (*mockGroupService)(nil)

// ---------------------------------------------------------------------------
// Mock NoteService
// ---------------------------------------------------------------------------

type mockNoteService struct {
	listPersonalFunc func(ctx context.Context, userID string) ([]*model.Note, error)
	createFunc       func(ctx context.Context, userID, content string) (*model.Note, error)
	markDoneFunc     func(ctx context.Context, userID, noteID string) error
	markTodoFunc     func(ctx context.Context, userID, noteID string) error
	deleteFunc       func(ctx context.Context, userID, noteID string) error
}

func (m *mockNoteService) ListPersonal(ctx context.Context, userID string) ([]*model.Note, error) {
	if m.listPersonalFunc != nil {
		return m.listPersonalFunc(ctx, userID)
	}
	return nil, nil
}
func (m *mockNoteService) Create(ctx context.Context, userID, content string) (*model.Note, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, content)
	}
	return nil, nil
}
func (m *mockNoteService) MarkDone(ctx context.Context, userID, noteID string) error {
	if m.markDoneFunc != nil {
		return m.markDoneFunc(ctx, userID, noteID)
	}
	return nil
}
func (m *mockNoteService) MarkTodo(ctx context.Context, userID, noteID string) error {
	if m.markTodoFunc != nil {
		return m.markTodoFunc(ctx, userID, noteID)
	}
	return nil
}
func (m *mockNoteService) Delete(ctx context.Context, userID, noteID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, noteID)
	}
	return nil
}

var _ service.NoteService = (*mockNoteService)(nil)

// ---------------------------------------------------------------------------
// Mock ChangelogService
// ---------------------------------------------------------------------------

type mockChangelogService struct {
	listFunc     func(ctx context.Context, ownerID string, page, pageSize int) (*model.ChangelogListResult, error)
	markReadFunc func(ctx context.Context, ownerID, id string) error
	deleteFunc   func(ctx context.Context, ownerID, id, groupID string) error
}

func (m *mockChangelogService) List(ctx context.Context, ownerID string, page, pageSize int) (*model.ChangelogListResult, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, page, pageSize)
	}
	return &model.ChangelogListResult{Changelogs: []*model.Changelog{}}, nil
}
func (m *mockChangelogService) MarkRead(ctx context.Context, ownerID, id string) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, ownerID, id)
	}
	return nil
}
func (m *mockChangelogService) Delete(ctx context.Context, ownerID, id, groupID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, id, groupID)
	}
	return nil
}

var _ service.ChangelogService = (*mockChangelogService)(nil)

// ---------------------------------------------------------------------------
// Mock CascadeService
// ---------------------------------------------------------------------------

type mockCascadeService struct {
	deleteUserFunc    func(ctx context.Context, userID string) error
	deleteGroupFunc   func(ctx context.Context, actorID, groupID string) error
	deleteProjectFunc func(ctx context.Context, actorID, projectID string) error
}

func (m *mockCascadeService) DeleteUser(ctx context.Context, userID string) error {
	if m.deleteUserFunc != nil {
		return m.deleteUserFunc(ctx, userID)
	}
	return nil
}
func (m *mockCascadeService) DeleteGroup(ctx context.Context, actorID, groupID string) error {
	if m.deleteGroupFunc != nil {
		return m.deleteGroupFunc(ctx, actorID, groupID)
	}
	return nil
}
func (m *mockCascadeService) DeleteProject(ctx context.Context, actorID, projectID string) error {
	if m.deleteProjectFunc != nil {
		return m.deleteProjectFunc(ctx, actorID, projectID)
	}
	return nil
}

var _ service.CascadeService = (*mockCascadeService)(nil)
