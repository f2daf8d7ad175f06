package service

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// ---------------------------------------------------------------------------
// mockUserRepository — UserRepository のモック
// ---------------------------------------------------------------------------

type mockUserRepository struct {
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	createFunc      func(ctx context.Context, user *model.User) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockProjectRepository — ProjectRepository のモック
// ---------------------------------------------------------------------------

type mockProjectRepository struct {
	getFunc           func(ctx context.Context, id string) (*model.Project, error)
	listByOwnerFunc   func(ctx context.Context, ownerID string) ([]*model.Project, error)
	listVisibleFunc   func(ctx context.Context, userID string) ([]*model.Project, error)
	listByGroupFunc   func(ctx context.Context, groupID string) ([]*model.Project, error)
	createFunc        func(ctx context.Context, project *model.Project) error
	updateFunc        func(ctx context.Context, project *model.Project) error
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockProjectRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*model.Project, error) {
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockProjectRepository) ListVisibleTo(ctx context.Context, userID string) ([]*model.Project, error) {
	if m.listVisibleFunc != nil {
		return m.listVisibleFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockProjectRepository) ListByGroupID(ctx context.Context, groupID string) ([]*model.Project, error) {
	if m.listByGroupFunc != nil {
		return m.listByGroupFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *mockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, project)
	}
	return nil
}

func (m *mockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, project)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockUpdateRepository — UpdateRepository のモック
// ---------------------------------------------------------------------------

type mockUpdateRepository struct {
	getFunc             func(ctx context.Context, id string) (*model.Update, error)
	listByProjectFunc   func(ctx context.Context, projectID string) ([]*model.Update, error)
	createWithNotesFunc func(ctx context.Context, update *model.Update, notes []*model.Note, logs []*model.Changelog) error
	startFunc           func(ctx context.Context, id, userID string, logs []*model.Changelog) (*model.Update, error)
	publishFunc         func(ctx context.Context, id, userID, version string, logs []*model.Changelog) (*model.Update, error)
	deleteFunc          func(ctx context.Context, id string, logs []*model.Changelog) error
}

func (m *mockUpdateRepository) GetByID(ctx context.Context, id string) (*model.Update, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUpdateRepository) ListByProjectID(ctx context.Context, projectID string) ([]*model.Update, error) {
	if m.listByProjectFunc != nil {
		return m.listByProjectFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockUpdateRepository) CreateWithNotes(ctx context.Context, update *model.Update, notes []*model.Note, logs []*model.Changelog) error {
	if m.createWithNotesFunc != nil {
		return m.createWithNotesFunc(ctx, update, notes, logs)
	}
	return nil
}

func (m *mockUpdateRepository) Start(ctx context.Context, id, userID string, logs []*model.Changelog) (*model.Update, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx, id, userID, logs)
	}
	return nil, nil
}

func (m *mockUpdateRepository) Publish(ctx context.Context, id, userID, version string, logs []*model.Changelog) (*model.Update, error) {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, id, userID, version, logs)
	}
	return nil, nil
}

func (m *mockUpdateRepository) Delete(ctx context.Context, id string, logs []*model.Changelog) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, logs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockNoteRepository — NoteRepository のモック
// ---------------------------------------------------------------------------

type mockNoteRepository struct {
	getFunc          func(ctx context.Context, id string) (*model.Note, error)
	listByUpdateFunc func(ctx context.Context, updateID string) ([]*model.Note, error)
	listPersonalFunc func(ctx context.Context, authorID string) ([]*model.Note, error)
	createFunc       func(ctx context.Context, note *model.Note) error
	setDoneFunc      func(ctx context.Context, id, userID string) error
	setTodoFunc      func(ctx context.Context, id string) error
	moveFunc         func(ctx context.Context, id, destUpdateID string) error
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockNoteRepository) GetByID(ctx context.Context, id string) (*model.Note, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockNoteRepository) ListByUpdateID(ctx context.Context, updateID string) ([]*model.Note, error) {
	if m.listByUpdateFunc != nil {
		return m.listByUpdateFunc(ctx, updateID)
	}
	return nil, nil
}

func (m *mockNoteRepository) ListPersonal(ctx context.Context, authorID string) ([]*model.Note, error) {
	if m.listPersonalFunc != nil {
		return m.listPersonalFunc(ctx, authorID)
	}
	return nil, nil
}

func (m *mockNoteRepository) Create(ctx context.Context, note *model.Note) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, note)
	}
	return nil
}

func (m *mockNoteRepository) SetDone(ctx context.Context, id, userID string) error {
	if m.setDoneFunc != nil {
		return m.setDoneFunc(ctx, id, userID)
	}
	return nil
}

func (m *mockNoteRepository) SetTodo(ctx context.Context, id string) error {
	if m.setTodoFunc != nil {
		return m.setTodoFunc(ctx, id)
	}
	return nil
}

func (m *mockNoteRepository) Move(ctx context.Context, id, destUpdateID string) error {
	if m.moveFunc != nil {
		return m.moveFunc(ctx, id, destUpdateID)
	}
	return nil
}

func (m *mockNoteRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockGroupRepository — GroupRepository のモック
// ---------------------------------------------------------------------------

type mockGroupRepository struct {
	getFunc         func(ctx context.Context, id string) (*model.Group, error)
	listByUserFunc  func(ctx context.Context, userID string) ([]*model.Group, error)
	listByOwnerFunc func(ctx context.Context, ownerID string) ([]*model.Group, error)
	createFunc      func(ctx context.Context, group *model.Group) error
	updateFunc      func(ctx context.Context, group *model.Group) error
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id string) (*model.Group, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockGroupRepository) ListByUserID(ctx context.Context, userID string) ([]*model.Group, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockGroupRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*model.Group, error) {
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockGroupRepository) Create(ctx context.Context, group *model.Group) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, group)
	}
	return nil
}

func (m *mockGroupRepository) Update(ctx context.Context, group *model.Group) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, group)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockMemberRepository — MemberRepository のモック
// ---------------------------------------------------------------------------

type mockMemberRepository struct {
	getFunc               func(ctx context.Context, groupID, userID string) (*model.GroupMember, error)
	listByGroupFunc       func(ctx context.Context, groupID string) ([]*model.GroupMember, error)
	listJoinedUserIDsFunc func(ctx context.Context, groupIDs []string) ([]string, error)
	inviteFunc            func(ctx context.Context, member *model.GroupMember, logs []*model.Changelog) error
	acceptFunc            func(ctx context.Context, groupID, userID string, logs []*model.Changelog) error
	declineFunc           func(ctx context.Context, groupID, userID string) error
	changeRoleFunc        func(ctx context.Context, groupID, userID string, role model.Role, logs []*model.Changelog) error
	removeFunc            func(ctx context.Context, groupID, userID string, logs []*model.Changelog) error
}

func (m *mockMemberRepository) Get(ctx context.Context, groupID, userID string) (*model.GroupMember, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, groupID, userID)
	}
	return nil, nil
}

func (m *mockMemberRepository) ListByGroupID(ctx context.Context, groupID string) ([]*model.GroupMember, error) {
	if m.listByGroupFunc != nil {
		return m.listByGroupFunc(ctx, groupID)
	}
	return nil, nil
}

func (m *mockMemberRepository) ListJoinedUserIDs(ctx context.Context, groupIDs []string) ([]string, error) {
	if m.listJoinedUserIDsFunc != nil {
		return m.listJoinedUserIDsFunc(ctx, groupIDs)
	}
	return nil, nil
}

func (m *mockMemberRepository) Invite(ctx context.Context, member *model.GroupMember, logs []*model.Changelog) error {
	if m.inviteFunc != nil {
		return m.inviteFunc(ctx, member, logs)
	}
	return nil
}

func (m *mockMemberRepository) Accept(ctx context.Context, groupID, userID string, logs []*model.Changelog) error {
	if m.acceptFunc != nil {
		return m.acceptFunc(ctx, groupID, userID, logs)
	}
	return nil
}

func (m *mockMemberRepository) Decline(ctx context.Context, groupID, userID string) error {
	if m.declineFunc != nil {
		return m.declineFunc(ctx, groupID, userID)
	}
	return nil
}

func (m *mockMemberRepository) ChangeRole(ctx context.Context, groupID, userID string, role model.Role, logs []*model.Changelog) error {
	if m.changeRoleFunc != nil {
		return m.changeRoleFunc(ctx, groupID, userID, role, logs)
	}
	return nil
}

func (m *mockMemberRepository) Remove(ctx context.Context, groupID, userID string, logs []*model.Changelog) error {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, groupID, userID, logs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockAssociationRepository — AssociationRepository のモック
// ---------------------------------------------------------------------------

type mockAssociationRepository struct {
	groupsOfFunc    func(ctx context.Context, projectID string) ([]string, error)
	isVisibleToFunc func(ctx context.Context, userID, projectID string) (bool, error)
	replaceFunc     func(ctx context.Context, projectID string, target []string, buildLogs func(toAdd, toRemove []string) ([]*model.Changelog, error)) error
}

func (m *mockAssociationRepository) GroupsOf(ctx context.Context, projectID string) ([]string, error) {
	if m.groupsOfFunc != nil {
		return m.groupsOfFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *mockAssociationRepository) IsVisibleTo(ctx context.Context, userID, projectID string) (bool, error) {
	if m.isVisibleToFunc != nil {
		return m.isVisibleToFunc(ctx, userID, projectID)
	}
	return true, nil
}

func (m *mockAssociationRepository) Replace(ctx context.Context, projectID string, target []string, buildLogs func(toAdd, toRemove []string) ([]*model.Changelog, error)) error {
	if m.replaceFunc != nil {
		return m.replaceFunc(ctx, projectID, target, buildLogs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockChangelogRepository — ChangelogRepository のモック
// ---------------------------------------------------------------------------

type mockChangelogRepository struct {
	createBatchFunc func(ctx context.Context, logs []*model.Changelog) error
	listFunc        func(ctx context.Context, ownerID string, limit, offset int) ([]*model.Changelog, error)
	countUnreadFunc func(ctx context.Context, ownerID string) (int, error)
	getFunc         func(ctx context.Context, ownerID, id string) (*model.Changelog, error)
	markReadFunc    func(ctx context.Context, ownerID, id string) error
	deleteFunc      func(ctx context.Context, ownerID, id string) error
}

func (m *mockChangelogRepository) CreateBatch(ctx context.Context, logs []*model.Changelog) error {
	if m.createBatchFunc != nil {
		return m.createBatchFunc(ctx, logs)
	}
	return nil
}

func (m *mockChangelogRepository) ListByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*model.Changelog, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, ownerID, limit, offset)
	}
	return nil, nil
}

func (m *mockChangelogRepository) CountUnread(ctx context.Context, ownerID string) (int, error) {
	if m.countUnreadFunc != nil {
		return m.countUnreadFunc(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockChangelogRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Changelog, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, ownerID, id)
	}
	return nil, nil
}

func (m *mockChangelogRepository) MarkRead(ctx context.Context, ownerID, id string) error {
	if m.markReadFunc != nil {
		return m.markReadFunc(ctx, ownerID, id)
	}
	return nil
}

func (m *mockChangelogRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// mockCascadeRepository — CascadeRepository のモック
// ---------------------------------------------------------------------------

type mockCascadeRepository struct {
	deleteUserFunc    func(ctx context.Context, userID string, logs []*model.Changelog) error
	deleteGroupFunc   func(ctx context.Context, groupID string, logs []*model.Changelog) error
	deleteProjectFunc func(ctx context.Context, projectID string) error
}

func (m *mockCascadeRepository) DeleteUser(ctx context.Context, userID string, logs []*model.Changelog) error {
	if m.deleteUserFunc != nil {
		return m.deleteUserFunc(ctx, userID, logs)
	}
	return nil
}

func (m *mockCascadeRepository) DeleteGroup(ctx context.Context, groupID string, logs []*model.Changelog) error {
	if m.deleteGroupFunc != nil {
		return m.deleteGroupFunc(ctx, groupID, logs)
	}
	return nil
}

func (m *mockCascadeRepository) DeleteProject(ctx context.Context, projectID string) error {
	if m.deleteProjectFunc != nil {
		return m.deleteProjectFunc(ctx, projectID)
	}
	return nil
}

// joined は JOINED のメンバー行を作るテストヘルパ
func joined(userID, groupID string, role model.Role) *model.GroupMember {
	return &model.GroupMember{
		UserID:           userID,
		GroupID:          groupID,
		Role:             role,
		InvitationStatus: model.InvitationJoined,
	}
}
