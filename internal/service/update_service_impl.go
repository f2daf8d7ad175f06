package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
	"github.com/shiplog/backend/pkg/metrics"
)

// UpdateServiceImpl は UpdateService の実装
type UpdateServiceImpl struct {
	updateRepo  repository.UpdateRepository
	noteRepo    repository.NoteRepository
	projectRepo repository.ProjectRepository
	assocRepo   repository.AssociationRepository
	memberRepo  repository.MemberRepository
}

// NewUpdateService は UpdateServiceImpl を生成する
func NewUpdateService(
	updateRepo repository.UpdateRepository,
	noteRepo repository.NoteRepository,
	projectRepo repository.ProjectRepository,
	assocRepo repository.AssociationRepository,
	memberRepo repository.MemberRepository,
) UpdateService {
	return &UpdateServiceImpl{
		updateRepo:  updateRepo,
		noteRepo:    noteRepo,
		projectRepo: projectRepo,
		assocRepo:   assocRepo,
		memberRepo:  memberRepo,
	}
}

func (s *UpdateServiceImpl) getProject(ctx context.Context, projectID string) (*model.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// canMaintain はアップデートのライフサイクル操作の権限検査。
// プロジェクト所有者か、紐づくグループいずれかの JOINED な MAINTAINER 以上。
func (s *UpdateServiceImpl) canMaintain(ctx context.Context, userID string, project *model.Project) (bool, error) {
	if project.OwnerID == userID {
		return true, nil
	}
	groups, err := s.assocRepo.GroupsOf(ctx, project.ID)
	if err != nil {
		return false, err
	}
	for _, groupID := range groups {
		m, err := s.memberRepo.Get(ctx, groupID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return false, err
		}
		if m.Joined() && m.Role.AtLeast(model.RoleMaintainer) {
			return true, nil
		}
	}
	return false, nil
}

func (s *UpdateServiceImpl) canView(ctx context.Context, userID, projectID string) error {
	visible, err := s.assocRepo.IsVisibleTo(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if !visible {
		return ErrNotFound
	}
	return nil
}

// fanoutLogs はアップデートイベントのチェンジログ行を構築する。
// 紐づくグループが無いプロジェクトでは nil（発行なし）。
// 受信者は所有者とグループの JOINED メンバーで、重複排除される。
func (s *UpdateServiceImpl) fanoutLogs(ctx context.Context, event model.ChangelogEvent, project *model.Project, targetVersion string) ([]*model.Changelog, error) {
	groups, err := s.assocRepo.GroupsOf(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	members, err := s.memberRepo.ListJoinedUserIDs(ctx, groups)
	if err != nil {
		return nil, err
	}
	recipients := append([]string{project.OwnerID}, members...)
	return updateEventLogs(event, project.ID, targetVersion, recipients), nil
}

// ListByProjectID はプロジェクトのアップデート一覧を返す
func (s *UpdateServiceImpl) ListByProjectID(ctx context.Context, actorID, projectID string) ([]*model.Update, error) {
	if err := s.canView(ctx, actorID, projectID); err != nil {
		return nil, err
	}
	return s.updateRepo.ListByProjectID(ctx, projectID)
}

func (s *UpdateServiceImpl) getVisibleUpdate(ctx context.Context, actorID, updateID string) (*model.Update, error) {
	update, err := s.updateRepo.GetByID(ctx, updateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.canView(ctx, actorID, update.ProjectID); err != nil {
		return nil, err
	}
	return update, nil
}

// GetByID はアップデートをチェンジノート付きで取得する
func (s *UpdateServiceImpl) GetByID(ctx context.Context, actorID, updateID string) (*model.Update, error) {
	update, err := s.getVisibleUpdate(ctx, actorID, updateID)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.ListByUpdateID(ctx, updateID)
	if err != nil {
		return nil, err
	}
	update.Notes = notes
	return update, nil
}

// Schedule は新しいアップデートを作成する
func (s *UpdateServiceImpl) Schedule(ctx context.Context, actorID, projectID, targetVersion string, noteContents []string) (*model.Update, error) {
	targetVersion = strings.TrimSpace(targetVersion)
	if targetVersion == "" {
		return nil, ErrInvalidInput
	}

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ok, err := s.canMaintain(ctx, actorID, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAuthorized
	}

	update := &model.Update{
		ProjectID:     projectID,
		TargetVersion: targetVersion,
		CreatedBy:     &actorID,
	}
	var notes []*model.Note
	for _, content := range noteContents {
		if strings.TrimSpace(content) == "" {
			continue
		}
		author := actorID
		notes = append(notes, &model.Note{AuthorID: &author, Content: content})
	}

	logs, err := s.fanoutLogs(ctx, model.EventUpdateScheduled, project, targetVersion)
	if err != nil {
		return nil, err
	}

	if err := s.updateRepo.CreateWithNotes(ctx, update, notes, logs); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateVersion
		}
		if errors.Is(err, repository.ErrFanout) {
			return nil, ErrPartialFanout
		}
		return nil, err
	}
	metrics.IncrementFanout(string(model.EventUpdateScheduled), len(logs))
	update.Notes = notes
	return update, nil
}

// transition は Start / Publish 共通の権限検査とエラー変換を行う
func (s *UpdateServiceImpl) transition(
	ctx context.Context, actorID, updateID string,
	event model.ChangelogEvent,
	apply func(logs []*model.Changelog) (*model.Update, error),
) (*model.Update, error) {
	update, err := s.updateRepo.GetByID(ctx, updateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	project, err := s.getProject(ctx, update.ProjectID)
	if err != nil {
		return nil, err
	}
	ok, err := s.canMaintain(ctx, actorID, project)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAuthorized
	}

	logs, err := s.fanoutLogs(ctx, event, project, update.TargetVersion)
	if err != nil {
		return nil, err
	}

	applied, err := apply(logs)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrNotFound
	case errors.Is(err, repository.ErrInvalidState):
		return nil, ErrInvalidTransition
	case errors.Is(err, repository.ErrFanout):
		return nil, ErrPartialFanout
	case err != nil:
		return nil, err
	}
	metrics.IncrementFanout(string(event), len(logs))
	return applied, nil
}

// Start は SCHEDULED → IN_DEVELOPMENT の遷移を行う
func (s *UpdateServiceImpl) Start(ctx context.Context, actorID, updateID string) (*model.Update, error) {
	return s.transition(ctx, actorID, updateID, model.EventUpdateStarted,
		func(logs []*model.Changelog) (*model.Update, error) {
			return s.updateRepo.Start(ctx, updateID, actorID, logs)
		})
}

// Publish は IN_DEVELOPMENT → PUBLISHED の遷移を行う
func (s *UpdateServiceImpl) Publish(ctx context.Context, actorID, updateID, publishedVersion string) (*model.Update, error) {
	return s.transition(ctx, actorID, updateID, model.EventUpdatePublished,
		func(logs []*model.Changelog) (*model.Update, error) {
			u, err := s.updateRepo.GetByID(ctx, updateID)
			if err != nil {
				return nil, err
			}
			version := strings.TrimSpace(publishedVersion)
			if version == "" {
				version = u.TargetVersion
			}
			return s.updateRepo.Publish(ctx, updateID, actorID, version, logs)
		})
}

// Delete はアップデートを削除する。公開済みでもプロジェクトの version は戻さない。
func (s *UpdateServiceImpl) Delete(ctx context.Context, actorID, updateID string) error {
	update, err := s.updateRepo.GetByID(ctx, updateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	project, err := s.getProject(ctx, update.ProjectID)
	if err != nil {
		return err
	}
	ok, err := s.canMaintain(ctx, actorID, project)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAuthorized
	}

	logs, err := s.fanoutLogs(ctx, model.EventUpdateDeleted, project, update.TargetVersion)
	if err != nil {
		return err
	}

	err = s.updateRepo.Delete(ctx, updateID, logs)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrFanout):
		return ErrPartialFanout
	case err != nil:
		return err
	}
	metrics.IncrementFanout(string(model.EventUpdateDeleted), len(logs))
	return nil
}

// noteOnUpdate は updateID に属するノートを閲覧権限検査付きで取得する
func (s *UpdateServiceImpl) noteOnUpdate(ctx context.Context, actorID, updateID, noteID string) (*model.Note, error) {
	if _, err := s.getVisibleUpdate(ctx, actorID, updateID); err != nil {
		return nil, err
	}
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if note.UpdateID == nil || *note.UpdateID != updateID {
		return nil, ErrNotFound
	}
	return note, nil
}

// AddNote はチェンジノートを追加する
func (s *UpdateServiceImpl) AddNote(ctx context.Context, actorID, updateID, content string) (*model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.getVisibleUpdate(ctx, actorID, updateID); err != nil {
		return nil, err
	}
	note := &model.Note{
		AuthorID: &actorID,
		UpdateID: &updateID,
		Content:  content,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// MarkNoteDone はチェンジノートに done フラグを立てる
func (s *UpdateServiceImpl) MarkNoteDone(ctx context.Context, actorID, updateID, noteID string) error {
	if _, err := s.noteOnUpdate(ctx, actorID, updateID, noteID); err != nil {
		return err
	}
	return s.noteRepo.SetDone(ctx, noteID, actorID)
}

// MarkNoteTodo は done フラグを下ろし、done_by / done_at をクリアする
func (s *UpdateServiceImpl) MarkNoteTodo(ctx context.Context, actorID, updateID, noteID string) error {
	if _, err := s.noteOnUpdate(ctx, actorID, updateID, noteID); err != nil {
		return err
	}
	return s.noteRepo.SetTodo(ctx, noteID)
}

// MoveNote はチェンジノートを同一プロジェクト内の別アップデートへ移す。
// ノートが updateID に属していなければ ErrNotFound。created_at は変更しない。
func (s *UpdateServiceImpl) MoveNote(ctx context.Context, actorID, updateID, noteID, destUpdateID string) error {
	src, err := s.getVisibleUpdate(ctx, actorID, updateID)
	if err != nil {
		return err
	}
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if note.UpdateID == nil || *note.UpdateID != updateID {
		return ErrNotFound
	}
	dest, err := s.updateRepo.GetByID(ctx, destUpdateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if dest.ProjectID != src.ProjectID {
		return ErrCrossProjectMove
	}
	// 公開済みアップデートのチェックリストは確定している
	if src.Status == model.UpdatePublished || dest.Status == model.UpdatePublished {
		return ErrInvalidTransition
	}
	return s.noteRepo.Move(ctx, noteID, destUpdateID)
}

// DeleteNote はチェンジノートを削除する
func (s *UpdateServiceImpl) DeleteNote(ctx context.Context, actorID, updateID, noteID string) error {
	if _, err := s.noteOnUpdate(ctx, actorID, updateID, noteID); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, noteID)
}
