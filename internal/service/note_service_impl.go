package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
)

// NoteServiceImpl は NoteService の実装
type NoteServiceImpl struct {
	noteRepo repository.NoteRepository
}

// NewNoteService は NoteServiceImpl を生成する
func NewNoteService(noteRepo repository.NoteRepository) NoteService {
	return &NoteServiceImpl{noteRepo: noteRepo}
}

// ListPersonal は自分の個人ノート一覧を返す
func (s *NoteServiceImpl) ListPersonal(ctx context.Context, userID string) ([]*model.Note, error) {
	return s.noteRepo.ListPersonal(ctx, userID)
}

// Create は個人ノートを作成する
func (s *NoteServiceImpl) Create(ctx context.Context, userID, content string) (*model.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidInput
	}
	note := &model.Note{
		AuthorID: &userID,
		Content:  content,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ownPersonal は userID 自身の個人ノートであることを検査する
func (s *NoteServiceImpl) ownPersonal(ctx context.Context, userID, noteID string) (*model.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !note.IsPersonal() || note.AuthorID == nil || *note.AuthorID != userID {
		return nil, ErrNotFound
	}
	return note, nil
}

// MarkDone は done フラグを立てる
func (s *NoteServiceImpl) MarkDone(ctx context.Context, userID, noteID string) error {
	if _, err := s.ownPersonal(ctx, userID, noteID); err != nil {
		return err
	}
	return s.noteRepo.SetDone(ctx, noteID, userID)
}

// MarkTodo は done フラグを下ろす
func (s *NoteServiceImpl) MarkTodo(ctx context.Context, userID, noteID string) error {
	if _, err := s.ownPersonal(ctx, userID, noteID); err != nil {
		return err
	}
	return s.noteRepo.SetTodo(ctx, noteID)
}

// Delete は個人ノートを削除する
func (s *NoteServiceImpl) Delete(ctx context.Context, userID, noteID string) error {
	if _, err := s.ownPersonal(ctx, userID, noteID); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, noteID)
}
