package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiplog/backend/internal/model"
)

// PgNoteRepository は NoteRepository の PostgreSQL 実装
type PgNoteRepository struct {
	pool *pgxpool.Pool
}

// NewPgNoteRepository は PgNoteRepository を生成する
func NewPgNoteRepository(pool *pgxpool.Pool) *PgNoteRepository {
	return &PgNoteRepository{pool: pool}
}

const noteColumns = `id, author_id, update_id, content, done, done_by, done_at, created_at`

func scanNote(row pgx.Row) (*model.Note, error) {
	var n model.Note
	err := row.Scan(
		&n.ID, &n.AuthorID, &n.UpdateID, &n.Content,
		&n.Done, &n.DoneBy, &n.DoneAt, &n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByID は ID でノートを取得する
func (r *PgNoteRepository) GetByID(ctx context.Context, id string) (*model.Note, error) {
	n, err := scanNote(r.pool.QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *PgNoteRepository) list(ctx context.Context, query string, arg any) ([]*model.Note, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// ListByUpdateID はアップデートのチェンジノート一覧を返す
func (r *PgNoteRepository) ListByUpdateID(ctx context.Context, updateID string) ([]*model.Note, error) {
	return r.list(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE update_id = $1
		 ORDER BY created_at, id`, updateID)
}

// ListPersonal はユーザーの個人ノート一覧を返す
func (r *PgNoteRepository) ListPersonal(ctx context.Context, authorID string) ([]*model.Note, error) {
	return r.list(ctx,
		`SELECT `+noteColumns+` FROM notes
		 WHERE author_id = $1 AND update_id IS NULL
		 ORDER BY created_at DESC`, authorID)
}

// Create は新しいノートを作成する
func (r *PgNoteRepository) Create(ctx context.Context, note *model.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO notes (id, author_id, update_id, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		note.ID, note.AuthorID, note.UpdateID, note.Content,
	).Scan(&note.CreatedAt)
}

func (r *PgNoteRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDone は done フラグを立てる
func (r *PgNoteRepository) SetDone(ctx context.Context, id, userID string) error {
	return r.exec(ctx,
		`UPDATE notes SET done = true, done_by = $1, done_at = NOW() WHERE id = $2`,
		userID, id)
}

// SetTodo は done フラグを下ろす
func (r *PgNoteRepository) SetTodo(ctx context.Context, id string) error {
	return r.exec(ctx,
		`UPDATE notes SET done = false, done_by = NULL, done_at = NULL WHERE id = $1`, id)
}

// Move はチェンジノートを別のアップデートに付け替える
func (r *PgNoteRepository) Move(ctx context.Context, id, destUpdateID string) error {
	return r.exec(ctx,
		`UPDATE notes SET update_id = $1 WHERE id = $2`, destUpdateID, id)
}

// Delete はノートを削除する
func (r *PgNoteRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
}
