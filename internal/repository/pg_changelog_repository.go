package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiplog/backend/internal/model"
)

// PgChangelogRepository は ChangelogRepository の PostgreSQL 実装
type PgChangelogRepository struct {
	pool *pgxpool.Pool
}

// NewPgChangelogRepository は PgChangelogRepository を生成する
func NewPgChangelogRepository(pool *pgxpool.Pool) *PgChangelogRepository {
	return &PgChangelogRepository{pool: pool}
}

// insertChangelogs はトランザクション内でチェンジログをまとめて挿入する。
// 各種 Pg リポジトリが状態遷移と同一トランザクションでファンアウトするための共通ヘルパ。
func insertChangelogs(ctx context.Context, tx pgx.Tx, logs []*model.Changelog) error {
	for _, l := range logs {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		if err := tx.QueryRow(ctx,
			`INSERT INTO changelogs (id, owner_id, event, extra_content, read, project_id, group_id)
			 VALUES ($1, $2, $3, $4, false, $5, $6)
			 RETURNING created_at`,
			l.ID, l.OwnerID, l.Event, l.ExtraContent, l.ProjectID, l.GroupID,
		).Scan(&l.CreatedAt); err != nil {
			return fmt.Errorf("%w: %v", ErrFanout, err)
		}
	}
	return nil
}

// CreateBatch は 1 イベント分のチェンジログを単一トランザクションで挿入する
func (r *PgChangelogRepository) CreateBatch(ctx context.Context, logs []*model.Changelog) error {
	if len(logs) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListByOwnerID は created_at 降順でチェンジログ一覧を返す
func (r *PgChangelogRepository) ListByOwnerID(ctx context.Context, ownerID string, limit, offset int) ([]*model.Changelog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, event, extra_content, read, project_id, group_id, created_at
		 FROM changelogs
		 WHERE owner_id = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*model.Changelog
	for rows.Next() {
		var l model.Changelog
		if err := rows.Scan(
			&l.ID, &l.OwnerID, &l.Event, &l.ExtraContent, &l.Read,
			&l.ProjectID, &l.GroupID, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

// CountUnread は未読チェンジログの件数を返す
func (r *PgChangelogRepository) CountUnread(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM changelogs WHERE owner_id = $1 AND read = false`,
		ownerID,
	).Scan(&n)
	return n, err
}

// GetByID は owner 所有のチェンジログを取得する
func (r *PgChangelogRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Changelog, error) {
	var l model.Changelog
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, event, extra_content, read, project_id, group_id, created_at
		 FROM changelogs
		 WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&l.ID, &l.OwnerID, &l.Event, &l.ExtraContent, &l.Read,
		&l.ProjectID, &l.GroupID, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// MarkRead は既読フラグを立てる（冪等）
func (r *PgChangelogRepository) MarkRead(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE changelogs SET read = true WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete は owner 所有のチェンジログを削除する
func (r *PgChangelogRepository) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM changelogs WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
