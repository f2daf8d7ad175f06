package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiplog/backend/internal/model"
)

// PgUpdateRepository は UpdateRepository の PostgreSQL 実装
type PgUpdateRepository struct {
	pool *pgxpool.Pool
}

// NewPgUpdateRepository は PgUpdateRepository を生成する
func NewPgUpdateRepository(pool *pgxpool.Pool) *PgUpdateRepository {
	return &PgUpdateRepository{pool: pool}
}

const updateColumns = `id, project_id, target_version, status,
	created_by, created_at, started_by, started_at, published_by, published_at`

func scanUpdate(row pgx.Row) (*model.Update, error) {
	var u model.Update
	err := row.Scan(
		&u.ID, &u.ProjectID, &u.TargetVersion, &u.Status,
		&u.CreatedBy, &u.CreatedAt, &u.StartedBy, &u.StartedAt, &u.PublishedBy, &u.PublishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID は ID でアップデートを取得する
func (r *PgUpdateRepository) GetByID(ctx context.Context, id string) (*model.Update, error) {
	u, err := scanUpdate(r.pool.QueryRow(ctx,
		`SELECT `+updateColumns+` FROM updates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// ListByProjectID はプロジェクトのアップデート一覧を返す
func (r *PgUpdateRepository) ListByProjectID(ctx context.Context, projectID string) ([]*model.Update, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+updateColumns+` FROM updates
		 WHERE project_id = $1
		 ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []*model.Update
	for rows.Next() {
		u, err := scanUpdate(rows)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

// CreateWithNotes はアップデート・初期ノート・チェンジログを単一トランザクションで作成する
func (r *PgUpdateRepository) CreateWithNotes(ctx context.Context, update *model.Update, notes []*model.Note, logs []*model.Changelog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO updates (project_id, target_version, status, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		update.ProjectID, update.TargetVersion, model.UpdateScheduled, update.CreatedBy,
	).Scan(&update.ID, &update.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	update.Status = model.UpdateScheduled

	for _, n := range notes {
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		n.UpdateID = &update.ID
		if err := tx.QueryRow(ctx,
			`INSERT INTO notes (id, author_id, update_id, content)
			 VALUES ($1, $2, $3, $4)
			 RETURNING created_at`,
			n.ID, n.AuthorID, n.UpdateID, n.Content,
		).Scan(&n.CreatedAt); err != nil {
			return err
		}
	}

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// lockStatus はアップデート行をロックして現在の状態を返す
func lockStatus(ctx context.Context, tx pgx.Tx, id string) (model.UpdateStatus, error) {
	var status model.UpdateStatus
	err := tx.QueryRow(ctx,
		`SELECT status FROM updates WHERE id = $1 FOR UPDATE`, id,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return status, err
}

// Start は SCHEDULED → IN_DEVELOPMENT の遷移を行う
func (r *PgUpdateRepository) Start(ctx context.Context, id, userID string, logs []*model.Changelog) (*model.Update, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	status, err := lockStatus(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !status.CanStart() {
		return nil, ErrInvalidState
	}

	u, err := scanUpdate(tx.QueryRow(ctx,
		`UPDATE updates
		 SET status = $1, started_by = $2, started_at = NOW()
		 WHERE id = $3
		 RETURNING `+updateColumns, model.UpdateInDevelopment, userID, id))
	if err != nil {
		return nil, err
	}

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

// Publish は IN_DEVELOPMENT → PUBLISHED の遷移を行い、親プロジェクトの version を上書きする
func (r *PgUpdateRepository) Publish(ctx context.Context, id, userID, version string, logs []*model.Changelog) (*model.Update, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	status, err := lockStatus(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !status.CanPublish() {
		return nil, ErrInvalidState
	}

	u, err := scanUpdate(tx.QueryRow(ctx,
		`UPDATE updates
		 SET status = $1, published_by = $2, published_at = NOW()
		 WHERE id = $3
		 RETURNING `+updateColumns, model.UpdatePublished, userID, id))
	if err != nil {
		return nil, err
	}

	// アップデート公開はプロジェクトの version を書き換える唯一の経路
	if _, err := tx.Exec(ctx,
		`UPDATE projects SET version = $1, updated_at = NOW() WHERE id = $2`,
		version, u.ProjectID,
	); err != nil {
		return nil, err
	}

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete はアップデートを削除する（notes は FK で連鎖削除）
func (r *PgUpdateRepository) Delete(ctx context.Context, id string, logs []*model.Changelog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM updates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
