package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiplog/backend/internal/model"
)

// PgAssociationRepository は AssociationRepository の PostgreSQL 実装
type PgAssociationRepository struct {
	pool *pgxpool.Pool
}

// NewPgAssociationRepository は PgAssociationRepository を生成する
func NewPgAssociationRepository(pool *pgxpool.Pool) *PgAssociationRepository {
	return &PgAssociationRepository{pool: pool}
}

// GroupsOf はプロジェクトに紐づくグループ ID の集合を返す
func (r *PgAssociationRepository) GroupsOf(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT group_id FROM project_groups WHERE project_id = $1`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// IsVisibleTo はユーザーがプロジェクトを閲覧可能かを返す
func (r *PgAssociationRepository) IsVisibleTo(ctx context.Context, userID, projectID string) (bool, error) {
	var visible bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		    SELECT 1 FROM projects WHERE id = $2 AND owner_id = $1
		 ) OR EXISTS (
		    SELECT 1 FROM project_groups pg
		    JOIN group_members gm ON gm.group_id = pg.group_id
		    WHERE pg.project_id = $2
		      AND gm.user_id = $1
		      AND gm.invitation_status = 'JOINED'
		 )`,
		userID, projectID,
	).Scan(&visible)
	return visible, err
}

// Replace は目標集合との対称差分の計算から適用・チェンジログ挿入までを
// 単一トランザクションで行う。プロジェクト行のロックを先に取るため、
// 現状の読み取りと差分計算も同一プロジェクトへの並行編集と直列化される。
func (r *PgAssociationRepository) Replace(ctx context.Context, projectID string, target []string,
	buildLogs func(toAdd, toRemove []string) ([]*model.Changelog, error)) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var locked string
	if err := tx.QueryRow(ctx,
		`SELECT id FROM projects WHERE id = $1 FOR UPDATE`, projectID,
	).Scan(&locked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	// 現状はロック取得後に読む。先行トランザクションの適用結果が見える。
	rows, err := tx.Query(ctx,
		`SELECT group_id FROM project_groups WHERE project_id = $1`, projectID)
	if err != nil {
		return err
	}
	var current []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current = append(current, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	toAdd, toRemove := SymmetricDiff(current, target)
	if len(toAdd) == 0 && len(toRemove) == 0 {
		return nil
	}

	logs, err := buildLogs(toAdd, toRemove)
	if err != nil {
		return err
	}

	for _, groupID := range toAdd {
		if _, err := tx.Exec(ctx,
			`INSERT INTO project_groups (project_id, group_id) VALUES ($1, $2)`,
			projectID, groupID,
		); err != nil {
			return err
		}
	}
	if len(toRemove) > 0 {
		if _, err := tx.Exec(ctx,
			`DELETE FROM project_groups WHERE project_id = $1 AND group_id = ANY($2)`,
			projectID, toRemove,
		); err != nil {
			return err
		}
	}

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
