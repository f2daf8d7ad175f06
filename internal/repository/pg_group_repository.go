package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiplog/backend/internal/model"
)

// PgGroupRepository は GroupRepository の PostgreSQL 実装
type PgGroupRepository struct {
	pool *pgxpool.Pool
}

// NewPgGroupRepository は PgGroupRepository を生成する
func NewPgGroupRepository(pool *pgxpool.Pool) *PgGroupRepository {
	return &PgGroupRepository{pool: pool}
}

const groupColumns = `g.id, g.owner_id, g.name, g.description, g.created_at`

func scanGroup(row pgx.Row) (*model.Group, error) {
	var g model.Group
	err := row.Scan(&g.ID, &g.OwnerID, &g.Name, &g.Description, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GetByID は ID でグループを取得する
func (r *PgGroupRepository) GetByID(ctx context.Context, id string) (*model.Group, error) {
	g, err := scanGroup(r.pool.QueryRow(ctx,
		`SELECT `+groupColumns+` FROM groups g WHERE g.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *PgGroupRepository) list(ctx context.Context, query string, arg any) ([]*model.Group, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ListByUserID はユーザーが所属するグループ一覧を返す
func (r *PgGroupRepository) ListByUserID(ctx context.Context, userID string) ([]*model.Group, error) {
	return r.list(ctx,
		`SELECT `+groupColumns+` FROM groups g
		 JOIN group_members gm ON gm.group_id = g.id
		 WHERE gm.user_id = $1
		 ORDER BY g.created_at DESC`, userID)
}

// ListByOwnerID はユーザーが作成したグループ一覧を返す
func (r *PgGroupRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*model.Group, error) {
	return r.list(ctx,
		`SELECT `+groupColumns+` FROM groups g
		 WHERE g.owner_id = $1
		 ORDER BY g.created_at DESC`, ownerID)
}

// Create はグループと作成者の ADMIN メンバー行を単一トランザクションで作成する
func (r *PgGroupRepository) Create(ctx context.Context, group *model.Group) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx,
		`INSERT INTO groups (owner_id, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		group.OwnerID, group.Name, group.Description,
	).Scan(&group.ID, &group.CreatedAt); err != nil {
		return err
	}

	// グループは常に JOINED の ADMIN を 1 人以上持つ。作成者がその最初の 1 人。
	if _, err := tx.Exec(ctx,
		`INSERT INTO group_members (user_id, group_id, role, invitation_status)
		 VALUES ($1, $2, $3, $4)`,
		group.OwnerID, group.ID, model.RoleAdmin, model.InvitationJoined,
	); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update は name, description を更新する
func (r *PgGroupRepository) Update(ctx context.Context, group *model.Group) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE groups SET name = $1, description = $2 WHERE id = $3`,
		group.Name, group.Description, group.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
