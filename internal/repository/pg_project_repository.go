package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiplog/backend/internal/model"
)

// PgProjectRepository は ProjectRepository の PostgreSQL 実装
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository は PgProjectRepository を生成する
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

const projectColumns = `p.id, p.owner_id, p.name, p.description, p.version, p.repository_url, p.created_at, p.updated_at`

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Version,
		&p.RepositoryURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID は ID でプロジェクトを取得する
func (r *PgProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects p WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PgProjectRepository) list(ctx context.Context, query string, args ...any) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListByOwnerID はユーザーが所有するプロジェクト一覧を返す
func (r *PgProjectRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*model.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects p
		 WHERE p.owner_id = $1
		 ORDER BY p.created_at DESC`, ownerID)
}

// ListVisibleTo は所有プロジェクトと、JOINED で所属しているグループに
// 紐づくプロジェクトを重複なく返す
func (r *PgProjectRepository) ListVisibleTo(ctx context.Context, userID string) ([]*model.Project, error) {
	return r.list(ctx,
		`SELECT DISTINCT `+projectColumns+` FROM projects p
		 LEFT JOIN project_groups pg ON pg.project_id = p.id
		 LEFT JOIN group_members gm
		        ON gm.group_id = pg.group_id
		       AND gm.user_id = $1
		       AND gm.invitation_status = 'JOINED'
		 WHERE p.owner_id = $1 OR gm.user_id IS NOT NULL
		 ORDER BY p.created_at DESC`, userID)
}

// ListByGroupID はグループに紐づくプロジェクト一覧を返す
func (r *PgProjectRepository) ListByGroupID(ctx context.Context, groupID string) ([]*model.Project, error) {
	return r.list(ctx,
		`SELECT `+projectColumns+` FROM projects p
		 JOIN project_groups pg ON pg.project_id = p.id
		 WHERE pg.group_id = $1
		 ORDER BY p.created_at DESC`, groupID)
}

// Create は新しいプロジェクトを作成する。version は空文字で始まる。
func (r *PgProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO projects (owner_id, name, description, version, repository_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		project.OwnerID, project.Name, project.Description, project.Version, project.RepositoryURL,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

// Update は name, description, repository_url, updated_at を更新する
func (r *PgProjectRepository) Update(ctx context.Context, project *model.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects
		 SET name = $1, description = $2, repository_url = $3, updated_at = NOW()
		 WHERE id = $4`,
		project.Name, project.Description, project.RepositoryURL, project.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
