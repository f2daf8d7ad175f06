package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiplog/backend/internal/model"
)

// PgCascadeRepository は CascadeRepository の PostgreSQL 実装
type PgCascadeRepository struct {
	pool *pgxpool.Pool
}

// NewPgCascadeRepository は PgCascadeRepository を生成する
func NewPgCascadeRepository(pool *pgxpool.Pool) *PgCascadeRepository {
	return &PgCascadeRepository{pool: pool}
}

// DeleteUser はユーザー削除の決定的順序を単一トランザクションで実行する。
//
//  1. アップデートに紐づくノートの author / done_by 参照を NULL にする
//     （グループの履歴は作成者削除後も残す）
//  2. 個人ノートを削除する
//  3. アップデートの started_by / published_by / created_by 参照を NULL にする
//  4. 所有プロジェクトを削除する（アップデート・ノート・チェンジログが連鎖）
//  5. 所有グループを削除する（メンバー・チェンジログが連鎖）
//  6. 本人のメンバー行と受信チェンジログを削除する
//  7. ユーザー本体を削除する
func (r *PgCascadeRepository) DeleteUser(ctx context.Context, userID string, logs []*model.Changelog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return err
	}

	steps := []struct {
		query string
		args  []any
	}{
		{`UPDATE notes SET author_id = NULL WHERE author_id = $1 AND update_id IS NOT NULL`, []any{userID}},
		{`UPDATE notes SET done_by = NULL WHERE done_by = $1`, []any{userID}},
		{`DELETE FROM notes WHERE author_id = $1 AND update_id IS NULL`, []any{userID}},
		{`UPDATE updates SET started_by = NULL WHERE started_by = $1`, []any{userID}},
		{`UPDATE updates SET published_by = NULL WHERE published_by = $1`, []any{userID}},
		{`UPDATE updates SET created_by = NULL WHERE created_by = $1`, []any{userID}},
		{`DELETE FROM project_groups WHERE project_id IN (SELECT id FROM projects WHERE owner_id = $1)`, []any{userID}},
		{`DELETE FROM projects WHERE owner_id = $1`, []any{userID}},
		{`DELETE FROM project_groups WHERE group_id IN (SELECT id FROM groups WHERE owner_id = $1)`, []any{userID}},
		{`DELETE FROM groups WHERE owner_id = $1`, []any{userID}},
		{`DELETE FROM group_members WHERE user_id = $1`, []any{userID}},
		{`DELETE FROM changelogs WHERE owner_id = $1`, []any{userID}},
	}
	for _, s := range steps {
		if _, err := tx.Exec(ctx, s.query, s.args...); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// DeleteGroup はグループ削除を単一トランザクションで実行する。
// logs（現メンバーへの PROJECT_REMOVED）はメンバーが消える前に挿入される。
func (r *PgCascadeRepository) DeleteGroup(ctx context.Context, groupID string, logs []*model.Changelog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM project_groups WHERE group_id = $1`, groupID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM groups WHERE id = $1`, groupID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

// DeleteProject はプロジェクト削除を単一トランザクションで実行する
func (r *PgCascadeRepository) DeleteProject(ctx context.Context, projectID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM project_groups WHERE project_id = $1`, projectID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}
