package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shiplog/backend/internal/model"
)

// PgMemberRepository は MemberRepository の PostgreSQL 実装
type PgMemberRepository struct {
	pool *pgxpool.Pool
}

// NewPgMemberRepository は PgMemberRepository を生成する
func NewPgMemberRepository(pool *pgxpool.Pool) *PgMemberRepository {
	return &PgMemberRepository{pool: pool}
}

// Get は (groupID, userID) のメンバー行を取得する
func (r *PgMemberRepository) Get(ctx context.Context, groupID, userID string) (*model.GroupMember, error) {
	var m model.GroupMember
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, group_id, role, invitation_status, created_at
		 FROM group_members
		 WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	).Scan(&m.UserID, &m.GroupID, &m.Role, &m.InvitationStatus, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListByGroupID はグループのメンバー一覧を返す。
// users テーブルと JOIN して email / name を取得する。
func (r *PgMemberRepository) ListByGroupID(ctx context.Context, groupID string) ([]*model.GroupMember, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT gm.user_id, gm.group_id, gm.role, gm.invitation_status, gm.created_at,
		        u.email, u.name
		 FROM group_members gm
		 JOIN users u ON u.id = gm.user_id
		 WHERE gm.group_id = $1
		 ORDER BY gm.created_at, gm.user_id`,
		groupID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*model.GroupMember
	for rows.Next() {
		var m model.GroupMember
		if err := rows.Scan(
			&m.UserID, &m.GroupID, &m.Role, &m.InvitationStatus, &m.CreatedAt,
			&m.Email, &m.Name,
		); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

// ListJoinedUserIDs は複数グループの JOINED メンバーのユーザー ID を重複なく返す
func (r *PgMemberRepository) ListJoinedUserIDs(ctx context.Context, groupIDs []string) ([]string, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT user_id FROM group_members
		 WHERE group_id = ANY($1) AND invitation_status = 'JOINED'`,
		groupIDs,
	)
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

// Invite は PENDING のメンバー行とチェンジログを単一トランザクションで作成する
func (r *PgMemberRepository) Invite(ctx context.Context, member *model.GroupMember, logs []*model.Changelog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO group_members (user_id, group_id, role, invitation_status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		member.UserID, member.GroupID, member.Role, model.InvitationPending,
	).Scan(&member.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	member.InvitationStatus = model.InvitationPending

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Accept は PENDING → JOINED の遷移とチェンジログ挿入を単一トランザクションで行う
func (r *PgMemberRepository) Accept(ctx context.Context, groupID, userID string, logs []*model.Changelog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE group_members SET invitation_status = 'JOINED'
		 WHERE group_id = $1 AND user_id = $2 AND invitation_status = 'PENDING'`,
		groupID, userID,
	)
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

// Decline は PENDING のメンバー行を削除する
func (r *PgMemberRepository) Decline(ctx context.Context, groupID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM group_members
		 WHERE group_id = $1 AND user_id = $2 AND invitation_status = 'PENDING'`,
		groupID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// lockMember は対象メンバー行をロックして返す
func lockMember(ctx context.Context, tx pgx.Tx, groupID, userID string) (*model.GroupMember, error) {
	var m model.GroupMember
	err := tx.QueryRow(ctx,
		`SELECT user_id, group_id, role, invitation_status, created_at
		 FROM group_members
		 WHERE group_id = $1 AND user_id = $2
		 FOR UPDATE`,
		groupID, userID,
	).Scan(&m.UserID, &m.GroupID, &m.Role, &m.InvitationStatus, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// countOtherJoinedAdmins は対象以外の JOINED ADMIN の人数を数える。
// 行ロックを取って数えるため、同一グループに対する並行操作と直列化される。
func countOtherJoinedAdmins(ctx context.Context, tx pgx.Tx, groupID, excludeUserID string) (int, error) {
	rows, err := tx.Query(ctx,
		`SELECT user_id FROM group_members
		 WHERE group_id = $1 AND user_id <> $2
		   AND role = 'ADMIN' AND invitation_status = 'JOINED'
		 FOR UPDATE`,
		groupID, excludeUserID,
	)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		n++
	}
	return n, rows.Err()
}

// ChangeRole はロール変更とチェンジログ挿入を単一トランザクションで行う
func (r *PgMemberRepository) ChangeRole(ctx context.Context, groupID, userID string, role model.Role, logs []*model.Changelog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	m, err := lockMember(ctx, tx, groupID, userID)
	if err != nil {
		return err
	}

	// JOINED の ADMIN を降格させる場合、他に ADMIN が残るか検査する
	if m.Role == model.RoleAdmin && m.Joined() && role != model.RoleAdmin {
		n, err := countOtherJoinedAdmins(ctx, tx, groupID, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrLastAdmin
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE group_members SET role = $1 WHERE group_id = $2 AND user_id = $3`,
		role, groupID, userID,
	); err != nil {
		return err
	}

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Remove はメンバー削除とチェンジログ挿入を単一トランザクションで行う
func (r *PgMemberRepository) Remove(ctx context.Context, groupID, userID string, logs []*model.Changelog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	m, err := lockMember(ctx, tx, groupID, userID)
	if err != nil {
		return err
	}

	if m.Role == model.RoleAdmin && m.Joined() {
		n, err := countOtherJoinedAdmins(ctx, tx, groupID, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrLastAdmin
		}
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	); err != nil {
		return err
	}

	if err := insertChangelogs(ctx, tx, logs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
