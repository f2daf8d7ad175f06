package service

import "context"

// CascadeService はルート集約の削除を調整するインターフェース。
// 参照の後始末（NULL 化・関連の解除・連鎖削除）を決定的な順序で行い、
// 宙ぶらりんの参照や孤児の通知を残さない。
type CascadeService interface {
	// DeleteUser はユーザー本人のアカウント削除。所有プロジェクト・
	// グループも解体される。グループの履歴（アップデートに紐づくノート）は
	// 作成者参照を NULL にして残す。
	DeleteUser(ctx context.Context, userID string) error
	// DeleteGroup はグループを削除する。ADMIN のみ。紐づくプロジェクトの
	// 関連解除を現メンバーに通知してからグループを消す。
	DeleteGroup(ctx context.Context, actorID, groupID string) error
	// DeleteProject はプロジェクトを削除する。所有者のみ。
	DeleteProject(ctx context.Context, actorID, projectID string) error
}
