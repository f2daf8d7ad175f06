package service

import "context"

// AssociationService はプロジェクトとグループの紐づけに関する
// ビジネスロジックのインターフェース
type AssociationService interface {
	// EditProjectGroups は紐づけ先の目標集合を受け取り、現状との対称差分
	// だけを適用する。差分ゼロの再送ではチェンジログを 1 件も発行しない。
	EditProjectGroups(ctx context.Context, actorID, projectID string, target []string) error
	// GroupsOf はプロジェクトに紐づくグループ ID の集合を返す
	GroupsOf(ctx context.Context, projectID string) ([]string, error)
	// IsVisibleTo はユーザーがプロジェクトを閲覧可能かを返す
	IsVisibleTo(ctx context.Context, userID, projectID string) (bool, error)
}
