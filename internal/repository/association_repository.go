package repository

import (
	"context"

	"github.com/shiplog/backend/internal/model"
)

// AssociationRepository はプロジェクトとグループの多対多リンクの
// 永続化インターフェース
type AssociationRepository interface {
	// GroupsOf はプロジェクトに紐づくグループ ID の集合を返す
	GroupsOf(ctx context.Context, projectID string) ([]string, error)
	// IsVisibleTo はユーザーがプロジェクトを閲覧可能か
	// （所有者 or 紐づくグループの JOINED メンバー）を返す
	IsVisibleTo(ctx context.Context, userID, projectID string) (bool, error)
	// Replace は目標集合を受け取り、プロジェクト行のロック下で現状を読み、
	// 対称差分の計算・適用・チェンジログ挿入までを単一トランザクションで
	// 行う。差分計算そのものがロック下にあるため、同一プロジェクトへの
	// 並行編集が同じ差分を二重に観測することはない。差分ゼロなら
	// buildLogs は呼ばれず、何も書かれない。
	Replace(ctx context.Context, projectID string, target []string,
		buildLogs func(toAdd, toRemove []string) ([]*model.Changelog, error)) error
}

// SymmetricDiff は target − current / current − target を返す
func SymmetricDiff(current, target []string) (toAdd, toRemove []string) {
	cur := make(map[string]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	tgt := make(map[string]struct{}, len(target))
	for _, id := range target {
		tgt[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(target))
	for _, id := range target {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := cur[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := tgt[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
