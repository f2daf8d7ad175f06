package model

import "time"

// Note はチェックリスト項目を表す。
// UpdateID が nil の場合は個人ノート、非 nil の場合はアップデートに
// 紐づくチェンジノート。AuthorID は作成者削除時に NULL になりうる。
type Note struct {
	ID        string     `json:"id"`
	AuthorID  *string    `json:"author_id,omitempty"`
	UpdateID  *string    `json:"update_id,omitempty"`
	Content   string     `json:"content"`
	Done      bool       `json:"done"`
	DoneBy    *string    `json:"done_by,omitempty"`
	DoneAt    *time.Time `json:"done_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsPersonal は個人ノート（アップデートに紐づかない）かどうかを返す
func (n *Note) IsPersonal() bool {
	return n.UpdateID == nil
}
