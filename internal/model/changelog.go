package model

import "time"

// ChangelogEvent はチェンジログのイベント種別
type ChangelogEvent string

const (
	EventInvitedGroup    ChangelogEvent = "INVITED_GROUP"
	EventJoinedGroup     ChangelogEvent = "JOINED_GROUP"
	EventRoleChanged     ChangelogEvent = "ROLE_CHANGED"
	EventLeftGroup       ChangelogEvent = "LEFT_GROUP"
	EventProjectAdded    ChangelogEvent = "PROJECT_ADDED"
	EventProjectRemoved  ChangelogEvent = "PROJECT_REMOVED"
	EventUpdateScheduled ChangelogEvent = "UPDATE_SCHEDULED"
	EventUpdateStarted   ChangelogEvent = "UPDATE_STARTED"
	EventUpdatePublished ChangelogEvent = "UPDATE_PUBLISHED"
	EventUpdateDeleted   ChangelogEvent = "UPDATE_DELETED"
)

// EventScope はイベントが紐づく対象の種別
type EventScope int

const (
	ScopeGroup EventScope = iota
	ScopeProject
)

// Scope はイベント種別が project / group のどちらに紐づくかを返す
func (e ChangelogEvent) Scope() EventScope {
	switch e {
	case EventInvitedGroup, EventJoinedGroup, EventRoleChanged, EventLeftGroup:
		return ScopeGroup
	case EventProjectAdded, EventProjectRemoved,
		EventUpdateScheduled, EventUpdateStarted, EventUpdatePublished, EventUpdateDeleted:
		return ScopeProject
	}
	return ScopeProject
}

// Changelog はユーザーごとの通知レコード。
// ProjectID / GroupID はイベント種別に応じてどちらか一方のみセットされる。
// read フラグ以外は作成後に変更されない。
type Changelog struct {
	ID           string         `json:"id"`
	OwnerID      string         `json:"owner_id"`
	Event        ChangelogEvent `json:"event"`
	ExtraContent string         `json:"extra_content,omitempty"`
	Read         bool           `json:"read"`
	ProjectID    *string        `json:"project_id,omitempty"`
	GroupID      *string        `json:"group_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ChangelogListResult はページング付きのチェンジログ一覧
type ChangelogListResult struct {
	Changelogs []*Changelog `json:"changelogs"`
	Unread     int          `json:"unread"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
}
