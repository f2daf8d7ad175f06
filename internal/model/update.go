package model

import "time"

// UpdateStatus はアップデートのライフサイクル状態
type UpdateStatus string

const (
	UpdateScheduled     UpdateStatus = "SCHEDULED"
	UpdateInDevelopment UpdateStatus = "IN_DEVELOPMENT"
	UpdatePublished     UpdateStatus = "PUBLISHED"
)

// CanStart は開発開始が許される状態かを返す。SCHEDULED からのみ開始できる。
func (s UpdateStatus) CanStart() bool {
	return s == UpdateScheduled
}

// CanPublish は公開が許される状態かを返す。IN_DEVELOPMENT からのみ公開できる。
func (s UpdateStatus) CanPublish() bool {
	return s == UpdateInDevelopment
}

// Update はプロジェクトのリリース単位を表す。
// 状態遷移は SCHEDULED → IN_DEVELOPMENT → PUBLISHED の一方向のみ。
type Update struct {
	ID            string       `json:"id"`
	ProjectID     string       `json:"project_id"`
	TargetVersion string       `json:"target_version"`
	Status        UpdateStatus `json:"status"`
	CreatedBy     *string      `json:"created_by,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	StartedBy     *string      `json:"started_by,omitempty"`
	StartedAt     *time.Time   `json:"started_at,omitempty"`
	PublishedBy   *string      `json:"published_by,omitempty"`
	PublishedAt   *time.Time   `json:"published_at,omitempty"`

	// Transient: not stored in DB, set by handlers/queries
	Notes []*Note `json:"notes,omitempty"`
}

// DevelopmentDays は開発日数（startedAt から publishedAt までの切り上げ日数）を返す。
// PUBLISHED 以外の状態では -1。
func (u *Update) DevelopmentDays() int {
	if u.Status != UpdatePublished || u.StartedAt == nil || u.PublishedAt == nil {
		return -1
	}
	d := u.PublishedAt.Sub(*u.StartedAt)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}
