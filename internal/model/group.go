package model

import "time"

// Role はグループ内の権限。ADMIN ⊇ MAINTAINER ⊇ DEVELOPER の厳密な階層。
type Role string

const (
	RoleDeveloper  Role = "DEVELOPER"
	RoleMaintainer Role = "MAINTAINER"
	RoleAdmin      Role = "ADMIN"
)

func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleMaintainer:
		return 2
	case RoleDeveloper:
		return 1
	}
	return 0
}

// Valid は既知のロールかどうかを返す
func (r Role) Valid() bool {
	return r.rank() > 0
}

// AtLeast は r が other 以上の権限を持つかどうかを返す
func (r Role) AtLeast(other Role) bool {
	return r.rank() >= other.rank()
}

// InvitationStatus は招待の状態
type InvitationStatus string

const (
	InvitationPending InvitationStatus = "PENDING"
	InvitationJoined  InvitationStatus = "JOINED"
)

type Group struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Transient: not stored in DB, set by handlers/queries
	Members []*GroupMember `json:"members,omitempty"`
}

// GroupMember はグループへの所属。複合キー (user_id, group_id)。
type GroupMember struct {
	UserID           string           `json:"user_id"`
	GroupID          string           `json:"group_id"`
	Role             Role             `json:"role"`
	InvitationStatus InvitationStatus `json:"invitation_status"`
	CreatedAt        time.Time        `json:"created_at"`

	// Transient: users テーブルとの JOIN で取得
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Joined は招待を受諾済みかどうかを返す
func (m *GroupMember) Joined() bool {
	return m.InvitationStatus == InvitationJoined
}
