package models

import "time"

// Member is a single participant of a family group or of a pending
// group negotiation. Members are immutable once created; identity is
// the UserID within a group.
type Member struct {
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	IsCreator bool      `json:"is_creator"`
	JoinedAt  time.Time `json:"joined_at"`
}

// PendingGroup is a group negotiation in progress. It exists from
// creation until it is completed, cancelled by the creator, or expired
// by the negotiation timer. At most one pending group per creator.
type PendingGroup struct {
	JoinCode    string            `json:"join_code"`
	GroupName   string            `json:"group_name"`
	CreatorID   string            `json:"creator_id"`
	CreatorName string            `json:"creator_name"`
	Members     map[string]Member `json:"members"`
	CreatedAt   time.Time         `json:"created_at"`
	LastUpdated time.Time         `json:"last_updated"`
}

// Group is a completed family group. Created only by completing a
// PendingGroup; the creator is immutable and always present in Members
// until the group is dissolved.
type Group struct {
	GroupID     string            `json:"group_id"`
	GroupName   string            `json:"group_name"`
	CreatorID   string            `json:"creator_id"`
	CreatorName string            `json:"creator_name"`
	Members     map[string]Member `json:"members"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CreateGroupResult is returned when a pending group is opened.
type CreateGroupResult struct {
	JoinCode  string    `json:"join_code"`
	GroupName string    `json:"group_name"`
	CreatorID string    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

// JoinGroupResult is returned for joins into either namespace. GroupRef
// is the join code while the group is still pending and the group ID
// once the code resolves to a completed group.
type JoinGroupResult struct {
	GroupRef    string    `json:"group_ref"`
	GroupName   string    `json:"group_name"`
	CreatorName string    `json:"creator_name"`
	JoinedAt    time.Time `json:"joined_at"`
	Pending     bool      `json:"pending"`
}

// CompletedGroupSummary describes the group materialized by a complete
// operation. MemberNames preserves creator-first ordering.
type CompletedGroupSummary struct {
	GroupID      string    `json:"group_id"`
	GroupName    string    `json:"group_name"`
	CreatorName  string    `json:"creator_name"`
	MemberNames  []string  `json:"members"`
	TotalMembers int       `json:"total_members"`
	CompletedAt  time.Time `json:"completed_at"`
}

// KickSummary describes the result of removing a member from a pending
// group.
type KickSummary struct {
	KickedUserID     string `json:"kicked_user_id"`
	KickedUserName   string `json:"kicked_user_name"`
	RemainingMembers int    `json:"remaining_members"`
}

// CancelSummary lists the members evicted when a creator abandons a
// pending group.
type CancelSummary struct {
	JoinCode    string    `json:"join_code"`
	Members     []Member  `json:"members"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// MemberInfo is a Member annotated with the user's current warning
// count for group info responses.
type MemberInfo struct {
	UserID       string    `json:"user_id"`
	UserName     string    `json:"user_name"`
	WarningCount int       `json:"warning_count"`
	IsCreator    bool      `json:"is_creator"`
	JoinedAt     time.Time `json:"joined_at"`
}

// GroupInfo is the view of a completed group returned to its members.
// Members are sorted creator first, then by join time ascending.
type GroupInfo struct {
	GroupID     string       `json:"group_id"`
	GroupName   string       `json:"group_name"`
	MemberCount int          `json:"member_count"`
	Members     []MemberInfo `json:"members"`
	CreatedAt   time.Time    `json:"created_at"`
}

// PendingGroupInfo is the view of a pending group, either the one the
// user created or the one they are waiting in.
type PendingGroupInfo struct {
	JoinCode    string    `json:"join_code"`
	GroupName   string    `json:"group_name"`
	CreatorID   string    `json:"creator_id"`
	CreatorName string    `json:"creator_name"`
	MemberCount int       `json:"member_count"`
	Members     []Member  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}
