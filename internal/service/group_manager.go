package service

import (
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"famguard/internal/constants"
	"famguard/internal/errors"
	"famguard/internal/metrics"
	"famguard/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GroupManager owns all group state: pending negotiations, completed
// groups and the per-user warning counters. Every operation takes the
// single manager mutex, including the expiry callback, so at most one
// of complete, cancel or expire wins for a given join code.
type GroupManager struct {
	mu sync.Mutex

	pending          map[string]*models.PendingGroup // join code -> negotiation
	pendingByCreator map[string]string               // creator id -> join code
	pendingTimers    map[string]*time.Timer          // join code -> expiry timer

	groups     map[string]*models.Group // group id -> completed group
	groupCodes map[string]string        // join code -> group id (completed namespace)
	userGroups map[string]string        // user id -> group id
	warnings   map[string]int           // user id -> warning count

	pendingTTL time.Duration
	logger     *logrus.Logger
}

// NewGroupManager creates a manager whose pending negotiations expire
// after pendingTTL.
func NewGroupManager(pendingTTL time.Duration, logger *logrus.Logger) *GroupManager {
	if pendingTTL <= 0 {
		pendingTTL = constants.DefaultPendingGroupTTLMin * time.Minute
	}
	return &GroupManager{
		pending:          make(map[string]*models.PendingGroup),
		pendingByCreator: make(map[string]string),
		pendingTimers:    make(map[string]*time.Timer),
		groups:           make(map[string]*models.Group),
		groupCodes:       make(map[string]string),
		userGroups:       make(map[string]string),
		warnings:         make(map[string]int),
		pendingTTL:       pendingTTL,
		logger:           logger,
	}
}

// CreateGroup opens a pending negotiation for the user and schedules
// its expiry. The creator is the sole initial member.
func (m *GroupManager) CreateGroup(userID, userName, groupName string) (*models.CreateGroupResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.userGroups[userID]; ok {
		return nil, errors.NewGroupError(errors.ErrCodeAlreadyInGroup, "user already belongs to a group")
	}
	if _, ok := m.pendingByCreator[userID]; ok {
		return nil, errors.NewGroupError(errors.ErrCodeAlreadyCreatingGroup, "user already has a pending group")
	}

	joinCode := m.newJoinCodeLocked()
	now := time.Now()

	m.pending[joinCode] = &models.PendingGroup{
		JoinCode:    joinCode,
		GroupName:   groupName,
		CreatorID:   userID,
		CreatorName: userName,
		Members: map[string]models.Member{
			userID: {UserID: userID, UserName: userName, IsCreator: true, JoinedAt: now},
		},
		CreatedAt:   now,
		LastUpdated: now,
	}
	m.pendingByCreator[userID] = joinCode
	m.pendingTimers[joinCode] = time.AfterFunc(m.pendingTTL, func() {
		m.expire(joinCode)
	})

	metrics.IncrementCounter("group_pending_created_total", nil, "Pending groups opened")
	m.logger.WithFields(logrus.Fields{
		"creator_id": userID,
		"expires_at": now.Add(m.pendingTTL),
	}).Info("Pending group created")

	return &models.CreateGroupResult{
		JoinCode:  joinCode,
		GroupName: groupName,
		CreatorID: userID,
		CreatedAt: now,
	}, nil
}

// JoinGroup adds the user to whatever the join code currently resolves
// to: a pending negotiation, or the completed group the code was bound
// to at completion. Joining a pending group again updates the display
// name only; the creator flag and original join time are kept.
func (m *GroupManager) JoinGroup(joinCode, userID, userName string) (*models.JoinGroupResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.userGroups[userID]; ok {
		return nil, errors.NewGroupError(errors.ErrCodeAlreadyInGroup, "user already belongs to a group")
	}

	now := time.Now()

	if pg, ok := m.pending[joinCode]; ok {
		member := models.Member{UserID: userID, UserName: userName, JoinedAt: now}
		if existing, ok := pg.Members[userID]; ok {
			member.IsCreator = existing.IsCreator
			member.JoinedAt = existing.JoinedAt
		}
		pg.Members[userID] = member
		pg.LastUpdated = now

		m.logger.WithFields(logrus.Fields{
			"user_id":      userID,
			"member_count": len(pg.Members),
		}).Info("User joined pending group")

		return &models.JoinGroupResult{
			GroupRef:    joinCode,
			GroupName:   pg.GroupName,
			CreatorName: pg.CreatorName,
			JoinedAt:    member.JoinedAt,
			Pending:     true,
		}, nil
	}

	if groupID, ok := m.groupCodes[joinCode]; ok {
		group := m.groups[groupID]
		group.Members[userID] = models.Member{UserID: userID, UserName: userName, JoinedAt: now}
		m.userGroups[userID] = groupID
		if _, ok := m.warnings[userID]; !ok {
			m.warnings[userID] = 0
		}

		m.logger.WithFields(logrus.Fields{
			"user_id":  userID,
			"group_id": groupID,
		}).Info("User joined completed group")

		return &models.JoinGroupResult{
			GroupRef:    groupID,
			GroupName:   group.GroupName,
			CreatorName: group.CreatorName,
			JoinedAt:    now,
			Pending:     false,
		}, nil
	}

	return nil, errors.NewGroupError(errors.ErrCodeInvalidJoinCode, "join code matches no group")
}

// CompleteGroup turns the caller's pending negotiation into a durable
// group. The member set is snapshotted, the join code is rebound to the
// new group ID and every member is registered as a group member. The
// expiry timer is stopped before any shared map is touched; if the
// timer already fired, the expiry callback blocks on the manager mutex
// and finds the pending entry gone.
func (m *GroupManager) CompleteGroup(userID string) (*models.CompletedGroupSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	joinCode, ok := m.pendingByCreator[userID]
	if !ok {
		return nil, errors.NewGroupError(errors.ErrCodeNoPendingGroup, "user has no pending group")
	}
	pg := m.pending[joinCode]
	if pg.CreatorID != userID {
		return nil, errors.NewGroupError(errors.ErrCodeNotGroupCreator, "only the creator can complete a group")
	}

	if timer := m.pendingTimers[joinCode]; timer != nil {
		timer.Stop()
	}
	delete(m.pendingTimers, joinCode)

	now := time.Now()
	groupID := "group_" + uuid.NewString()

	group := &models.Group{
		GroupID:     groupID,
		GroupName:   pg.GroupName,
		CreatorID:   pg.CreatorID,
		CreatorName: pg.CreatorName,
		Members:     make(map[string]models.Member, len(pg.Members)),
		CreatedAt:   now,
	}
	for id, member := range pg.Members {
		group.Members[id] = member
	}

	m.groups[groupID] = group
	m.groupCodes[joinCode] = groupID
	for id := range group.Members {
		m.userGroups[id] = groupID
		if _, ok := m.warnings[id]; !ok {
			m.warnings[id] = 0
		}
	}

	delete(m.pending, joinCode)
	delete(m.pendingByCreator, userID)

	members := sortedMembers(group.Members)
	names := make([]string, len(members))
	for i, member := range members {
		names[i] = member.UserName
	}

	metrics.IncrementCounter("group_completed_total", nil, "Pending groups completed")
	m.logger.WithFields(logrus.Fields{
		"group_id":     groupID,
		"member_count": len(members),
	}).Info("Group completed")

	return &models.CompletedGroupSummary{
		GroupID:      groupID,
		GroupName:    group.GroupName,
		CreatorName:  group.CreatorName,
		MemberNames:  names,
		TotalMembers: len(members),
		CompletedAt:  now,
	}, nil
}

// KickMember removes a waiting member from the caller's pending group.
func (m *GroupManager) KickMember(creatorID, targetUserID string) (*models.KickSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	joinCode, ok := m.pendingByCreator[creatorID]
	if !ok {
		return nil, errors.NewGroupError(errors.ErrCodeNoPendingGroup, "user has no pending group")
	}
	pg := m.pending[joinCode]
	if pg.CreatorID != creatorID {
		return nil, errors.NewGroupError(errors.ErrCodeNotGroupCreator, "only the creator can kick members")
	}
	if targetUserID == creatorID {
		return nil, errors.NewGroupError(errors.ErrCodeCannotKickYourself, "creator cannot kick themselves")
	}
	target, ok := pg.Members[targetUserID]
	if !ok {
		return nil, errors.NewGroupError(errors.ErrCodeUserNotInGroup, "target is not in the pending group")
	}

	delete(pg.Members, targetUserID)
	pg.LastUpdated = time.Now()

	m.logger.WithFields(logrus.Fields{
		"creator_id":     creatorID,
		"kicked_user_id": targetUserID,
	}).Info("Member kicked from pending group")

	return &models.KickSummary{
		KickedUserID:     targetUserID,
		KickedUserName:   target.UserName,
		RemainingMembers: len(pg.Members),
	}, nil
}

// CancelGroup abandons the caller's pending negotiation and reports the
// members that were evicted.
func (m *GroupManager) CancelGroup(creatorID string) (*models.CancelSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	joinCode, ok := m.pendingByCreator[creatorID]
	if !ok {
		return nil, errors.NewGroupError(errors.ErrCodeNoPendingGroup, "user has no pending group")
	}
	pg := m.pending[joinCode]

	if timer := m.pendingTimers[joinCode]; timer != nil {
		timer.Stop()
	}
	delete(m.pendingTimers, joinCode)
	delete(m.pending, joinCode)
	delete(m.pendingByCreator, creatorID)

	metrics.IncrementCounter("group_cancelled_total", nil, "Pending groups cancelled")
	m.logger.WithFields(logrus.Fields{
		"creator_id":   creatorID,
		"member_count": len(pg.Members),
	}).Info("Pending group cancelled")

	return &models.CancelSummary{
		JoinCode:    joinCode,
		Members:     sortedMembers(pg.Members),
		CancelledAt: time.Now(),
	}, nil
}

// expire is the timer callback for a pending negotiation. Completion
// and cancellation stop the timer first, but a fire already in flight
// can still land here, so existence is re-checked under the lock.
func (m *GroupManager) expire(joinCode string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pg, ok := m.pending[joinCode]
	if !ok {
		return
	}

	delete(m.pending, joinCode)
	delete(m.pendingByCreator, pg.CreatorID)
	delete(m.pendingTimers, joinCode)

	metrics.IncrementCounter("group_expired_total", nil, "Pending groups expired")
	m.logger.WithFields(logrus.Fields{
		"creator_id":   pg.CreatorID,
		"member_count": len(pg.Members),
	}).Info("Pending group expired")
}

// LeaveGroup removes the user from their completed group. When the
// creator leaves, the whole group is dissolved: every membership entry,
// the group data and its join code binding are removed. No succession.
// Returns false when the user is not in any completed group.
func (m *GroupManager) LeaveGroup(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	groupID, ok := m.userGroups[userID]
	if !ok {
		return false
	}
	group := m.groups[groupID]

	if group.CreatorID == userID {
		for memberID := range group.Members {
			delete(m.userGroups, memberID)
		}
		delete(m.groups, groupID)
		for code, id := range m.groupCodes {
			if id == groupID {
				delete(m.groupCodes, code)
				break
			}
		}

		metrics.IncrementCounter("group_dissolved_total", nil, "Groups dissolved by creator leave")
		m.logger.WithFields(logrus.Fields{
			"group_id":   groupID,
			"creator_id": userID,
		}).Info("Creator left, group dissolved")
		return true
	}

	delete(group.Members, userID)
	delete(m.userGroups, userID)

	m.logger.WithFields(logrus.Fields{
		"group_id": groupID,
		"user_id":  userID,
	}).Info("Member left group")
	return true
}

// GroupInfo returns the user's completed group with members annotated
// by their current warning counts, creator first then by join time.
func (m *GroupManager) GroupInfo(userID string) (*models.GroupInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	groupID, ok := m.userGroups[userID]
	if !ok {
		return nil, false
	}
	group := m.groups[groupID]

	members := make([]models.MemberInfo, 0, len(group.Members))
	for _, member := range group.Members {
		members = append(members, models.MemberInfo{
			UserID:       member.UserID,
			UserName:     member.UserName,
			WarningCount: m.warnings[member.UserID],
			IsCreator:    member.IsCreator,
			JoinedAt:     member.JoinedAt,
		})
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].IsCreator != members[j].IsCreator {
			return members[i].IsCreator
		}
		return members[i].JoinedAt.Before(members[j].JoinedAt)
	})

	return &models.GroupInfo{
		GroupID:     groupID,
		GroupName:   group.GroupName,
		MemberCount: len(members),
		Members:     members,
		CreatedAt:   group.CreatedAt,
	}, true
}

// PendingGroupInfo returns the pending group the user created, or, for
// a non-creator, the pending group they are waiting in.
func (m *GroupManager) PendingGroupInfo(userID string) (*models.PendingGroupInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if joinCode, ok := m.pendingByCreator[userID]; ok {
		return m.pendingInfoLocked(m.pending[joinCode]), true
	}

	for _, pg := range m.pending {
		if _, ok := pg.Members[userID]; ok {
			return m.pendingInfoLocked(pg), true
		}
	}
	return nil, false
}

func (m *GroupManager) pendingInfoLocked(pg *models.PendingGroup) *models.PendingGroupInfo {
	return &models.PendingGroupInfo{
		JoinCode:    pg.JoinCode,
		GroupName:   pg.GroupName,
		CreatorID:   pg.CreatorID,
		CreatorName: pg.CreatorName,
		MemberCount: len(pg.Members),
		Members:     sortedMembers(pg.Members),
		CreatedAt:   pg.CreatedAt,
		ExpiresAt:   pg.CreatedAt.Add(m.pendingTTL),
	}
}

// SetWarningCount overwrites the user's warning count. Counts are
// independent of group membership and survive leave and rejoin.
func (m *GroupManager) SetWarningCount(userID string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings[userID] = count
}

// WarningCount returns the user's current warning count, 0 if never
// set.
func (m *GroupManager) WarningCount(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.warnings[userID]
}

// newJoinCodeLocked allocates a join code unused by any live pending
// negotiation or completed group. Caller must hold m.mu.
func (m *GroupManager) newJoinCodeLocked() string {
	buf := make([]byte, constants.JoinCodeLength)
	for {
		if _, err := rand.Read(buf); err != nil {
			continue
		}
		code := make([]byte, constants.JoinCodeLength)
		for i, b := range buf {
			code[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
		}
		joinCode := string(code)

		if _, exists := m.pending[joinCode]; exists {
			continue
		}
		if _, exists := m.groupCodes[joinCode]; exists {
			continue
		}
		return joinCode
	}
}

func sortedMembers(members map[string]models.Member) []models.Member {
	list := make([]models.Member, 0, len(members))
	for _, member := range members {
		list = append(list, member)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].IsCreator != list[j].IsCreator {
			return list[i].IsCreator
		}
		return list[i].JoinedAt.Before(list[j].JoinedAt)
	})
	return list
}
