// Package authz holds the permission-level access check used by every
// channel and server operation. Results are computed fresh from the member
// rows on each call, never cached, because levels can change between
// requests.
package authz

import "communityapp-backend/internal/models"

// Named permission levels. The owner's row always carries LevelOwner,
// assigned when the server is created.
const (
	LevelMember    = 1
	LevelModerator = 5
	LevelOwner     = 9
)

// MemberLevel looks up userID in a server's member collection. The second
// return value is false when the user is not a member.
func MemberLevel(members []models.ServerMember, userID int64) (int, bool) {
	for _, m := range members {
		if m.UserID == userID {
			return m.PermissionLevel, true
		}
	}
	return 0, false
}

// CanAccess reports whether userID may act on a resource guarded by
// requiredLevel. Non-members are denied; members are allowed iff their
// stored level is >= requiredLevel, so ties favor access.
func CanAccess(members []models.ServerMember, userID int64, requiredLevel int) bool {
	level, ok := MemberLevel(members, userID)
	if !ok {
		return false
	}
	return level >= requiredLevel
}
