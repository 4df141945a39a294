// Package relations implements the friend-request lifecycle. For any pair of
// users the relationship is in exactly one of three states: none, a pending
// directional request, or a symmetric friendship with its pair conversation.
package relations

import (
	"go.uber.org/zap"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/database"
	"communityapp-backend/internal/snowflake"
)

type State string

const (
	StateNone    State = "none"
	StatePending State = "pending"
	StateFriends State = "friends"
)

type Service struct {
	store database.Store
	sugar *zap.SugaredLogger
}

func NewService(store database.Store, sugar *zap.SugaredLogger) *Service {
	return &Service{store: store, sugar: sugar}
}

// SendFriendRequest moves (requester, target) from none to pending. When the
// target already has a request out to the requester the two requests collapse
// straight into a friendship, consuming both markers and provisioning the
// conversation, and the returned state is StateFriends.
func (s *Service) SendFriendRequest(targetID, requesterID int64) (State, error) {
	if targetID == requesterID {
		return StateNone, apperr.New(apperr.KindValidation, "can't send a friend request to yourself")
	}

	exists, err := s.store.UserExists(targetID)
	if err != nil {
		return StateNone, apperr.Wrap(apperr.KindInternal, "look up user", err)
	}
	if !exists {
		return StateNone, apperr.New(apperr.KindNotFound, "user not found")
	}

	friends, err := s.store.AreFriends(requesterID, targetID)
	if err != nil {
		return StateNone, apperr.Wrap(apperr.KindInternal, "look up friendship", err)
	}
	if friends {
		return StateFriends, apperr.New(apperr.KindValidation, "already friends")
	}

	pending, err := s.store.FriendRequestExists(targetID, requesterID)
	if err != nil {
		return StateNone, apperr.Wrap(apperr.KindInternal, "look up friend request", err)
	}
	if pending {
		return StatePending, apperr.New(apperr.KindValidation, "friend request already sent")
	}

	// cross request: the target already asked for the requester, treat the
	// send as a mutual acceptance
	reversePending, err := s.store.FriendRequestExists(requesterID, targetID)
	if err != nil {
		return StateNone, apperr.Wrap(apperr.KindInternal, "look up friend request", err)
	}
	if reversePending {
		if err := s.promote(requesterID, targetID); err != nil {
			return StateNone, err
		}
		s.sugar.Debugf("Cross friend requests between [%d] and [%d] collapsed into a friendship", requesterID, targetID)
		return StateFriends, nil
	}

	if err := s.store.CreateFriendRequest(targetID, requesterID); err != nil {
		return StateNone, apperr.Wrap(apperr.KindInternal, "create friend request", err)
	}

	return StatePending, nil
}

// AcceptFriendRequest moves (requester, target) from pending to friends.
// Accepting twice is a reported error, never a second conversation.
func (s *Service) AcceptFriendRequest(targetID, requesterID int64) error {
	pending, err := s.store.FriendRequestExists(targetID, requesterID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "look up friend request", err)
	}
	if !pending {
		friends, err := s.store.AreFriends(targetID, requesterID)
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, "look up friendship", err)
		}
		if friends {
			return apperr.New(apperr.KindValidation, "already friends")
		}
		return apperr.New(apperr.KindNotFound, "no pending friend request")
	}

	return s.promote(targetID, requesterID)
}

// RejectFriendRequest moves (requester, target) from pending back to none.
// Only the marker goes away.
func (s *Service) RejectFriendRequest(targetID, requesterID int64) error {
	pending, err := s.store.FriendRequestExists(targetID, requesterID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "look up friend request", err)
	}
	if !pending {
		return apperr.New(apperr.KindNotFound, "no pending friend request")
	}

	if err := s.store.DeleteFriendRequest(targetID, requesterID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete friend request", err)
	}

	return nil
}

// RemoveFriend dissolves the friendship in both directions and deletes the
// shared conversation.
func (s *Service) RemoveFriend(userAID, userBID int64) error {
	friends, err := s.store.AreFriends(userAID, userBID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "look up friendship", err)
	}
	if !friends {
		return apperr.New(apperr.KindNotFound, "not friends")
	}

	if err := s.store.DeleteFriendship(userAID, userBID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete friendship", err)
	}

	return nil
}

func (s *Service) promote(userAID, userBID int64) error {
	conversationID, err := snowflake.Generate()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "generate conversation id", err)
	}

	if err := s.store.CreateFriendship(userAID, userBID, conversationID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "create friendship", err)
	}

	return nil
}
