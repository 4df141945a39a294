// Package accounts owns the account deletion workflow. Deleting a user has
// to unwind every relationship before the user row goes away, in a fixed
// order, with any failing step aborting the rest.
package accounts

import (
	"go.uber.org/zap"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/database"
)

type Service struct {
	store database.Store
	sugar *zap.SugaredLogger
}

func NewService(store database.Store, sugar *zap.SugaredLogger) *Service {
	return &Service{store: store, sugar: sugar}
}

// Delete removes userID and everything hanging off it:
//
//  1. every friendship is dissolved symmetrically (each pair conversation
//     falls with it) and pending requests in both directions are cleared
//  2. owned servers are deleted outright, channels and messages with them;
//     memberships in other people's servers are removed
//  3. any remaining conversations involving the user are deleted
//  4. the user row itself is deleted
//
// The steps are not atomic as a whole; a failure aborts and reports,
// leaving the already completed steps in place.
func (s *Service) Delete(userID int64) error {
	friendIDs, err := s.store.ListFriendIDs(userID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "list friends", err)
	}
	for _, friendID := range friendIDs {
		if err := s.store.DeleteFriendship(userID, friendID); err != nil {
			return apperr.Wrap(apperr.KindInternal, "delete friendship", err)
		}
	}
	if err := s.store.DeleteFriendRequestsFor(userID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete friend requests", err)
	}

	servers, err := s.store.ListServersForUser(userID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "list servers", err)
	}
	for _, server := range servers {
		if server.OwnerID == userID {
			if err := s.store.DeleteServer(server.ID); err != nil {
				return apperr.Wrap(apperr.KindInternal, "delete server", err)
			}
			s.sugar.Infof("Deleted server [%d] owned by deleted user [%d]", server.ID, userID)
		} else {
			if err := s.store.RemoveServerMember(server.ID, userID); err != nil {
				return apperr.Wrap(apperr.KindInternal, "remove server member", err)
			}
		}
	}

	if err := s.store.DeleteConversationsFor(userID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete conversations", err)
	}

	if err := s.store.DeleteUser(userID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "delete user", err)
	}

	s.sugar.Infof("Deleted account [%d]", userID)
	return nil
}
