package handlers

import (
	"net/http"

	"communityapp-backend/internal/apperr"
)

func SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	requesterID := userID(r)

	targetID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	state, err := relationsService.SendFriendRequest(targetID, requesterID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, state)
}

func AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	targetID := userID(r)

	requesterID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := relationsService.AcceptFriendRequest(targetID, requesterID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func RejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	targetID := userID(r)

	requesterID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := relationsService.RejectFriendRequest(targetID, requesterID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func RemoveFriend(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	friendID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := relationsService.RemoveFriend(id, friendID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func GetFriendList(w http.ResponseWriter, r *http.Request) {
	friends, err := store.ListFriends(userID(r))
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "list friends", err))
		return
	}

	writeData(w, http.StatusOK, friends)
}

// GetFriendRequests lists the users with a pending request towards the
// caller.
func GetFriendRequests(w http.ResponseWriter, r *http.Request) {
	requesters, err := store.ListFriendRequests(userID(r))
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "list friend requests", err))
		return
	}

	writeData(w, http.StatusOK, requesters)
}
