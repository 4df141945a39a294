package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/models"
	"communityapp-backend/internal/snowflake"
)

// GetConversation returns the private conversation with another user
// together with its messages. Conversations only exist between friends.
func GetConversation(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	otherID, err := parseIDParam(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	friends, err := store.AreFriends(id, otherID)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "look up friendship", err))
		return
	}
	if !friends {
		writeError(w, apperr.New(apperr.KindPermission, "you can only message friends"))
		return
	}

	conversation, err := store.GetConversation(id, otherID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, apperr.New(apperr.KindNotFound, "conversation not found"))
		return
	} else if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "get conversation", err))
		return
	}

	messages, err := store.ListConversationMessages(conversation.ID)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "list conversation messages", err))
		return
	}

	type ConversationResponse struct {
		Conversation models.Conversation     `json:"conversation"`
		Messages     []models.PrivateMessage `json:"messages"`
	}

	writeData(w, http.StatusOK, ConversationResponse{
		Conversation: conversation,
		Messages:     messages,
	})
}

func CreatePrivateMessage(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	type AddPrivateMessageRequest struct {
		UserID  int64  `json:"userID,string" validate:"required"`
		Message string `json:"message" validate:"required,max=4000"`
	}

	var req AddPrivateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "malformed request body", err))
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "invalid message fields", err))
		return
	}

	friends, err := store.AreFriends(id, req.UserID)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "look up friendship", err))
		return
	}
	if !friends {
		writeError(w, apperr.New(apperr.KindPermission, "you can only message friends"))
		return
	}

	conversation, err := store.GetConversation(id, req.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, apperr.New(apperr.KindNotFound, "conversation not found"))
		return
	} else if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "get conversation", err))
		return
	}

	messageID, err := snowflake.Generate()
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "generate message id", err))
		return
	}

	pm := models.PrivateMessage{
		ID:             messageID,
		ConversationID: conversation.ID,
		UserID:         id,
		Message:        req.Message,
	}

	if err := store.CreatePrivateMessage(pm); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "create private message", err))
		return
	}

	writeCreated(w, fmt.Sprintf("/api/dm/fetch?userID=%d", req.UserID), pm)
}
