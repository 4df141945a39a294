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

func CreateMessage(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	type AddMessageRequest struct {
		Message   string `json:"message" validate:"required,max=4000"`
		ChannelID int64  `json:"channelID,string" validate:"required"`
	}

	var req AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "malformed request body", err))
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "invalid message fields", err))
		return
	}

	// posting requires clearing the channel's permission level
	if _, err := requireChannelAccess(id, req.ChannelID); err != nil {
		writeError(w, err)
		return
	}

	messageID, err := snowflake.Generate()
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "generate message id", err))
		return
	}

	msg := models.Message{
		ID:        messageID,
		ChannelID: req.ChannelID,
		UserID:    id,
		Message:   req.Message,
	}

	if err := store.CreateMessage(msg); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "create message", err))
		return
	}

	writeCreated(w, fmt.Sprintf("/api/message/fetch?channelID=%d", req.ChannelID), msg)
}

func GetMessageList(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	channelID, err := parseIDParam(r, "channelID")
	if err != nil {
		writeError(w, err)
		return
	}

	if _, err := requireChannelAccess(id, channelID); err != nil {
		writeError(w, err)
		return
	}

	messages, err := store.ListMessages(channelID)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "list messages", err))
		return
	}

	writeData(w, http.StatusOK, messages)
}

func DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	messageID, err := parseIDParam(r, "messageID")
	if err != nil {
		writeError(w, err)
		return
	}

	msg, err := store.GetMessage(messageID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, apperr.New(apperr.KindNotFound, "message not found"))
		return
	} else if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "get message", err))
		return
	}

	if msg.UserID != id {
		sugar.Warnf("User ID [%d] tried to delete message ID [%d] they didn't write", id, messageID)
		writeError(w, apperr.New(apperr.KindPermission, "you can only delete your own messages"))
		return
	}

	if err := store.DeleteMessage(messageID); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "delete message", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
