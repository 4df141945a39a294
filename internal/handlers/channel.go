package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/authz"
	"communityapp-backend/internal/models"
	"communityapp-backend/internal/snowflake"
)

func CreateChannel(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	type CreateChannelRequest struct {
		ServerID        int64  `json:"serverID,string" validate:"required"`
		Name            string `json:"name" validate:"required,max=32"`
		Description     string `json:"description" validate:"max=256"`
		PermissionLevel int    `json:"permissionLevel" validate:"min=1,max=9"`
	}

	var req CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "malformed request body", err))
		return
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "invalid channel fields", err))
		return
	}

	if _, err := getServer(req.ServerID); err != nil {
		writeError(w, err)
		return
	}

	// channel management needs moderator level or better
	if err := requireServerAccess(id, req.ServerID, authz.LevelModerator); err != nil {
		writeError(w, err)
		return
	}

	channelID, err := snowflake.Generate()
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "generate channel id", err))
		return
	}

	channel := models.Channel{
		ID:              channelID,
		ServerID:        req.ServerID,
		Name:            req.Name,
		Description:     req.Description,
		PermissionLevel: req.PermissionLevel,
	}

	if err := store.CreateChannel(channel); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "create channel", err))
		return
	}

	writeCreated(w, fmt.Sprintf("/api/channel/fetch?serverID=%d", req.ServerID), channel)
}

// GetChannelList returns the server's channels the caller's permission
// level can see.
func GetChannelList(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	serverID, err := parseIDParam(r, "serverID")
	if err != nil {
		writeError(w, err)
		return
	}

	members, err := store.ListServerMembers(serverID)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "list server members", err))
		return
	}

	level, isMember := authz.MemberLevel(members, id)
	if !isMember {
		writeError(w, apperr.New(apperr.KindPermission, "you are not a member of this server"))
		return
	}

	channels, err := store.ListChannels(serverID)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "list channels", err))
		return
	}

	visible := []models.Channel{}
	for _, channel := range channels {
		if level >= channel.PermissionLevel {
			visible = append(visible, channel)
		}
	}

	writeData(w, http.StatusOK, visible)
}

func DeleteChannel(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	channelID, err := parseIDParam(r, "channelID")
	if err != nil {
		writeError(w, err)
		return
	}

	channel, err := store.GetChannel(channelID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, apperr.New(apperr.KindNotFound, "channel not found"))
		return
	} else if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "get channel", err))
		return
	}

	if err := requireServerAccess(id, channel.ServerID, authz.LevelModerator); err != nil {
		writeError(w, err)
		return
	}

	channels, err := store.ListChannels(channel.ServerID)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "list channels", err))
		return
	}

	// a server is never left with zero channels
	if len(channels) <= 1 {
		writeError(w, apperr.New(apperr.KindValidation, "can't delete the last channel of a server"))
		return
	}

	if err := store.DeleteChannel(channelID); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "delete channel", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
