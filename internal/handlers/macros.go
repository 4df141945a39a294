package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/authz"
	"communityapp-backend/internal/models"
)

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.KindValidation, "invalid "+name)
	}
	return id, nil
}

// requireServerAccess checks the caller's permission level against the
// server's member rows, freshly loaded on every call.
func requireServerAccess(userID, serverID int64, requiredLevel int) error {
	members, err := store.ListServerMembers(serverID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "list server members", err)
	}

	if !authz.CanAccess(members, userID, requiredLevel) {
		sugar.Warnf("User ID [%d] was denied level %d access on server ID [%d]", userID, requiredLevel, serverID)
		return apperr.New(apperr.KindPermission, "insufficient permission level")
	}

	return nil
}

// requireChannelAccess resolves the channel and verifies the caller clears
// its permission level within the owning server.
func requireChannelAccess(userID, channelID int64) (models.Channel, error) {
	channel, err := store.GetChannel(channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Channel{}, apperr.New(apperr.KindNotFound, "channel not found")
	} else if err != nil {
		return models.Channel{}, apperr.Wrap(apperr.KindInternal, "get channel", err)
	}

	if err := requireServerAccess(userID, channel.ServerID, channel.PermissionLevel); err != nil {
		return models.Channel{}, err
	}

	return channel, nil
}

func getServer(serverID int64) (models.Server, error) {
	server, err := store.GetServer(serverID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Server{}, apperr.New(apperr.KindNotFound, "server not found")
	} else if err != nil {
		return models.Server{}, apperr.Wrap(apperr.KindInternal, "get server", err)
	}
	return server, nil
}
