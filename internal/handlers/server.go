package handlers

import (
	"fmt"
	"net/http"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/authz"
	"communityapp-backend/internal/models"
	"communityapp-backend/internal/snowflake"
)

func CreateServer(w http.ResponseWriter, r *http.Request) {
	ownerID := userID(r)

	serverName := r.URL.Query().Get("name")
	if serverName == "" {
		serverName = "My server"
	}

	serverID, err := snowflake.Generate()
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "generate server id", err))
		return
	}

	channelID, err := snowflake.Generate()
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "generate channel id", err))
		return
	}

	server := models.Server{
		ID:      serverID,
		OwnerID: ownerID,
		Name:    serverName,
	}

	// the default channel rides in the same transaction, a server never
	// exists without at least one channel
	general := models.Channel{
		ID:              channelID,
		ServerID:        serverID,
		Name:            "general",
		PermissionLevel: authz.LevelMember,
	}

	if err := store.CreateServer(server, general); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "create server", err))
		return
	}

	writeCreated(w, fmt.Sprintf("/api/server/fetch?serverID=%d", serverID), server)
}

func GetServerList(w http.ResponseWriter, r *http.Request) {
	servers, err := store.ListServersForUser(userID(r))
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "list servers", err))
		return
	}

	writeData(w, http.StatusOK, servers)
}

func DeleteServer(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	serverID, err := parseIDParam(r, "serverID")
	if err != nil {
		writeError(w, err)
		return
	}

	server, err := getServer(serverID)
	if err != nil {
		writeError(w, err)
		return
	}

	if server.OwnerID != id {
		sugar.Warnf("User ID [%d] tried to delete server ID [%d] they don't own", id, serverID)
		writeError(w, apperr.New(apperr.KindPermission, "you don't own this server"))
		return
	}

	if err := store.DeleteServer(serverID); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "delete server", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func RenameServer(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	serverID, err := parseIDParam(r, "serverID")
	if err != nil {
		writeError(w, err)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, apperr.New(apperr.KindValidation, "server name can't be empty"))
		return
	}

	server, err := getServer(serverID)
	if err != nil {
		writeError(w, err)
		return
	}

	if server.OwnerID != id {
		writeError(w, apperr.New(apperr.KindPermission, "you don't own this server"))
		return
	}

	if err := store.RenameServer(serverID, name); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "rename server", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func JoinServer(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	serverID, err := parseIDParam(r, "serverID")
	if err != nil {
		writeError(w, err)
		return
	}

	server, err := getServer(serverID)
	if err != nil {
		writeError(w, err)
		return
	}

	members, err := store.ListServerMembers(serverID)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "list server members", err))
		return
	}

	if _, isMember := authz.MemberLevel(members, id); isMember {
		writeError(w, apperr.New(apperr.KindValidation, "already a member"))
		return
	}

	if err := store.AddServerMember(serverID, id, authz.LevelMember); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "add server member", err))
		return
	}

	writeData(w, http.StatusOK, server)
}

func LeaveServer(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	serverID, err := parseIDParam(r, "serverID")
	if err != nil {
		writeError(w, err)
		return
	}

	server, err := getServer(serverID)
	if err != nil {
		writeError(w, err)
		return
	}

	// the owner's entry always stays at the maximum level, deleting the
	// account or the server is the only way out
	if server.OwnerID == id {
		writeError(w, apperr.New(apperr.KindValidation, "the owner can't leave their own server"))
		return
	}

	if err := store.RemoveServerMember(serverID, id); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "remove server member", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func GetMemberList(w http.ResponseWriter, r *http.Request) {
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

	if !authz.CanAccess(members, id, authz.LevelMember) {
		writeError(w, apperr.New(apperr.KindPermission, "you are not a member of this server"))
		return
	}

	writeData(w, http.StatusOK, members)
}
