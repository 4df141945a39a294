package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/jwt"
	"communityapp-backend/internal/keyValue"
)

func GetUserInfo(w http.ResponseWriter, r *http.Request) {
	requesterID := userID(r)

	paramUserID := r.URL.Query().Get("userID")
	if paramUserID == "" {
		writeError(w, apperr.New(apperr.KindValidation, "missing userID"))
		return
	}

	var requestedUserID int64
	if paramUserID == "self" {
		requestedUserID = requesterID
	} else {
		var err error
		requestedUserID, err = strconv.ParseInt(paramUserID, 10, 64)
		if err != nil {
			writeError(w, apperr.New(apperr.KindValidation, "invalid userID"))
			return
		}
	}

	user, err := store.GetUserByID(requestedUserID)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, apperr.New(apperr.KindNotFound, "user not found"))
		return
	} else if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "get user", err))
		return
	}

	// email and theme stay private
	if requestedUserID != requesterID {
		user.Email = ""
		user.Theme = ""
	}

	writeData(w, http.StatusOK, user)
}

func UpdateUserInfo(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	type UpdateRequest struct {
		DisplayName string `json:"displayName" validate:"required,max=64"`
		Bio         string `json:"bio" validate:"max=512"`
		Theme       string `json:"theme" validate:"max=16"`
	}

	var update UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "malformed request body", err))
		return
	}

	if err := validate.Struct(update); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "invalid profile fields", err))
		return
	}

	if err := store.UpdateUserProfile(id, update.DisplayName, update.Bio, update.Theme); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "update profile", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAccount runs the cascading deletion workflow, then invalidates the
// caller's session cookie and cached existence flag.
func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := userID(r)

	if err := accountsService.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	if err := keyValue.Del(fmt.Sprintf("user_exists:%d", id)); err != nil {
		sugar.Errorf("drop user_exists cache: %v", err)
	}

	http.SetCookie(w, jwt.DeleteCookie())
	w.WriteHeader(http.StatusNoContent)
}
