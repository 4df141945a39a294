package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	playgroundValidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/email"
	"communityapp-backend/internal/jwt"
	"communityapp-backend/internal/keyValue"
	"communityapp-backend/internal/models"
	"communityapp-backend/internal/snowflake"
	"communityapp-backend/internal/validator"
)

func Login(w http.ResponseWriter, r *http.Request) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var login LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "malformed request body", err))
		return
	}

	user, err := store.GetUserByEmail(login.Email)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, apperr.New(apperr.KindAuthentication, "wrong email or password"))
		return
	} else if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "get user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(login.Password)); err != nil {
		writeError(w, apperr.New(apperr.KindAuthentication, "wrong email or password"))
		return
	}

	cookie, err := jwt.CreateToken(r.URL.Query().Get("rememberMe") == "true", user.ID)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "create token", err))
		return
	}

	http.SetCookie(w, &cookie)
	user.Password = nil
	writeData(w, http.StatusOK, user)
}

func Register(w http.ResponseWriter, r *http.Request) {
	registerErrors := make(map[string]string)

	type RegistrationRequest struct {
		Email           string `json:"email" validate:"required,email"`
		Username        string `json:"username" validate:"required"`
		Password        string `json:"password" validate:"eqfield=ConfirmPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}

	var registration RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "malformed request body", err))
		return
	}

	if err := validate.Struct(registration); err != nil {
		var validateErrs playgroundValidator.ValidationErrors
		if errors.As(err, &validateErrs) {
			for _, e := range validateErrs {
				registerErrors[e.Field()] = e.Tag()
			}
		} else {
			writeError(w, apperr.Wrap(apperr.KindInternal, "validate registration", err))
			return
		}
	}

	if err := validator.Email(registration.Email); err != nil {
		registerErrors["Email"] = err.Error()
	}
	if err := validator.Username(registration.Username); err != nil {
		registerErrors["Username"] = err.Error()
	}
	if err := validator.Password(registration.Password); err != nil {
		registerErrors["Password"] = err.Error()
	}

	if len(registerErrors) != 0 {
		writeFieldErrors(w, registerErrors)
		return
	}

	newUserID, err := snowflake.Generate()
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "generate user id", err))
		return
	}

	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(registration.Password), 12)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "hash password", err))
		return
	}

	token, err := uuid.NewV7()
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "generate token", err))
		return
	}

	user := models.User{
		ID:          newUserID,
		Email:       registration.Email,
		UserName:    registration.Username,
		DisplayName: registration.Username,
		Password:    passwordBytes,
	}

	bytes, err := json.Marshal(user)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "marshal pending user", err))
		return
	}

	// the user row is only inserted once the confirmation link is clicked
	err = keyValue.Set(fmt.Sprintf("registration:%s", token.String()), string(bytes), 1*time.Hour)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "store pending registration", err))
		return
	}

	err = email.SendEmailConfirmation(registration.Email, registration.Username, token.String())
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "send confirmation email", err))
		return
	}

	writeData(w, http.StatusOK, "confirm_email")
}

func ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	urlToken := r.URL.Query().Get("token")
	if urlToken == "" {
		writeError(w, apperr.New(apperr.KindValidation, "missing token"))
		return
	}

	token, err := url.QueryUnescape(urlToken)
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindValidation, "malformed token", err))
		return
	}

	value, err := keyValue.GetDel(fmt.Sprintf("registration:%s", token))
	if err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "read pending registration", err))
		return
	}

	if value == "" {
		writeError(w, apperr.New(apperr.KindAuthentication, "token isn't valid"))
		return
	}

	var user models.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "unmarshal pending user", err))
		return
	}

	if err := store.CreateUser(user); err != nil {
		writeError(w, apperr.Wrap(apperr.KindInternal, "create user", err))
		return
	}

	sugar.Infof("User [%s] confirmed their email", user.UserName)
	http.Redirect(w, r, "/login", http.StatusMovedPermanently)
}

func Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, jwt.DeleteCookie())
	w.WriteHeader(http.StatusNoContent)
}
