package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"communityapp-backend/internal/apperr"
	"communityapp-backend/internal/jwt"
	"communityapp-backend/internal/keyValue"
)

// UserVerifier authenticates the request from the JWT cookie and puts the
// user's id into the context. Anonymous requests are turned away here,
// before any handler touches membership or relationship data.
func UserVerifier(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jwtCookie, err := r.Cookie("JWT")
		if err != nil {
			writeError(w, apperr.New(apperr.KindAuthentication, "no session"))
			return
		}

		userToken, err := jwt.VerifyToken(jwtCookie.Value)
		if err != nil {
			sugar.Debug(err)
			writeError(w, apperr.New(apperr.KindAuthentication, "invalid session"))
			return
		}

		userFound, err := userExists(userToken.UserID)
		if err != nil {
			writeError(w, apperr.Wrap(apperr.KindInternal, "look up user", err))
			return
		}

		// the account may have been deleted while the browser kept the
		// cookie, drop the token in that case
		if !userFound {
			http.SetCookie(w, jwt.DeleteCookie())
			writeError(w, apperr.New(apperr.KindAuthentication, "unknown user"))
			return
		}

		// renew JWT and cookie
		timeSinceIssued := time.Now().UTC().Sub(userToken.IssuedAt.Time)
		if timeSinceIssued >= 15*time.Minute {
			updatedCookie, err := jwt.CreateToken(userToken.Remember, userToken.UserID)
			if err != nil {
				writeError(w, apperr.Wrap(apperr.KindInternal, "renew cookie", err))
				return
			}

			http.SetCookie(w, &updatedCookie)
		}

		ctx := context.WithValue(r.Context(), userIDKeyType{}, userToken.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userExists consults the key/value cache before hitting the database, and
// caches a positive answer for 15 minutes. Only existence gets cached here,
// permission levels are always read fresh.
func userExists(id int64) (bool, error) {
	key := fmt.Sprintf("user_exists:%d", id)

	value, err := keyValue.Get(key)
	if err != nil {
		return false, err
	}
	if value != "" {
		return true, nil
	}

	found, err := store.UserExists(id)
	if err != nil {
		return false, err
	}

	if found {
		if err := keyValue.Set(key, "y", 15*time.Minute); err != nil {
			return false, err
		}
	}

	return found, nil
}
