package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"communityapp-backend/internal/apperr"
)

type envelope struct {
	Data   any               `json:"data,omitempty"`
	Error  string            `json:"error,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeData(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(envelope{Data: v}); err != nil {
		sugar.Errorf("json encode: %v", err)
	}
}

// writeCreated answers 201 with a Location header for the new resource.
func writeCreated(w http.ResponseWriter, location string, v any) {
	w.Header().Set("Location", location)
	writeData(w, http.StatusCreated, v)
}

// writeError translates a domain error into its status code and a
// client-safe message. Internal causes get logged and masked.
func writeError(w http.ResponseWriter, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		sugar.Error(err)
	} else {
		sugar.Debug(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.Status(err))
	if encodeErr := json.NewEncoder(w).Encode(envelope{Error: apperr.PublicMessage(err)}); encodeErr != nil {
		sugar.Errorf("json encode: %v", encodeErr)
	}
}

func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(envelope{Error: "validation_failed", Fields: fields}); err != nil {
		sugar.Errorf("json encode: %v", err)
	}
}

type userIDKeyType struct{}

// userID returns the authenticated user's id placed into the request
// context by UserVerifier. Routes behind the middleware always have it.
func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKeyType{}).(int64)
	return id
}

func Test(w http.ResponseWriter, r *http.Request) {
	if _, err := fmt.Fprint(w, "Hello world!"); err != nil {
		sugar.Error(err)
	}
}
