package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteError writes err as a JSON error envelope. Errors that don't carry a
// status code are reported as a plain 500 without leaking the message.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		w.WriteHeader(e.StatusCode)
		json.NewEncoder(w).Encode(errorResponse{Error: e.Message, Code: e.Code})
		return
	}
	logger.Log.Error("internal error", "error", err)
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errorResponse{Error: "Internal server error"})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Warn("invalid request body", "error", err)
		return errors.BadRequest("Body is invalid json")
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		logger.Log.Warn("request body failed validation", "error", err)
		return errors.BadRequest("Required fields missing")
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Warn("invalid request body", "error", err)
		return errors.BadRequest("Body is invalid json")
	}
	return nil
}

// GetIP extracts the client address, preferring proxy headers.
func GetIP(r *http.Request) (string, error) {
	ip := r.Header.Get("X-REAL-IP")
	if net.ParseIP(ip) != nil {
		return ip, nil
	}

	ips := r.Header.Get("X-FORWARDED-FOR")
	for _, candidate := range strings.Split(ips, ",") {
		candidate = strings.TrimSpace(candidate)
		if net.ParseIP(candidate) != nil {
			return candidate, nil
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if net.ParseIP(ip) != nil {
		return ip, nil
	}
	return "", fmt.Errorf("no valid ip found")
}
