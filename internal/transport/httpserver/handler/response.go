package handler

import (
	"encoding/json"
	"net/http"

	"roomies-go/internal/apperr"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// decodeRawJSON decodes into a map, keeping field presence observable for
// partial updates.
func decodeRawJSON(r *http.Request, dst *map[string]any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func remarshal(raw map[string]any, dst interface{}) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, dst)
}

// respondError is the single translation point from domain errors to HTTP.
// Unclassified errors are treated as internal and their details never leak
// to the client.
func (h *Handlers) respondError(w http.ResponseWriter, err error, op string, args ...any) {
	appErr := apperr.From(err)
	if appErr == nil || appErr.Kind == apperr.KindInternal {
		h.log.InternalError(op+" failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.log.BusinessError(op+": "+appErr.Code, err, args...)
	writeError(w, statusForKind(appErr.Kind), appErr.Code, appErr.Message)
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindAuthorization:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
