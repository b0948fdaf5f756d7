package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nanaopoku/church-admin-api/crud"
	"github.com/nanaopoku/church-admin-api/storage"
)

// parseID parses the identity path segment. Identities are the opaque
// integers assigned at creation time.
func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// deleteConfirmed reads the confirmation gate from the request. The
// presentation layer asks the user yes/no and passes the answer along;
// anything but confirm=true counts as declining.
func deleteConfirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true"
}

// statusForError maps orchestrator and storage errors onto HTTP status
// codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, crud.ErrSessionOpen):
		return http.StatusConflict
	case errors.Is(err, crud.ErrNoSession), errors.Is(err, crud.ErrKindMismatch),
		errors.Is(err, crud.ErrUnknownKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type deleteResponse struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}
