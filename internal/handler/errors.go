package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shiplog/backend/internal/service"
)

// writeJSON は JSON レスポンスを書き出す
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError は安定したエラーコードを JSON で返す
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeServiceError はサービス層の型付きエラーを HTTP ステータスと
// エラーコードに変換する
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "not_authorized")
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition")
	case errors.Is(err, service.ErrDuplicateVersion):
		writeError(w, http.StatusConflict, "duplicate_version")
	case errors.Is(err, service.ErrAlreadyMember):
		writeError(w, http.StatusConflict, "already_member")
	case errors.Is(err, service.ErrNoSuchInvitation):
		writeError(w, http.StatusNotFound, "no_such_invitation")
	case errors.Is(err, service.ErrLastAdminProtection):
		writeError(w, http.StatusConflict, "last_admin_protection")
	case errors.Is(err, service.ErrMissingGroupContext):
		writeError(w, http.StatusBadRequest, "missing_group_context")
	case errors.Is(err, service.ErrCrossProjectMove):
		writeError(w, http.StatusConflict, "cross_project_move")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input")
	case errors.Is(err, service.ErrPartialFanout):
		writeError(w, http.StatusInternalServerError, "fanout_failed")
	default:
		slog.Error("unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}
