package handler

import (
	"net/http"
	"strconv"

	"github.com/shiplog/backend/internal/service"
	"github.com/shiplog/backend/pkg/auth"
)

// ChangelogHandler はチェンジログ（通知）の HTTP ハンドラ
type ChangelogHandler struct {
	svc service.ChangelogService
}

// NewChangelogHandler は ChangelogHandler を生成する
func NewChangelogHandler(svc service.ChangelogService) *ChangelogHandler {
	return &ChangelogHandler{svc: svc}
}

// List は GET /api/changelogs を処理する。
// ?page= と ?page_size= で新しい順にページングし、未読件数も返す。
func (h *ChangelogHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.svc.List(r.Context(), userID, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// MarkRead は PATCH /api/changelogs/{id}/read を処理する（冪等）
func (h *ChangelogHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.MarkRead(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete は DELETE /api/changelogs/{id} を処理する。
// INVITED_GROUP のチェンジログは ?group_id= が必須で、削除と同時に
// そのグループの招待も辞退される。
func (h *ChangelogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groupID := r.URL.Query().Get("group_id")
	if err := h.svc.Delete(r.Context(), userID, r.PathValue("id"), groupID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
