package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/service"
	"github.com/shiplog/backend/pkg/auth"
)

// NoteHandler は個人ノートの HTTP ハンドラ
type NoteHandler struct {
	svc service.NoteService
}

// NewNoteHandler は NoteHandler を生成する
func NewNoteHandler(svc service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// List は GET /api/notes を処理する
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	notes, err := h.svc.ListPersonal(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if notes == nil {
		notes = []*model.Note{}
	}

	writeJSON(w, http.StatusOK, map[string][]*model.Note{"notes": notes})
}

// Create は POST /api/notes を処理する
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	note, err := h.svc.Create(r.Context(), userID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// MarkDone は PATCH /api/notes/{id}/done を処理する
func (h *NoteHandler) MarkDone(w http.ResponseWriter, r *http.Request) {
	h.status(w, r, true)
}

// MarkTodo は PATCH /api/notes/{id}/todo を処理する
func (h *NoteHandler) MarkTodo(w http.ResponseWriter, r *http.Request) {
	h.status(w, r, false)
}

func (h *NoteHandler) status(w http.ResponseWriter, r *http.Request, done bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var err error
	if done {
		err = h.svc.MarkDone(r.Context(), userID, r.PathValue("id"))
	} else {
		err = h.svc.MarkTodo(r.Context(), userID, r.PathValue("id"))
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete は DELETE /api/notes/{id} を処理する
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
