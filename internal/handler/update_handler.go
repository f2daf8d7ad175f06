package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/service"
	"github.com/shiplog/backend/pkg/auth"
)

// UpdateHandler はアップデートとそのチェンジノートの HTTP ハンドラ
type UpdateHandler struct {
	svc service.UpdateService
}

// NewUpdateHandler は UpdateHandler を生成する
func NewUpdateHandler(svc service.UpdateService) *UpdateHandler {
	return &UpdateHandler{svc: svc}
}

// updateResponse は Update に導出フィールドを足したレスポンス。
// development_days は PUBLISHED のときのみ意味を持つ（それ以外は -1）。
type updateResponse struct {
	*model.Update
	DevelopmentDays int `json:"development_days"`
}

func toUpdateResponse(u *model.Update) updateResponse {
	return updateResponse{Update: u, DevelopmentDays: u.DevelopmentDays()}
}

// inProject はアップデートが指定プロジェクトに属するかを検証し、
// 属さない場合は 404 を書き出して false を返す
func (h *UpdateHandler) inProject(w http.ResponseWriter, r *http.Request, userID string) (*model.Update, bool) {
	update, err := h.svc.GetByID(r.Context(), userID, r.PathValue("uid"))
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	if update.ProjectID != r.PathValue("id") {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return update, true
}

// List は GET /api/projects/{id}/updates を処理する
func (h *UpdateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	updates, err := h.svc.ListByProjectID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]updateResponse, 0, len(updates))
	for _, u := range updates {
		resp = append(resp, toUpdateResponse(u))
	}

	writeJSON(w, http.StatusOK, map[string][]updateResponse{"updates": resp})
}

// Get は GET /api/projects/{id}/updates/{uid} をチェンジノート付きで処理する
func (h *UpdateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	update, ok := h.inProject(w, r, userID)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, toUpdateResponse(update))
}

// Schedule は POST /api/projects/{id}/updates を処理する。
// SCHEDULED 状態のアップデートを作成し、初期チェンジノートを一括登録する。
func (h *UpdateHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		TargetVersion string   `json:"target_version"`
		Notes         []string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	update, err := h.svc.Schedule(r.Context(), userID, r.PathValue("id"), req.TargetVersion, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUpdateResponse(update))
}

// Start は PATCH /api/projects/{id}/updates/{uid}/start を処理する
// （SCHEDULED → IN_DEVELOPMENT）
func (h *UpdateHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if _, ok := h.inProject(w, r, userID); !ok {
		return
	}

	update, err := h.svc.Start(r.Context(), userID, r.PathValue("uid"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUpdateResponse(update))
}

// Publish は PATCH /api/projects/{id}/updates/{uid}/publish を処理する
// （IN_DEVELOPMENT → PUBLISHED）。version を省略すると target_version で公開する。
func (h *UpdateHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if _, ok := h.inProject(w, r, userID); !ok {
		return
	}

	var req struct {
		Version string `json:"version"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}
	}

	update, err := h.svc.Publish(r.Context(), userID, r.PathValue("uid"), req.Version)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUpdateResponse(update))
}

// Delete は DELETE /api/projects/{id}/updates/{uid} を処理する。
// どの状態からでも削除でき、チェンジノートも一緒に消える。
func (h *UpdateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if _, ok := h.inProject(w, r, userID); !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), userID, r.PathValue("uid")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// AddNote は POST /api/projects/{id}/updates/{uid}/notes を処理する
func (h *UpdateHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if _, ok := h.inProject(w, r, userID); !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	note, err := h.svc.AddNote(r.Context(), userID, r.PathValue("uid"), req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// MarkNoteDone は PATCH /api/projects/{id}/updates/{uid}/notes/{nid}/done を処理する
func (h *UpdateHandler) MarkNoteDone(w http.ResponseWriter, r *http.Request) {
	h.noteStatus(w, r, true)
}

// MarkNoteTodo は PATCH /api/projects/{id}/updates/{uid}/notes/{nid}/todo を処理する
func (h *UpdateHandler) MarkNoteTodo(w http.ResponseWriter, r *http.Request) {
	h.noteStatus(w, r, false)
}

func (h *UpdateHandler) noteStatus(w http.ResponseWriter, r *http.Request, done bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if _, ok := h.inProject(w, r, userID); !ok {
		return
	}

	var err error
	if done {
		err = h.svc.MarkNoteDone(r.Context(), userID, r.PathValue("uid"), r.PathValue("nid"))
	} else {
		err = h.svc.MarkNoteTodo(r.Context(), userID, r.PathValue("uid"), r.PathValue("nid"))
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// MoveNote は PATCH /api/projects/{id}/updates/{uid}/notes/{nid}/move を処理する。
// 移動先は同一プロジェクト内のアップデートに限られる。
func (h *UpdateHandler) MoveNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if _, ok := h.inProject(w, r, userID); !ok {
		return
	}

	var req struct {
		DestUpdateID string `json:"dest_update_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.DestUpdateID == "" {
		writeError(w, http.StatusBadRequest, "dest_update_id_required")
		return
	}

	if err := h.svc.MoveNote(r.Context(), userID, r.PathValue("uid"), r.PathValue("nid"), req.DestUpdateID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteNote は DELETE /api/projects/{id}/updates/{uid}/notes/{nid} を処理する
func (h *UpdateHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if _, ok := h.inProject(w, r, userID); !ok {
		return
	}

	if err := h.svc.DeleteNote(r.Context(), userID, r.PathValue("uid"), r.PathValue("nid")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
