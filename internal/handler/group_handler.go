package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/service"
	"github.com/shiplog/backend/pkg/auth"
)

// GroupHandler はグループの HTTP ハンドラ
type GroupHandler struct {
	svc        service.GroupService
	cascadeSvc service.CascadeService
}

// NewGroupHandler は GroupHandler を生成する
func NewGroupHandler(svc service.GroupService, cascadeSvc service.CascadeService) *GroupHandler {
	return &GroupHandler{svc: svc, cascadeSvc: cascadeSvc}
}

// List は GET /api/groups を処理する（所属グループのみ）
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groups, err := h.svc.ListMine(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if groups == nil {
		groups = []*model.Group{}
	}

	writeJSON(w, http.StatusOK, map[string][]*model.Group{"groups": groups})
}

// Get は GET /api/groups/{id} をメンバー一覧付きで処理する
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	group, err := h.svc.GetByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, group)
}

// Create は POST /api/groups を処理する。作成者が最初の ADMIN になる。
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	group := &model.Group{
		OwnerID:     userID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	created, err := h.svc.Create(r.Context(), group)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update は PUT /api/groups/{id} を処理する（ADMIN のみ）
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	existing, err := h.svc.GetByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if existing.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	if err := h.svc.Update(r.Context(), userID, existing); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, existing)
}

// Delete は DELETE /api/groups/{id} を処理する（ADMIN のみ）。
// プロジェクトとの紐づけ解除を現メンバーに通知してから削除する。
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.cascadeSvc.DeleteGroup(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
