package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/service"
	"github.com/shiplog/backend/pkg/auth"
)

// ProjectHandler はプロジェクトの HTTP ハンドラ
type ProjectHandler struct {
	svc        service.ProjectService
	assocSvc   service.AssociationService
	cascadeSvc service.CascadeService
}

// NewProjectHandler は ProjectHandler を生成する
func NewProjectHandler(svc service.ProjectService, assocSvc service.AssociationService, cascadeSvc service.CascadeService) *ProjectHandler {
	return &ProjectHandler{svc: svc, assocSvc: assocSvc, cascadeSvc: cascadeSvc}
}

// List は GET /api/projects を処理する。所有プロジェクトと、JOINED の
// グループに紐づくプロジェクトを返す。
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projects, err := h.svc.ListVisible(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}

	writeJSON(w, http.StatusOK, map[string][]*model.Project{"projects": projects})
}

// ListOwned は GET /api/me/projects を処理する
func (h *ProjectHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projects, err := h.svc.ListOwned(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}

	writeJSON(w, http.StatusOK, map[string][]*model.Project{"projects": projects})
}

// Get は GET /api/projects/{id} を処理する
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	project, err := h.svc.GetByID(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// Create は POST /api/projects を処理する
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		RepositoryURL string `json:"repository_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	project := &model.Project{
		OwnerID:       userID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		RepositoryURL: req.RepositoryURL,
	}
	created, err := h.svc.Create(r.Context(), project)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Update は PUT /api/projects/{id} を処理する（所有者のみ）。
// version はここでは変更できない。アップデート公開の副作用としてのみ変わる。
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	projectID := r.PathValue("id")

	existing, err := h.svc.GetByID(r.Context(), userID, projectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var req struct {
		Name          *string `json:"name"`
		Description   *string `json:"description"`
		RepositoryURL *string `json:"repository_url"`
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
	if req.RepositoryURL != nil {
		existing.RepositoryURL = *req.RepositoryURL
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

// Delete は DELETE /api/projects/{id} を処理する（所有者のみ）。
// アップデート・チェンジノート・グループとの紐づけも連鎖的に消える。
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.cascadeSvc.DeleteProject(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// EditGroups は PUT /api/projects/{id}/groups を処理する（所有者のみ）。
// リクエストのグループ集合を目標状態として、現状との差分だけを適用する。
func (h *ProjectHandler) EditGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		GroupIDs []string `json:"group_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	projectID := r.PathValue("id")
	if err := h.assocSvc.EditProjectGroups(r.Context(), userID, projectID, req.GroupIDs); err != nil {
		writeServiceError(w, err)
		return
	}

	groupIDs, err := h.assocSvc.GroupsOf(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if groupIDs == nil {
		groupIDs = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"group_ids": groupIDs})
}
