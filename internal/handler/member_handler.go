package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/service"
	"github.com/shiplog/backend/pkg/auth"
)

// MemberHandler はグループメンバーシップの HTTP ハンドラ
type MemberHandler struct {
	svc service.MembershipService
}

// NewMemberHandler は MemberHandler を生成する
func NewMemberHandler(svc service.MembershipService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

// List は GET /api/groups/{id}/members を処理する（メンバーのみ）
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	members, err := h.svc.ListMembers(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if members == nil {
		members = []*model.GroupMember{}
	}

	writeJSON(w, http.StatusOK, map[string][]*model.GroupMember{"members": members})
}

// Invite は POST /api/groups/{id}/members を処理する
// （JOINED の MAINTAINER 以上のみ）。招待は PENDING で作られ、
// 招待されたユーザーに INVITED_GROUP のチェンジログが届く。
func (h *MemberHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email_required")
		return
	}
	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleDeveloper
	}
	if !role.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_role")
		return
	}

	member, err := h.svc.Invite(r.Context(), userID, r.PathValue("id"), req.Email, role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

// ChangeRole は PATCH /api/groups/{id}/members/{uid}/role を処理する（ADMIN のみ）
func (h *MemberHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	role := model.Role(req.Role)
	if !role.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_role")
		return
	}

	if err := h.svc.ChangeRole(r.Context(), userID, r.PathValue("uid"), r.PathValue("id"), role); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Remove は DELETE /api/groups/{id}/members/{uid} を処理する。
// 自分自身を指定した場合は脱退、他人を指定した場合は除名（ADMIN のみ）。
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	groupID := r.PathValue("id")
	targetID := r.PathValue("uid")

	var err error
	if targetID == userID {
		err = h.svc.LeaveGroup(r.Context(), userID, groupID)
	} else {
		err = h.svc.RemoveMember(r.Context(), userID, targetID, groupID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Accept は POST /api/groups/{id}/invitation/accept を処理する
// （PENDING → JOINED）
func (h *MemberHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.AcceptInvitation(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Decline は POST /api/groups/{id}/invitation/decline を処理する
func (h *MemberHandler) Decline(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.DeclineInvitation(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
