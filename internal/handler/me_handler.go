package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/shiplog/backend/internal/model"
	"github.com/shiplog/backend/internal/repository"
	"github.com/shiplog/backend/internal/service"
	"github.com/shiplog/backend/pkg/auth"
)

// MeHandler は現在のユーザーに関するハンドラ
type MeHandler struct {
	userRepo      repository.UserRepository
	cascadeSvc    service.CascadeService
	sessionSecret []byte
}

// NewMeHandler は MeHandler を生成する
func NewMeHandler(userRepo repository.UserRepository, cascadeSvc service.CascadeService, sessionSecret []byte) *MeHandler {
	return &MeHandler{userRepo: userRepo, cascadeSvc: cascadeSvc, sessionSecret: sessionSecret}
}

// Register は POST /api/auth/register を処理する（認証不要）。
// トークン発行自体は外部の認証基盤が担うため、ここではユーザーレコードの
// 作成とセッションクッキーの発行のみを行う。
func (h *MeHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_input")
		return
	}

	// 既存ユーザーならセッションを貼り直すだけ
	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		user = &model.User{Email: req.Email, Name: req.Name}
		if err := h.userRepo.Create(r.Context(), user); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	token := auth.CreateSessionToken(user.ID, h.sessionSecret)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("ENV") == "production",
	})

	writeJSON(w, http.StatusCreated, user)
}

// Logout は POST /api/auth/logout を処理する
func (h *MeHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me は GET /api/me を処理する
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user_not_found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteMe は DELETE /api/me を処理する。アカウントと所有する
// プロジェクト・グループをまとめて削除する。
func (h *MeHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.cascadeSvc.DeleteUser(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
