package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	sessionCookieName = "shiplog_session"
	minSecretLen      = 32

	// SessionTTL はトークンとクッキーの有効期間
	SessionTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenMalformed = errors.New("malformed session token")
	ErrTokenSignature = errors.New("invalid session token signature")
	ErrTokenExpired   = errors.New("session token expired")
)

// CreateSessionToken はユーザー ID と発行時刻から HMAC 署名付きの
// セッショントークンを生成する。形式は base64(userID:issuedAtUnix).hexSig。
func CreateSessionToken(userID string, secret []byte) string {
	payload := fmt.Sprintf("%s:%d", userID, time.Now().Unix())
	return base64.URLEncoding.EncodeToString([]byte(payload)) + "." + sign([]byte(payload), secret)
}

// VerifySessionToken は署名と有効期限を検証し、ユーザー ID を返す
func VerifySessionToken(token string, secret []byte) (string, error) {
	encoded, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrTokenMalformed
	}
	payload, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrTokenMalformed
	}
	if !hmac.Equal([]byte(sign(payload, secret)), []byte(sig)) {
		return "", ErrTokenSignature
	}

	userID, issuedStr, ok := strings.Cut(string(payload), ":")
	if !ok || userID == "" {
		return "", ErrTokenMalformed
	}
	issued, err := strconv.ParseInt(issuedStr, 10, 64)
	if err != nil {
		return "", ErrTokenMalformed
	}
	if time.Since(time.Unix(issued, 0)) > SessionTTL {
		return "", ErrTokenExpired
	}
	return userID, nil
}

func sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SessionCookieName はセッションクッキー名
func SessionCookieName() string {
	return sessionCookieName
}

// SessionSecretBytes は文字列からセッション署名用のバイト列を生成する。
// 短い秘密鍵は 32 バイトまでゼロ埋めされる。
func SessionSecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
