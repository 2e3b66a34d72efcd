package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/talkincode/shopcore/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	user := &domain.SysUser{ID: 12345, Username: "alice", Level: domain.LevelStaff}

	token, err := IssueToken(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := VerifyToken(token, "secret")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Level != user.Level {
		t.Errorf("claims = {%d %s}, want {%d %s}", claims.UserID, claims.Level, user.ID, user.Level)
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	user := &domain.SysUser{ID: 1, Username: "alice", Level: domain.LevelStaff}
	token, err := IssueToken(user, "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	cases := map[string]string{
		"wrong secret": token,
		"garbage":      "not.a.token",
		"empty":        "",
		"truncated":    token[:len(token)-5],
	}
	for name, tok := range cases {
		secret := "secret"
		if name == "wrong secret" {
			secret = "other"
		}
		if _, err := VerifyToken(tok, secret); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	user := &domain.SysUser{ID: 1, Username: "alice", Level: domain.LevelStaff}
	token, err := IssueToken(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := VerifyToken(token, "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token accepted: %v", err)
	}
}
