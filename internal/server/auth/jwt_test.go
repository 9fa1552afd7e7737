package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mzhadan/pomotrack/internal/common"
)

func TestToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("u-42", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	userID, err := GetUserIDFromToken(token, secret)
	if err != nil {
		t.Fatalf("GetUserIDFromToken error: %v", err)
	}
	if userID != "u-42" {
		t.Fatalf("want subject u-42, got %q", userID)
	}
}

func TestToken_WrongKey(t *testing.T) {
	token, err := GenerateToken("u-42", []byte("key-a"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(token, []byte("key-b"))
	if !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("want ErrorInvalidToken, got %v", err)
	}
}

func TestToken_Expired(t *testing.T) {
	token, err := GenerateToken("u-42", []byte("k"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetUserIDFromToken(token, []byte("k"))
	if !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("want ErrorInvalidToken for expired token, got %v", err)
	}
}

func TestToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not-a-token", []byte("k"))
	if !errors.Is(err, common.ErrorInvalidToken) {
		t.Fatalf("want ErrorInvalidToken, got %v", err)
	}
}
