package controllers

import (
	"testing"

	"barnearbeid/services"
)

func TestGetUserIDFromToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := services.GenerateToken(services.UserInfo{UserId: 42, Role: 1}, 5, true)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	userID, role, err := GetUserIDFromToken(token)
	if err != nil {
		t.Fatalf("GetUserIDFromToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
	if role != 1 {
		t.Errorf("role = %d, want 1", role)
	}
}

func TestGetUserIDFromTokenRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "abc"},
		{"wrong segment count", "a.b"},
		{"bad payload", "aaa.!!!.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := GetUserIDFromToken(tt.token); err == nil {
				t.Fatalf("expected error for %q", tt.token)
			}
		})
	}
}
