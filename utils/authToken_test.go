package utils

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	token, err := GenerateAccessToken("admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("username = %q, want admin", claims.Username)
	}
	if claims.Role != RoleAdmin {
		t.Errorf("role = %q, want %q", claims.Role, RoleAdmin)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")

	if _, err := ValidateToken("v2.local.not-a-real-token"); err == nil {
		t.Error("ValidateToken should reject an undecryptable token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword(hashed, "s3cret-pass") {
		t.Error("CheckPassword should accept the original password")
	}
	if CheckPassword(hashed, "wrong") {
		t.Error("CheckPassword should reject a wrong password")
	}
}
