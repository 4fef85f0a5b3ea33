package auth_test

import (
	"testing"

	"cryptocortex/auth"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "Common password", password: "secret1"},
		{name: "Single character", password: "x"},
		{name: "Long password with symbols", password: "correct horse battery staple !@#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := auth.HashPassword(tt.password)
			if err != nil {
				t.Fatalf("HashPassword() error = %v", err)
			}
			if hash == tt.password {
				t.Fatal("HashPassword() returned the plaintext")
			}
			if !auth.CheckPassword(tt.password, hash) {
				t.Error("CheckPassword() = false for the original plaintext, want true")
			}
			if auth.CheckPassword(tt.password+"x", hash) {
				t.Error("CheckPassword() = true for a different plaintext, want false")
			}
		})
	}
}

func TestHashPasswordSaltIsRandom(t *testing.T) {
	first, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := auth.HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if first == second {
		t.Error("hashing the same plaintext twice produced identical hashes")
	}
}

func TestCheckPasswordRejectsGarbageHash(t *testing.T) {
	if auth.CheckPassword("secret1", "not-a-bcrypt-hash") {
		t.Error("CheckPassword() = true for a malformed hash, want false")
	}
}
