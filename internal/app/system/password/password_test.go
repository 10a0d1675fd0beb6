package password_test

import (
	"errors"
	"testing"

	"github.com/pitchside/pitchside/internal/app/system/password"
)

func TestHashAndVerify(t *testing.T) {
	h := password.NewHasher(10)

	hash, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals plaintext")
	}

	if err := h.Verify(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Verify with correct password failed: %v", err)
	}

	err = h.Verify(hash, "wrong password")
	if !errors.Is(err, password.ErrMismatch) {
		t.Errorf("Verify with wrong password: got %v, want ErrMismatch", err)
	}
}

func TestNewHasher_OutOfRangeCost(t *testing.T) {
	// Absurd costs fall back to a sane default rather than failing at use.
	h := password.NewHasher(99)
	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if err := h.Verify(hash, "pw"); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}
