package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not wiped: %v", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("fetch alerts: %w", ErrInvalidToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrapped sentinel lost: %v", err)
	}
	if errors.Is(err, ErrNoUserID) {
		t.Fatalf("unexpected match with unrelated sentinel")
	}
}
