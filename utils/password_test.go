package utils

import (
	"strings"
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		encoded, err := HashPassword("s3cret-passphrase")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if !VerifyPassword(encoded, "s3cret-passphrase") {
			t.Fatal("correct password did not verify")
		}
		if VerifyPassword(encoded, "wrong-passphrase") {
			t.Fatal("wrong password verified")
		}
	})

	t.Run("stored form is hash:salt", func(t *testing.T) {
		encoded, err := HashPassword("abc")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if strings.Count(encoded, ":") != 1 {
			t.Fatalf("expected one separator in %q", encoded)
		}
	})

	t.Run("same password gets a different salt each time", func(t *testing.T) {
		first, err := HashPassword("abc")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		second, err := HashPassword("abc")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if first == second {
			t.Fatal("two hashes of the same password were identical")
		}
	})

	t.Run("malformed encodings never verify", func(t *testing.T) {
		for _, encoded := range []string{"", "nosalt", "a:b:c", "!!!:???"} {
			if VerifyPassword(encoded, "whatever") {
				t.Fatalf("malformed encoding %q verified", encoded)
			}
		}
	})
}
