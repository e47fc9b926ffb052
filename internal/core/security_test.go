// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash format = %q", hash)
	}

	ok, err := VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("same password")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("anything", "not-a-hash"); err == nil {
		t.Error("malformed hash accepted")
	}
	if _, err := VerifyPassword("anything", "$bcrypt$v=19$x$y$z"); err == nil {
		t.Error("foreign algorithm accepted")
	}
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatal(err)
	}

	ok, err := VerifyPasswordTimingSafe("secret", &hash)
	if err != nil || !ok {
		t.Errorf("stored hash: ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPasswordTimingSafe("secret", nil)
	if err != nil {
		t.Errorf("nil hash: err=%v", err)
	}
	if ok {
		t.Error("nil hash verified")
	}

	empty := ""
	ok, err = VerifyPasswordTimingSafe("secret", &empty)
	if err != nil {
		t.Errorf("empty hash: err=%v", err)
	}
	if ok {
		t.Error("empty hash verified")
	}
}

func TestGenerateInviteToken(t *testing.T) {
	token, tokenHash, err := GenerateInviteToken()
	if err != nil {
		t.Fatalf("GenerateInviteToken() error = %v", err)
	}

	if token == "" || tokenHash == "" {
		t.Fatal("empty token or hash")
	}
	if token == tokenHash {
		t.Error("hash equals the raw token")
	}
	if HashToken(token) != tokenHash {
		t.Error("hash does not match the token")
	}
	if !CompareTokenHash(token, tokenHash) {
		t.Error("CompareTokenHash rejected its own token")
	}
	if CompareTokenHash("some other token", tokenHash) {
		t.Error("CompareTokenHash accepted a foreign token")
	}

	other, _, err := GenerateInviteToken()
	if err != nil {
		t.Fatal(err)
	}
	if other == token {
		t.Error("two generated tokens are identical")
	}
}
