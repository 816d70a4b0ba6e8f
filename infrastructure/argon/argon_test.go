package argon

import (
	"errors"
	"testing"
)

var fastParams = &Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestCreateAndCompare(t *testing.T) {
	hash, err := CreateHash("secret-pass", fastParams)
	if err != nil {
		t.Fatalf("create hash: %v", err)
	}
	ok, err := ComparePasswordAndHash("secret-pass", hash)
	if err != nil {
		t.Fatalf("compare hash: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to match")
	}

	ok, err = ComparePasswordAndHash("wrong", hash)
	if err != nil {
		t.Fatalf("compare hash wrong: %v", err)
	}
	if ok {
		t.Fatalf("expected password mismatch")
	}
}

func TestEmptyPasswordRejected(t *testing.T) {
	if _, err := CreateHash("   ", nil); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestCompareInvalidHash(t *testing.T) {
	for _, h := range []string{"", "plain", "$argon2i$v=19$m=1,t=1,p=1$c2FsdA$a2V5", "$argon2id$v=19$m=x$c2FsdA$a2V5"} {
		if _, err := ComparePasswordAndHash("x", h); !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("hash %q: expected ErrInvalidHash, got %v", h, err)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := CreateHash("secret-pass", fastParams)
	if err != nil {
		t.Fatalf("create hash: %v", err)
	}
	if NeedsRehash(hash, fastParams) {
		t.Fatalf("hash made with fastParams should not need rehash against fastParams")
	}
	if !NeedsRehash(hash, DefaultParams) {
		t.Fatalf("hash made with fastParams should need rehash against DefaultParams")
	}
}
