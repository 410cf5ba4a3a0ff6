package argon2id

import (
	"errors"
	"strings"
	"testing"
)

var testParams = Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestEncodeAndCompare(t *testing.T) {
	hash, err := EncodeHash("Correct-Horse-42", testParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Errorf("unexpected hash prefix: %q", hash)
	}

	if err := Compare("Correct-Horse-42", hash); err != nil {
		t.Errorf("expected password to match, got %v", err)
	}
	if err := Compare("correct-horse-42", hash); !errors.Is(err, ErrMismatchedPassword) {
		t.Errorf("expected ErrMismatchedPassword, got %v", err)
	}
}

func TestEncodeHash_FreshSalt(t *testing.T) {
	a, err := EncodeHash("same password", testParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := EncodeHash("same password", testParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Error("expected different hashes for the same password")
	}
}

func TestCompare_InvalidHash(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{name: "too few sections", hash: "$argon2id$v=19$m=8192,t=1,p=1$salt", wantErr: ErrInvalidHash},
		{name: "other algorithm", hash: "$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrInvalidHash},
		{name: "other version", hash: "$argon2id$v=16$m=8192,t=1,p=1$c2FsdA$aGFzaA", wantErr: ErrIncompatibleVersion},
		{name: "bad parameters", hash: "$argon2id$v=19$memory$c2FsdA$aGFzaA", wantErr: ErrInvalidHash},
		{name: "bad salt", hash: "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA", wantErr: ErrInvalidHash},
		{name: "plain text", hash: "hunter2", wantErr: ErrInvalidHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare("anything", tt.hash)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := EncodeHash("Correct-Horse-42", testParams)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if NeedsRehash(hash, testParams) {
		t.Error("expected no rehash for matching parameters")
	}
	stronger := testParams
	stronger.Iterations = 3
	if !NeedsRehash(hash, stronger) {
		t.Error("expected rehash for different parameters")
	}
	if !NeedsRehash("garbage", testParams) {
		t.Error("expected rehash for an unreadable hash")
	}
}
