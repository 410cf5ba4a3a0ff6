// Package argon2id hashes passwords into the PHC string format
// $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<key>.
package argon2id

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHash         = errors.New("the encoded hash is not in the correct format")
	ErrIncompatibleVersion = errors.New("incompatible version of argon2")
	ErrMismatchedPassword  = errors.New("password does not match hash")
)

type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultParams = Params{
	Memory:      64 * 1024,
	Iterations:  1,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

var b64 = base64.RawStdEncoding.Strict()

// EncodeHash hashes password with a fresh random salt.
func EncodeHash(password string, p Params) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("reading salt: %w", err)
	}
	return encode(p, salt, derive(password, p, salt)), nil
}

func derive(password string, p Params, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
}

func encode(p Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key))
}

type decoded struct {
	params Params
	salt   []byte
	key    []byte
}

func decode(encoded string) (decoded, error) {
	// The leading "$" yields an empty first field.
	fields := strings.Split(encoded, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return decoded{}, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(fields[2], "v=%d", &version); err != nil {
		return decoded{}, fmt.Errorf("%w: version: %w", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return decoded{}, ErrIncompatibleVersion
	}

	var d decoded
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d",
		&d.params.Memory, &d.params.Iterations, &d.params.Parallelism); err != nil {
		return decoded{}, fmt.Errorf("%w: parameters: %w", ErrInvalidHash, err)
	}

	var err error
	if d.salt, err = b64.DecodeString(fields[4]); err != nil {
		return decoded{}, fmt.Errorf("%w: salt: %w", ErrInvalidHash, err)
	}
	if d.key, err = b64.DecodeString(fields[5]); err != nil {
		return decoded{}, fmt.Errorf("%w: key: %w", ErrInvalidHash, err)
	}
	d.params.SaltLength = uint32(len(d.salt))
	d.params.KeyLength = uint32(len(d.key))
	return d, nil
}

// Compare returns nil when password matches encoded and
// ErrMismatchedPassword when it does not. The hash carries its own
// parameters.
func Compare(password, encoded string) error {
	d, err := decode(encoded)
	if err != nil {
		return fmt.Errorf("decoding hash: %w", err)
	}
	if subtle.ConstantTimeCompare(d.key, derive(password, d.params, d.salt)) != 1 {
		return ErrMismatchedPassword
	}
	return nil
}

// NeedsRehash reports whether encoded was produced with parameters other
// than p. Unreadable hashes always need a rehash.
func NeedsRehash(encoded string, p Params) bool {
	d, err := decode(encoded)
	if err != nil {
		return true
	}
	return d.params != p
}
