package auth

import (
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. The salt is process-wide so the hash is deterministic
// given salt and password, which lets login recompute and compare instead of
// storing per-user salts.
const (
	saltMinLen   = 8
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// Hasher derives argon2id password hashes with a fixed, process-wide salt.
type Hasher struct {
	salt []byte
}

// NewHasher creates a Hasher with the given salt.
func NewHasher(salt string) (*Hasher, error) {
	if salt == "" {
		return nil, ErrSaltEmpty
	}

	if len(salt) < saltMinLen {
		return nil, ErrSaltTooShort
	}

	return &Hasher{salt: []byte(salt)}, nil
}

// Hash derives the argon2id hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrPasswordEmpty
	}

	key := argon2.IDKey([]byte(password), h.salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return base64.RawStdEncoding.EncodeToString(key), nil
}

// Verify recomputes the hash of password and compares it to hash in constant
// time. Returns false on any failure; it never reports why.
func (h *Hasher) Verify(password, hash string) bool {
	computed, err := h.Hash(password)
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
