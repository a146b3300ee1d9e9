// Package auth implements the authentication gateway: salted password
// hashing, session-token issuance and verification, and the login, register
// and current-user flows on top of the audited services.
//
// All identity state lives in the document store; the only artifact carried
// between requests is the self-contained signed token. The salt and signing
// key are injected at construction and never mutated afterwards.
package auth
