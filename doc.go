// Package main provides the entry point for the identity and authorization
// service. It runs a web server using the Fiber framework exposing
// registration, login and current-user endpoints backed by a MongoDB document
// store. Every repository operation, reads included, is preceded by a write
// to an append-only audit ledger; a failed ledger write denies the operation.
package main
