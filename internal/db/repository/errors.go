// Package repository implements the per-entity persistence contracts on top of
// the document store: natural-key validation, uniqueness pre-checks, canonical
// re-reads after insert, and opaque wrapping of store backend failures.
//
// The uniqueness pre-checks are a fast path only. They are read-then-write
// sequences with no cross-request guarantee; the unique indexes created at
// startup are the authoritative guard under concurrent inserts.
package repository

import "errors"

var (
	// ErrUserIDEmpty is returned when a user operation receives an empty id.
	ErrUserIDEmpty = errors.New("user id cannot be empty")
	// ErrUsernameEmpty is returned when a user operation receives an empty username.
	ErrUsernameEmpty = errors.New("username cannot be empty")
	// ErrEmailEmpty is returned when a user operation receives an empty email.
	ErrEmailEmpty = errors.New("email cannot be empty")
	// ErrRoleIDEmpty is returned when a role operation receives an empty id.
	ErrRoleIDEmpty = errors.New("role id cannot be empty")
	// ErrRoleNameEmpty is returned when a role operation receives an empty name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrPermissionIDEmpty is returned when a permission operation receives an empty id.
	ErrPermissionIDEmpty = errors.New("permission id cannot be empty")
	// ErrPermissionNameEmpty is returned when a permission operation receives an empty name.
	ErrPermissionNameEmpty = errors.New("permission name cannot be empty")
	// ErrIDListEmpty is returned when a batch lookup receives no ids.
	ErrIDListEmpty = errors.New("id list cannot be empty")

	// ErrUserNotFound is returned when no user matches the given id, username or email.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleNotFound is returned when no role matches the given id or name.
	ErrRoleNotFound = errors.New("role not found")
	// ErrPermissionNotFound is returned when no permission matches the given id or name.
	ErrPermissionNotFound = errors.New("permission not found")

	// ErrUsernameTaken is returned when another user already holds the username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when another user already holds the email address.
	ErrEmailTaken = errors.New("email already taken")
	// ErrRoleNameTaken is returned when another role already holds the name.
	ErrRoleNameTaken = errors.New("role name already taken")
	// ErrPermissionNameTaken is returned when another permission already holds the name.
	ErrPermissionNameTaken = errors.New("permission name already taken")
)

// IsValidation reports whether err denies an operation because a required
// natural-key field or id was empty.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrUserIDEmpty, ErrUsernameEmpty, ErrEmailEmpty,
		ErrRoleIDEmpty, ErrRoleNameEmpty,
		ErrPermissionIDEmpty, ErrPermissionNameEmpty,
		ErrIDListEmpty,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

// IsDuplicate reports whether err denies an operation because of a natural-key
// collision.
func IsDuplicate(err error) bool {
	for _, sentinel := range []error{
		ErrUsernameTaken, ErrEmailTaken, ErrRoleNameTaken, ErrPermissionNameTaken,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

// IsNotFound reports whether err denies an operation because the entity is absent.
func IsNotFound(err error) bool {
	for _, sentinel := range []error{
		ErrUserNotFound, ErrRoleNotFound, ErrPermissionNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
