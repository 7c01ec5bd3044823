package auth

import "errors"

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found")

// ErrDuplicateUser is the error for signup attempts with a taken email
var ErrDuplicateUser = errors.New("user already exists")

// ErrInvalidCredentials covers both unknown identifiers and bad
// passwords, callers must not tell the two apart
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTokenInvalid covers every token verification failure: bad
// signature, expired, malformed, missing subject
var ErrTokenInvalid = errors.New("invalid token")

// ErrMismatchedHashAndPassword is the expected compare failure for a
// wrong password; any other compare error is an engine fault
var ErrMismatchedHashAndPassword = errors.New("password does not match hash")

// ErrNoEmptyString guards hashing empty passwords
var ErrNoEmptyString = errors.New("string must not be empty")
