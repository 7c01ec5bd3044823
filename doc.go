// Package auth implements a minimal authentication backend: signup,
// login, and stateless bearer-token issuance over HTTP.
//
// Credential handling:
//   - Passwords are hashed with bcrypt (random per-call salt) and never
//     stored, logged, or returned in plaintext. A compare failure that is
//     not a mismatch is an engine fault and surfaces as an internal error.
//   - Tokens are HS256 JWTs carrying a fixed {subject, expiry} payload,
//     valid for 24 hours from issuance. There is no revocation: possession
//     of a valid unexpired token is sufficient for access.
//
// Boundaries:
//   - Auther orchestrates signup (create-if-absent) and login
//     (verify-then-issue) on top of the Users store and TokenService.
//   - middleware/jwtware is the per-request gate for protected routes; it
//     attaches the resolved user to the request context or short-circuits.
package auth
