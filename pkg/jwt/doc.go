// Package jwt issues and verifies the stateless session tokens handed to
// clients after login or email verification.
//
// Tokens are HMAC-SHA256 JWTs built on github.com/golang-jwt/jwt/v5 carrying
// the account ID and email plus issued-at/expiry claims (7 days by default).
// There is no server-side revocation list; logout is a client-side cookie
// delete, and every privileged request re-verifies the token.
package jwt
