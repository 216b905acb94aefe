// Package account exposes the auth service as a JSON API: signup, email
// verification, code resend, login, password reset and logout. Successful
// verification and login set the session token as an HTTP-only cookie in
// addition to returning it in the body.
package account
