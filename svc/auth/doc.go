// Package auth implements the account lifecycle for the portfolio builder:
// signup with email verification by 6-digit one-time code, login, code
// resend, and password reset by code, with stateless JWT sessions.
//
// Design properties worth knowing before touching this code:
//
//   - One-time codes live on the account row and expire 10 minutes after
//     issuance. Redeeming one is a conditional UPDATE, so it works at most
//     once even when requests race.
//   - Email verification is monotonic: once verified, an account never goes
//     back, and no code path re-sets a verification code on it.
//   - ResendVerification and ForgotPassword answer identically whether or not
//     the account exists, and Login returns one error for unknown email and
//     wrong password. These are deliberate anti-enumeration measures; keep
//     them intact when changing response or logging behavior.
//   - Sessions are signed tokens with a 7-day expiry and no server-side
//     state. Logout is purely the client dropping the cookie.
package auth
