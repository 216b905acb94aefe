// Package email provides transactional email delivery behind a minimal
// EmailSender interface.
//
// Two implementations ship with the package: a Postmark client
// (github.com/mrz1836/postmark) for real delivery and a filesystem DevSender
// for local development. CodeMailer sits on top of either and renders the
// verification-code and password-reset-code messages used by the auth flows.
package email
