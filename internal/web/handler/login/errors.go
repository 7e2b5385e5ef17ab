// Package login provides the HTTP handlers of the login form.
//
// This file defines the messages shown to the user on a failed login.
package login

const (
	// MsgInvalidFormData is shown when the submitted form cannot be parsed.
	MsgInvalidFormData = "Invalid form data"

	// MsgInvalidCredentials is shown for an unknown username and for a wrong
	// password alike.
	MsgInvalidCredentials = "Invalid username or password"

	// MsgInternalServerError is shown for unexpected failures during the login.
	MsgInternalServerError = "Internal server error, please try again later"
)
