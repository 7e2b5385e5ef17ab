// Package register provides the HTTP handlers of the sign up form.
package register

const (
	// MsgInvalidFormData is shown when the submitted form cannot be parsed.
	MsgInvalidFormData = "Invalid form data"

	// MsgInvalidInput is shown when the username or password is rejected.
	MsgInvalidInput = "Username and password are required, the username may have at most 100 characters"

	// MsgUsernameTaken is shown when the username is already registered.
	MsgUsernameTaken = "Username is already taken"

	// MsgInternalServerError is shown for unexpected failures during sign up.
	MsgInternalServerError = "Internal server error, please try again later"
)
