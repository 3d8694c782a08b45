package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for the domain errors of the job board:
identity/token lifecycle and advert/application lifecycle.
*/

// =========================================================================
// Factory functions (wrap repository errors)
// =========================================================================

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// =========================================================================
// Predefined variables (frequent, static errors)
// =========================================================================

// --- Identity & tokens ---

// ErrEmailAlreadyRegistered: registration attempted with an email that
// already belongs to a materialized User.
var ErrEmailAlreadyRegistered = New(
	CodeAlreadyExists,
	"accounts",
	"Email already registered.",
	http.StatusConflict,
)

// ErrInvalidVerificationCode: the (email, code) pair does not match a
// pending registration, or the 20-minute window has passed. The two cases
// are deliberately indistinguishable.
var ErrInvalidVerificationCode = New(
	CodeInvalidToken,
	"accounts",
	"Invalid or expired verification code.",
	http.StatusBadRequest,
)

// ErrInvalidCredentials: login failure. Unknown email and wrong password
// produce the same message.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"accounts",
	"Invalid email or password.",
	http.StatusUnauthorized,
)

// ErrEmailNotFound: password reset requested for an unregistered email.
var ErrEmailNotFound = New(
	CodeNotFound,
	"accounts",
	"Email not found.",
	http.StatusNotFound,
)

// ErrInvalidResetLink: the (email, token) pair does not match a stored
// reset token, or the token expired. Wrong token, wrong email and expiry
// all surface identically so the endpoint cannot be used for enumeration.
var ErrInvalidResetLink = New(
	CodeInvalidToken,
	"accounts",
	"Invalid or expired password reset link.",
	http.StatusBadRequest,
)

// ErrPasswordMismatch: new password and its confirmation differ.
var ErrPasswordMismatch = New(
	CodePasswordMismatch,
	"accounts",
	"Passwords do not match.",
	http.StatusBadRequest,
)

// --- Adverts & applications ---

// ErrAdvertOwnershipRequired: mutation of an advert by a non-owner.
var ErrAdvertOwnershipRequired = New(
	CodeForbidden,
	"jobs",
	"You do not have permission to modify this advert.",
	http.StatusForbidden,
)

// ErrApplicationsViewForbidden: only the advert owner may list its applications.
var ErrApplicationsViewForbidden = New(
	CodeForbidden,
	"jobs",
	"You do not have permission to view these applications.",
	http.StatusForbidden,
)

// ErrApplicationDecideForbidden: only the owning advert's creator may
// transition an application's status.
var ErrApplicationDecideForbidden = New(
	CodeForbidden,
	"jobs",
	"You do not have permission to change the status of this application.",
	http.StatusForbidden,
)

// ErrAlreadyApplied: one application per (advert, email).
var ErrAlreadyApplied = New(
	CodeAlreadyExists,
	"jobs",
	"You have already applied for this job.",
	http.StatusConflict,
)

// ErrUnknownApplicationStatus: decide called with a status outside the
// APPLIED / INTERVIEW_SCHEDULED / REJECTED set.
var ErrUnknownApplicationStatus = New(
	CodeInvalidStatus,
	"jobs",
	"Unknown application status.",
	http.StatusBadRequest,
)
