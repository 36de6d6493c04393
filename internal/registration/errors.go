package registration

// Error codes returned to callers. One code per violated rule; the first
// failing check in the documented order wins.
const (
	CodeMissingFullName    = "MISSING_FULL_NAME"
	CodeMissingEmail       = "MISSING_EMAIL"
	CodeInvalidEmail       = "INVALID_EMAIL"
	CodeMissingPhone       = "MISSING_PHONE"
	CodeInvalidPhone       = "INVALID_PHONE"
	CodeMissingDepartment  = "MISSING_DEPARTMENT"
	CodeInvalidDepartment  = "INVALID_DEPARTMENT"
	CodeMissingDesignation = "MISSING_DESIGNATION"
	CodeInvalidDesignation = "INVALID_DESIGNATION"
	CodeMissingExperience  = "MISSING_EXPERIENCE"
	CodeInvalidExperience  = "INVALID_EXPERIENCE"
	CodeMissingUsername    = "MISSING_USERNAME"
	CodeInvalidUsername    = "INVALID_USERNAME"
	CodeMissingPassword    = "MISSING_PASSWORD"
	CodeWeakPassword       = "WEAK_PASSWORD"
	CodePasswordMismatch   = "PASSWORD_MISMATCH"
	CodeTermsNotAccepted   = "TERMS_NOT_ACCEPTED"
	CodeInvalidDateOfBirth = "INVALID_DATE_OF_BIRTH"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeFacultyIDExists    = "FACULTY_ID_EXISTS"
	CodeInvalidStatus      = "INVALID_STATUS"
)

// Error is a registration rule violation with a stable machine-readable code
// and a caller-safe message
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// IsDuplicateCode reports whether the code signals a uniqueness collision
func IsDuplicateCode(code string) bool {
	switch code {
	case CodeEmailExists, CodeUsernameExists, CodeFacultyIDExists:
		return true
	}
	return false
}
