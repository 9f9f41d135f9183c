package app

import "errors"

var (
	// ErrInvalidCredentials is shown to end users and must not enable
	// account enumeration.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	ErrEmailExists       = errors.New("User with this email already exists")
	ErrEmailInUse        = errors.New("Email already in use")
	ErrAlreadyRegistered = errors.New("User is already registered")

	// ErrUserDisabled is returned when a token resolves to a missing or
	// deactivated account.
	ErrUserDisabled = errors.New("user disabled")

	ErrForbidden = errors.New("Access denied")

	ErrUnsupportedMediaType = errors.New("Only audio and video files are allowed")
	ErrNoFile               = errors.New("No file uploaded")

	ErrValueRequired = errors.New("Either value or increment must be provided")
)
