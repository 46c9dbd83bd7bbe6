package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid email or password"
	errEmailNotVerified   = "Email address is not verified"
	errEmailTaken         = "Email is already registered"
	errUsernameTaken      = "Username is already taken"
	errCodeInvalid        = "Verification code is invalid or expired"
	errEmailSend          = "Failed to send verification email"
)
