package dto

// LocationRequest is the embedded location of a sign-up request. Latitude and
// longitude are required, the street address is optional.
type LocationRequest struct {
	StreetAddress string   `json:"streetAddress"`
	Latitude      *float64 `json:"latitude" binding:"required"`
	Longitude     *float64 `json:"longitude" binding:"required"`
}

// SignUpRequest represents a registration request
type SignUpRequest struct {
	Role               string           `json:"role" binding:"required"`
	FullName           string           `json:"fullName" binding:"required,max=100"`
	Email              string           `json:"email" binding:"required,email,max=255"`
	Password           string           `json:"password" binding:"required,min=6,max=100"`
	PhoneNumber        string           `json:"phoneNumber" binding:"required,max=20"`
	DateOfBirth        string           `json:"dateOfBirth" binding:"required"`
	Location           *LocationRequest `json:"location" binding:"required"`
	AccountType        string           `json:"accountType" binding:"required"`
	ServiceCategoryIDs []int64          `json:"serviceCategoryIds"`
	CustomServiceName  string           `json:"customServiceName" binding:"max=200"`
}

// SignInRequest represents a login request
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token to rotate
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest starts the password-reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password-reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=100"`
}

// UserRequest is the payload of the generic user CRUD service
type UserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password"`
}
