package dto

// AuthResponse represents an authentication response. Optional fields are
// omitted rather than emitted as explicit nulls.
type AuthResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message,omitempty"`
	AccessToken  string        `json:"accessToken,omitempty"`
	RefreshToken string        `json:"refreshToken,omitempty"`
	ExpiresIn    int64         `json:"expiresIn,omitempty"`
	User         *UserResponse `json:"user,omitempty"`
}

// LocationResponse mirrors the embedded location of a user
type LocationResponse struct {
	StreetAddress string  `json:"streetAddress,omitempty"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// CategoryResponse represents a service category
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UserResponse is the sanitized user view: it never carries the password hash.
type UserResponse struct {
	ID                int64              `json:"id"`
	Role              string             `json:"role"`
	FullName          string             `json:"fullName"`
	Email             string             `json:"email"`
	PhoneNumber       string             `json:"phoneNumber,omitempty"`
	DateOfBirth       string             `json:"dateOfBirth,omitempty"`
	Location          *LocationResponse  `json:"location,omitempty"`
	AccountType       string             `json:"accountType,omitempty"`
	ServiceCategories []CategoryResponse `json:"serviceCategories,omitempty"`
	CustomServiceName string             `json:"customServiceName,omitempty"`
	CreatedAt         string             `json:"createdAt,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
