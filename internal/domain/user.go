package domain

import "time"

// Role classifies an account. MAHIR is the service-provider role; only
// providers carry service categories or a custom service name.
type Role string

const (
	RoleUser  Role = "USER"
	RoleMahir Role = "MAHIR"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleMahir
}

// AccountType is the subscription tier of an account.
type AccountType string

const (
	AccountFreemium AccountType = "FREEMIUM"
	AccountPremium  AccountType = "PREMIUM"
)

// ValidAccountType reports whether t is one of the known tiers.
func ValidAccountType(t AccountType) bool {
	return t == AccountFreemium || t == AccountPremium
}

// Location is an optional address embedded in a user record.
type Location struct {
	StreetAddress string  `json:"street_address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

// User represents a user in the system. CreatedAt is assigned on insert and
// never updated afterwards.
type User struct {
	ID                int64       `json:"id"`
	FullName          string      `json:"full_name"`
	Email             string      `json:"email"`
	PasswordHash      string      `json:"-"`
	PhoneNumber       *string     `json:"phone_number"`
	DateOfBirth       *time.Time  `json:"date_of_birth"`
	Location          *Location   `json:"location"`
	AccountType       AccountType `json:"account_type"`
	Role              Role        `json:"role"`
	ServiceCategories []Category  `json:"service_categories"`
	CustomServiceName *string     `json:"custom_service_name"`
	CreatedAt         time.Time   `json:"created_at"`
}

// Category is read-only reference data describing a kind of service.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PasswordResetToken is a single-use credential-recovery artifact. At most
// one live token exists per user; issuing a new one removes all prior ones.
type PasswordResetToken struct {
	ID        int64     `json:"id"`
	Token     string    `json:"-"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the reset token has passed its expiry instant.
func (t PasswordResetToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
