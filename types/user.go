package types

// Role is the authorization level encoded in the session token.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents an account as returned by the admin user endpoints.
type User struct {
	// ID is the unique identifier of the user.
	ID int64 `json:"id"`

	// Email is the address the user authenticates with.
	Email string `json:"email"`

	// DisplayName is the public name shown to other users.
	DisplayName string `json:"displayName"`

	// Role indicates the user's authorization level, either "USER"
	// or "ADMIN".
	Role Role `json:"role"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`

	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// Profile is the editable slice of the current user's account, fetched
// and updated through /users/profile.
type Profile struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// UserCreate is the registration payload.
type UserCreate struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
}

// AdminUserUpdate is the payload for the admin user-management endpoint.
// Password is optional; when empty the backend keeps the current one.
type AdminUserUpdate struct {
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
}
