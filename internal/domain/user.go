package domain

type UserRole string

const (
	UserRoleRenter UserRole = "renter"
	UserRoleHubber UserRole = "hubber"
	UserRoleAdmin  UserRole = "admin"
)

type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	CreatedOn    string   `json:"created_on"`
}
