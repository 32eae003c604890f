package filemanager

// Team is a shared space. Immutable here.
type Team struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	MemberCount int    `json:"member_count" yaml:"member_count"`
	IsPublic    bool   `json:"is_public" yaml:"is_public"`
}

// UserRole is an organisational role, unrelated to item permissions
type UserRole string

const (
	UserRoleManager UserRole = "manager"
	UserRoleMember  UserRole = "member"
)

// User is a known person in the dataset
type User struct {
	ID    string   `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Email string   `json:"email" yaml:"email"`
	Role  UserRole `json:"role" yaml:"role"`
	Teams []string `json:"teams" yaml:"teams"`
}

// Actor is whoever is performing the current operation
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
