package user

import "time"

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

type User struct {
	ID           string     `json:"uid" gorm:"primaryKey;type:uuid"`
	UserName     string     `json:"userName" gorm:"not null"`
	Email        string     `json:"email" gorm:"unique;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         string     `json:"roles" gorm:"not null;default:'CLIENT'"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	NIC          string     `json:"nic"`
	BirthDate    *time.Time `json:"bDate,omitempty"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DirectoryEntry is the reduced shape the admin user list exposes.
type DirectoryEntry struct {
	ID       string `json:"uid"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Role     string `json:"roles"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	NIC       string     `json:"nic"`
	BirthDate *time.Time `json:"bDate,omitempty"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UserListResponse struct {
	Users []*DirectoryEntry `json:"users"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
