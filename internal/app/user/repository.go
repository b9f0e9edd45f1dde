package user

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(user *User) error
	GetUserByID(id string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetAllUsers() ([]*User, error)
	GetFirstUserByRole(role string) (*User, error)
	UpdateProfile(userID string, fields map[string]interface{}) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(user *User) error {
	return r.db.Create(user).Error
}

func (r *repository) GetUserByID(id string) (*User, error) {
	var user User
	err := r.db.Where("id = ?", id).First(&user).Error
	return &user, err
}

func (r *repository) GetUserByEmail(email string) (*User, error) {
	var user User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *repository) GetAllUsers() ([]*User, error) {
	var users []*User
	err := r.db.
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) GetFirstUserByRole(role string) (*User, error) {
	var user User
	err := r.db.
		Where("role = ?", role).
		Order("created_at ASC").
		First(&user).Error
	return &user, err
}

func (r *repository) UpdateProfile(userID string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Updates(fields).Error
}
