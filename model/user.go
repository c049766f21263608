package model

import (
	"time"

	"github.com/tindaph/tindaph/constant"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserEntity represents a document in the users collection.
type UserEntity struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         constant.Role      `bson:"role" json:"role"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      *Address           `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

type Address struct {
	Street   string `bson:"street" json:"street"`
	Barangay string `bson:"barangay" json:"barangay"`
	City     string `bson:"city" json:"city"`
	Province string `bson:"province" json:"province"`
	Region   string `bson:"region" json:"region"`
}

// UserFilter for querying users
type UserFilter struct {
	ID    primitive.ObjectID
	Email string
}

// RegisterRequest for user registration
type RegisterRequest struct {
	Name     string        `json:"name" validate:"required"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=6"`
	Role     constant.Role `json:"role" validate:"omitempty"`
	Phone    string        `json:"phone"`
	Address  *Address      `json:"address"`
}

// LoginRequest for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo is the public view of a user returned by auth endpoints.
type UserInfo struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  constant.Role `json:"role"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}
