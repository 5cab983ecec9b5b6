package services

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/km-arc/go-container/framework/database"
)

// User is the record returned by UserService.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

var nextUserID atomic.Int64

// UserService simulates user management on top of a logger and a database
// connection.
type UserService struct {
	logger      Logger
	db          *database.Connection
	serviceName string
}

func NewUserService(logger Logger, db *database.Connection, serviceName string) *UserService {
	return &UserService{logger: logger, db: db, serviceName: serviceName}
}

func (s *UserService) CreateUser(username, email string) User {
	s.logger.Log(fmt.Sprintf("Creating user: %s with email: %s", username, email))

	user := User{
		ID:        nextUserID.Add(1),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	s.logger.Log(fmt.Sprintf("User created successfully with ID: %d", user.ID))
	return user
}

func (s *UserService) GetUser(id int64) User {
	s.logger.Log(fmt.Sprintf("Fetching user with ID: %d", id))

	return User{
		ID:        id,
		Username:  "john_doe",
		Email:     "john@example.com",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *UserService) ServiceName() string { return s.serviceName }

// DatabaseInfo reports where the service's connection points.
func (s *UserService) DatabaseInfo() map[string]string {
	return map[string]string{
		"host":     s.db.Host(),
		"database": s.db.Database(),
	}
}

func (s *UserService) Logger() Logger { return s.logger }
