package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-auth-api/internal/model"
	"github.com/BuzzLyutic/task-auth-api/internal/repo"
)

type seedUser struct {
	username string
	email    string
	password string
	role     model.Role
}

var defaultUsers = []seedUser{
	{username: "admin", email: "admin@example.com", password: "admin123", role: model.RoleAdmin},
	{username: "john_doe", email: "john.doe@example.com", password: "john1234", role: model.RoleUser},
	{username: "jane_doe", email: "jane.doe@example.com", password: "jane5678", role: model.RoleUser},
	{username: "manager", email: "manager@example.com", password: "manager2024", role: model.RoleManager},
}

// Seeder creates the default accounts on a fresh database.
type Seeder struct {
	users  repo.UserRepository
	hasher PasswordHasher
	logger *zap.Logger
}

func NewSeeder(users repo.UserRepository, hasher PasswordHasher, logger *zap.Logger) *Seeder {
	return &Seeder{users: users, hasher: hasher, logger: logger}
}

// SeedDefaultUsers is a no-op once a user named "admin" exists.
func (s *Seeder) SeedDefaultUsers(ctx context.Context) error {
	exists, err := s.users.ExistsByUsername(ctx, "admin")
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if exists {
		s.logger.Info("Users already exist, skipping initialization")
		return nil
	}

	s.logger.Info("Initializing default users...")
	users := make([]model.User, 0, len(defaultUsers))
	for _, su := range defaultUsers {
		hash, err := s.hasher.Hash(su.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.username, err)
		}
		users = append(users, model.User{
			Username:     su.username,
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
		})
	}

	// все или никого
	if _, err := s.users.CreateMany(ctx, users); err != nil {
		return fmt.Errorf("create default users: %w", err)
	}
	s.logger.Info("Default users initialized successfully", zap.Int("count", len(defaultUsers)))
	return nil
}
