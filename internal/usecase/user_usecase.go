package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
)

type UserUseCase interface {
	Register(username, password, email, firstName, lastName string) (*domain.User, error)
	Authenticate(username, password string) (*domain.User, error)
	GetUserByID(id int) (*domain.User, error)
	GetUserByUsername(username string) (*domain.User, error)
}

type userUseCase struct {
	userRepo domain.UserRepository
	log      *logrus.Logger
}

func NewUserUseCase(repo domain.UserRepository, logger *logrus.Logger) UserUseCase {
	return &userUseCase{
		userRepo: repo,
		log:      logger,
	}
}

func (uc *userUseCase) Register(username, password, email, firstName, lastName string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(username) < 3 {
		return nil, fmt.Errorf("username must be at least 3 characters: %w", domain.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", domain.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address: %w", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: failed to hash password for %s: %v", username, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	created, err := uc.userRepo.CreateUser(&domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
	})
	if err != nil {
		uc.log.Warnf("Use Case: repository failed to create user %s: %v", username, err)
		return nil, err
	}

	uc.log.Infof("Use Case: user registered with ID %d, username %s", created.ID, created.Username)
	return created, nil
}

func (uc *userUseCase) Authenticate(username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("invalid username or password: %w", domain.ErrUnauthorized)
	}

	user, err := uc.userRepo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: authentication failed, user not found: %s", username)
			return nil, fmt.Errorf("invalid username or password: %w", domain.ErrUnauthorized)
		}
		uc.log.Errorf("Use Case: error retrieving user %s during authentication: %v", username, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: authentication failed, incorrect password for %s", username)
			return nil, fmt.Errorf("invalid username or password: %w", domain.ErrUnauthorized)
		}
		uc.log.Errorf("Use Case: error comparing password hash for %s: %v", username, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	uc.log.Infof("Use Case: authentication successful for user %s (ID %d)", username, user.ID)
	return user, nil
}

func (uc *userUseCase) GetUserByID(id int) (*domain.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid user id: %w", domain.ErrValidation)
	}
	return uc.userRepo.GetUserByID(id)
}

func (uc *userUseCase) GetUserByUsername(username string) (*domain.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty: %w", domain.ErrValidation)
	}
	return uc.userRepo.GetUserByUsername(username)
}
