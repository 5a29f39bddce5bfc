package repository

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type memoryUserRepository struct {
	mu     sync.RWMutex
	items  map[int]domain.User
	nextID int
	log    *logrus.Logger
}

func NewMemoryUserRepository(logger *logrus.Logger) domain.UserRepository {
	return &memoryUserRepository{
		items:  make(map[int]domain.User),
		nextID: 1,
		log:    logger,
	}
}

func (r *memoryUserRepository) CreateUser(user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Username == user.Username {
			r.log.Warnf("Repository: attempted to create user with duplicate username: %s", user.Username)
			return nil, fmt.Errorf("user with username '%s': %w", user.Username, domain.ErrAlreadyExists)
		}
	}

	created := *user
	created.ID = r.nextID
	r.nextID++
	r.items[created.ID] = created

	r.log.Infof("Repository: user created with ID %d, username %s", created.ID, created.Username)
	return &created, nil
}

func (r *memoryUserRepository) GetUserByID(id int) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("user with id %d: %w", id, domain.ErrNotFound)
	}
	return &user, nil
}

func (r *memoryUserRepository) GetUserByUsername(username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.items {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with username '%s': %w", username, domain.ErrNotFound)
}
