package auth

import (
	"sync"
	"time"

	"studentportal/internal/models"
)

// memoryRepository keeps users and sessions in process memory. It backs the
// test suites and the standalone demo mode of cmd/server.
type memoryRepository struct {
	mu       sync.RWMutex
	nextID   int
	users    map[int]*models.User
	sessions map[string]*models.Session
}

// NewMemoryRepository creates a user repository backed by in-memory maps.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		nextID:   1,
		users:    make(map[int]*models.User),
		sessions: make(map[string]*models.Session),
	}
}

func (r *memoryRepository) GetUserByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, UserNotFoundError
}

func (r *memoryRepository) GetUserByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, UserNotFoundError
}

func (r *memoryRepository) CreateUser(name, email, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return nil, EmailExistsError
		}
	}

	user := &models.User{
		ID:           r.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	r.users[user.ID] = user
	r.nextID++
	return user, nil
}

func (r *memoryRepository) CreateSession(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	return nil
}

func (r *memoryRepository) GetSession(id string) (*models.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, SessionNotFoundError
	}
	if time.Now().After(session.ExpiresAt) {
		_ = r.DeleteSession(id)
		return nil, SessionExpiredError
	}
	return session, nil
}

func (r *memoryRepository) DeleteSession(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}
