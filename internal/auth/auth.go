package auth

import (
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"studentportal/internal/config"
	"studentportal/internal/models"
)

// Service provides signup, login and session lookup on top of a Repository.
type Service struct {
	repository Repository
}

// NewService creates an auth service backed by the given repository.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// SignUp creates a user using the provided Name, Email, and Password.
func (s *Service) SignUp(req *models.SignupRequest) (*models.User, error) {
	if err := ValidateSignup(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repository.CreateUser(req.Name, req.Email, string(hash))
	if err != nil {
		return nil, err
	}

	glog.Infof("user %s signed up", user.Email)
	return user, nil
}

// LogIn checks the credentials and, when they match, opens a new session.
func (s *Service) LogIn(req *models.LoginRequest) (*models.User, *models.Session, error) {
	user, err := s.repository.GetUserByEmail(req.Email)
	if err != nil {
		glog.Warningf("failed login attempt for email %s", req.Email)
		return nil, nil, InvalidCredentialsError
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		glog.Warningf("failed login attempt for email %s", req.Email)
		return nil, nil, InvalidCredentialsError
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(config.Config.SessionCookieExpiration),
	}
	if err := s.repository.CreateSession(session); err != nil {
		return nil, nil, err
	}

	glog.Infof("user %s logged in", user.Email)
	return user, session, nil
}

// LogOut destroys the given session. A missing session is not an error.
func (s *Service) LogOut(sessionID string) error {
	return s.repository.DeleteSession(sessionID)
}

// UserForSession resolves a session cookie value to the logged-in user.
func (s *Service) UserForSession(sessionID string) (*models.User, error) {
	session, err := s.repository.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	return s.repository.GetUserByID(session.UserID)
}
