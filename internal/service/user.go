package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/config"
	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	mu     sync.Mutex
	config *config.Config
	users  map[string]*domain.User
	nextID int64
}

func NewUserService(config *config.Config) *UserService {
	return &UserService{
		config: config,
		users:  make(map[string]*domain.User),
	}
}

func (s *UserService) Register(login, password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Warn("error while hashing password")
		return "", fmt.Errorf("error while hashing password: %w", err)
	}

	s.mu.Lock()
	if _, exists := s.users[login]; exists {
		s.mu.Unlock()
		return "", domain.ErrUserExists
	}
	s.nextID++
	s.users[login] = &domain.User{
		ID:           s.nextID,
		Login:        login,
		Password:     string(hashedPassword),
		RegisteredAt: time.Now(),
	}
	s.mu.Unlock()

	return generateJWTToken(login, s.config.PrivateKey)
}

func (s *UserService) Login(login, password string) (string, error) {
	s.mu.Lock()
	user, ok := s.users[login]
	s.mu.Unlock()
	if !ok {
		logger.Log.Warn("incorrect login", logger.String("login", login))
		return "", domain.ErrIncorrectCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		logger.Log.Warn("incorrect password", logger.String("login", login))
		return "", domain.ErrIncorrectCredentials
	}

	return generateJWTToken(login, s.config.PrivateKey)
}

func (s *UserService) Exists(login string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.users[login]
	return ok
}

func (s *UserService) All() []*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*domain.User, 0, len(s.users))
	for _, user := range s.users {
		all = append(all, user)
	}
	return all
}

func (s *UserService) Replace(users []*domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]*domain.User, len(users))
	for _, user := range users {
		s.users[user.Login] = user
		if user.ID > s.nextID {
			s.nextID = user.ID
		}
	}
}

func generateJWTToken(login, privateKey string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject: login,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(privateKey))
	if err != nil {
		return "", fmt.Errorf("error while signing token: %w", err)
	}

	return signedToken, nil
}
