package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avetrov/finance-service/internal/config"
	"github.com/avetrov/finance-service/internal/models"
	"github.com/avetrov/finance-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// RatesSource converts amounts between currencies, backed by the ECB
// daily reference feed.
type RatesSource interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	rec    *RecurrenceEngine
	ledger *InstallmentLedger
	rates  RatesSource
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, rates RatesSource, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		rec:    NewRecurrenceEngine(repo, repo, log),
		ledger: NewInstallmentLedger(repo, repo, log),
		rates:  rates,
		log:    log,
		config: cfg,
	}
}

// Ledger exposes the installment ledger for the scheduler.
func (s *Service) Ledger() *InstallmentLedger { return s.ledger }

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}
