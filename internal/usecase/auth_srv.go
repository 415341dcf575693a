package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"library-seats/internal/clock"
	"library-seats/internal/data/entity"
	"library-seats/internal/data/repository"
	"library-seats/internal/dto/request"
	"library-seats/internal/dto/response"
	"library-seats/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeded account available on every fresh store.
const (
	SeedUserEmail    = "test"
	SeedUserName     = "테스트"
	SeedUserPassword = "1234"
)

// AuthService is the identity collaborator. The reservation engine never
// calls it; handlers resolve a session into an entity.Identity and pass that
// along.
type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) error
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*entity.Session, error)
	EnsureSeedUser(ctx context.Context) error
}

// authService serializes its writes: users and sessions are each one
// document, rewritten whole.
type authService struct {
	mu     sync.Mutex
	repo   *repository.Repository // user & session records
	config *utils.Config
	clock  clock.Clock
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	clk clock.Clock,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		clock:  clk,
		log:    log.With(zap.String("service", "auth")),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return ErrInvalidSignup
	}

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password, s.config.Auth.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{Name: req.Name, Email: email, PasswordHash: hash}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered", zap.String("email", email))
	return nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	session := &entity.Session{
		Token:     uuid.NewString(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in", zap.String("email", user.Email))

	resp := response.AuthToResponse(session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) GetSession(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.repo.Session.FindByToken(ctx, token)
}

// EnsureSeedUser (re)creates the test account so it always logs in with
// the known password.
func (s *authService) EnsureSeedUser(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.User.FindByEmail(ctx, SeedUserEmail)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	if existing != nil && utils.CheckPasswordHash(SeedUserPassword, existing.PasswordHash) {
		return nil
	}

	hash, err := utils.HashPassword(SeedUserPassword, s.config.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	user := &entity.User{Name: SeedUserName, Email: SeedUserEmail, PasswordHash: hash}
	if err := s.repo.User.Upsert(ctx, user); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	s.log.Info("Seed user ensured", zap.String("email", SeedUserEmail))
	return nil
}
