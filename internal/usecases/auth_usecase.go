package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/realmcrm/backend/internal/entities"
	"github.com/realmcrm/backend/internal/repository"
)

// ErrInvalidCredentials is returned for unknown email and wrong password
// alike; callers must not reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Compared against on the unknown-email path so both failure modes cost one
// bcrypt verification.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthUsecase struct {
	userRepo   *repository.UserRepository
	tenantRepo *repository.TenantRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
}

func NewAuthUsecase(userRepo *repository.UserRepository, tenantRepo *repository.TenantRepository, secret string, tokenTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		jwtSecret:  []byte(secret),
		tokenTTL:   tokenTTL,
	}
}

// Login verifies the credentials and returns the user with a signed session
// token carrying (id, tenant_id, role).
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (uc *AuthUsecase) GenerateToken(user *entities.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":        user.ID,
		"tenant_id": user.TenantID,
		"role":      user.Role,
		"exp":       time.Now().Add(uc.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(uc.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %v", err)
	}
	return tokenString, nil
}

// Me returns the profile behind a verified token's user id.
func (uc *AuthUsecase) Me(ctx context.Context, userID int) (*entities.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// EnsureDemoTenant seeds the demo tenant with an admin and an employee if the
// admin account does not exist yet (called on startup).
func (uc *AuthUsecase) EnsureDemoTenant(ctx context.Context) error {
	existing, err := uc.userRepo.GetByEmail(ctx, "admin@demo.com")
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	tenant := &entities.Tenant{
		ID:                 uuid.NewString(),
		Name:               "Demo Real Estate",
		SubscriptionStatus: "active",
	}
	if err := uc.tenantRepo.Create(ctx, tenant); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entities.User{
		TenantID:     tenant.ID,
		Name:         "Admin User",
		Email:        "admin@demo.com",
		PasswordHash: string(hashed),
		Role:         "admin",
		Status:       "active",
	}
	if err := uc.userRepo.Create(ctx, admin); err != nil {
		return err
	}

	agent := &entities.User{
		TenantID:     tenant.ID,
		Name:         "Agent One",
		Email:        "agent@demo.com",
		PasswordHash: string(hashed),
		Role:         "employee",
		Status:       "active",
	}
	return uc.userRepo.Create(ctx, agent)
}
