package user

import (
	"context"
	"errors"
	"fmt"
	"myCatalogStore/domain"
	"myCatalogStore/pkg/logger"
	"myCatalogStore/pkg/utils"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

// TokenStore contract interface. A nil store means issued tokens are only
// checked for signature and expiry.
type TokenStore interface {
	StoreToken(ctx context.Context, token string, userID uint, ttl time.Duration) error
	RevokeToken(ctx context.Context, token string) error
	RevokeUserTokens(ctx context.Context, userID uint) error
}

type userService struct {
	userRepo   UserRepository
	validate   *validator.Validate
	tokenStore TokenStore
}

func NewUserService(userRepo UserRepository, validate *validator.Validate, tokenStore TokenStore) *userService {
	return &userService{
		userRepo:   userRepo,
		validate:   validate,
		tokenStore: tokenStore,
	}
}

// Register creates a user. The password is bcrypt-hashed before it is stored
// and is never returned.
func (s *userService) Register(ctx context.Context, reg domain.UserRegistration) (domain.User, error) {
	if err := s.validateUsername(reg.Username); err != nil {
		return domain.User{}, err
	}
	if err := s.validateEmail(reg.Email); err != nil {
		return domain.User{}, err
	}
	if err := s.validatePassword(reg.Password); err != nil {
		return domain.User{}, err
	}

	if err := s.ensureUnique(ctx, 0, reg.Username, reg.Email); err != nil {
		return domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(reg.Password)
	if err != nil {
		logger.Error("Failed to hash password", "error", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: string(passwordHash),
		FirstName:    nonEmpty(reg.FirstName),
		LastName:     nonEmpty(reg.LastName),
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", "error", err)
		return domain.User{}, err
	}

	logger.Info("user registered", "user_id", newUser.ID)

	return newUser, nil
}

// VerifyPassword compares candidate with the user's stored hash.
func (s *userService) VerifyPassword(user domain.User, candidate string) bool {
	return user.VerifyPassword(candidate)
}

// Login accepts either a username or an email as identifier and returns a
// signed token.
func (s *userService) Login(ctx context.Context, identifier, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.userRepo.FindByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Login with unknown identifier")
			return "", domain.User{}, domain.ErrInvalidCredentials
		}
		logger.Error("Failed to find user for login", "error", err)
		return "", domain.User{}, err
	}

	if !s.VerifyPassword(user, password) {
		logger.Warn("User password incorrect", "user_id", user.ID)
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(strconv.FormatUint(uint64(user.ID), 10), user.Username)
	if err != nil {
		logger.Error("Failed to generate token", "error", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if s.tokenStore != nil {
		if err := s.tokenStore.StoreToken(ctx, token, user.ID, utils.TokenTTL()); err != nil {
			logger.Error("Failed to store token", "error", err)
			return "", domain.User{}, errors.New("failed to store token")
		}
	}

	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	if s.tokenStore == nil {
		return nil
	}

	if err := s.tokenStore.RevokeToken(ctx, token); err != nil {
		logger.Error("Failed to revoke token", "error", err)
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", "error", err)
		return domain.User{}, err
	}

	return user, nil
}

// GetAllUsers retrieves all users
func (s *userService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to get all users", "error", err)
		return nil, err
	}

	return users, nil
}

// UpdateUser applies the present fields of update.
func (s *userService) UpdateUser(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("User not found for update", "error", err)
		return domain.User{}, err
	}

	username, email := "", ""

	if update.Username != nil {
		if err := s.validateUsername(*update.Username); err != nil {
			return domain.User{}, err
		}
		if *update.Username != existingUser.Username {
			username = *update.Username
		}
		existingUser.Username = *update.Username
	}

	if update.Email != nil {
		if err := s.validateEmail(*update.Email); err != nil {
			return domain.User{}, err
		}
		if *update.Email != existingUser.Email {
			email = *update.Email
		}
		existingUser.Email = *update.Email
	}

	if err := s.ensureUnique(ctx, id, username, email); err != nil {
		return domain.User{}, err
	}

	if update.Password != nil {
		if err := s.validatePassword(*update.Password); err != nil {
			return domain.User{}, err
		}

		passwordHash, err := utils.HashPassword(*update.Password)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return domain.User{}, errors.New("failed to hash password")
		}
		existingUser.PasswordHash = string(passwordHash)
	}

	if update.FirstName != nil {
		existingUser.FirstName = nonEmpty(update.FirstName)
	}

	if update.LastName != nil {
		existingUser.LastName = nonEmpty(update.LastName)
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("Failed to update user", "error", err)
		return domain.User{}, err
	}

	return existingUser, nil
}

// DeleteUser removes the user and, with it, the user's orders.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("Failed to delete user", "error", err)
		return err
	}

	if s.tokenStore != nil {
		if err := s.tokenStore.RevokeUserTokens(ctx, id); err != nil {
			logger.Warn("Failed to revoke tokens of deleted user", "user_id", id, "error", err)
		}
	}

	logger.Info("user deleted", "user_id", id)

	return nil
}

// ensureUnique checks the non-empty username and email are free for userID.
func (s *userService) ensureUnique(ctx context.Context, userID uint, username, email string) error {
	if username != "" {
		existing, err := s.userRepo.FindByUsername(ctx, username)
		if err == nil && existing.ID != userID {
			return fmt.Errorf("username already exists: %w", domain.ErrDuplicateKey)
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}

	if email != "" {
		existing, err := s.userRepo.FindByEmail(ctx, email)
		if err == nil && existing.ID != userID {
			return fmt.Errorf("email already exists: %w", domain.ErrDuplicateKey)
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}

	return nil
}

func (s *userService) validateUsername(username string) error {
	if err := s.validate.Var(username, "required,max=255"); err != nil {
		return fmt.Errorf("%w: username is required and at most 255 characters", domain.ErrValidation)
	}
	return nil
}

func (s *userService) validateEmail(email string) error {
	if err := s.validate.Var(email, "required,email,max=255"); err != nil {
		return fmt.Errorf("%w: invalid email format", domain.ErrValidation)
	}
	return nil
}

func (s *userService) validatePassword(password string) error {
	if err := s.validate.Var(password, "required,min=6"); err != nil {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
