package rest

import (
	"context"
	"fmt"
	"myCatalogStore/domain"
	"myCatalogStore/pkg/logger"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, reg domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, identifier, password string) (string, domain.User, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	Username  string  `json:"username" validate:"required"`
	Email     string  `json:"email" validate:"required"`
	Password  string  `json:"password" validate:"required"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UserLoginRequest takes a username or an email in Username.
type UserLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var reqUser UserRegisterRequest

	if err := bindStrict(c, &reqUser); err != nil {
		logger.Warn("Invalid request body", "error", err)
		return errorResponse(c, err)
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Register(ctx, domain.UserRegistration{
		Username:  reqUser.Username,
		Email:     reqUser.Email,
		Password:  reqUser.Password,
		FirstName: reqUser.FirstName,
		LastName:  reqUser.LastName,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully!",
		"user":    domain.UserRepresentation(user),
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var reqUser UserLoginRequest

	if err := bindStrict(c, &reqUser); err != nil {
		return errorResponse(c, err)
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.userService.Login(ctx, reqUser.Username, reqUser.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    domain.UserRepresentation(user),
	})
}

// Logout invalidates the bearer token the request was made with.
func (h *UserHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, ok := c.Get("token").(string)
	if !ok {
		logger.Error("Failed to get token from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.userService.Logout(ctx, token); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByID(ctx, uint(userID))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, domain.UserRepresentation(user))
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetAllUsers(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	reps := make([]map[string]any, 0, len(users))
	for _, u := range users {
		reps = append(reps, domain.UserRepresentation(u))
	}

	return c.JSON(http.StatusOK, reps)
}

// UpdateUser applies the fields present in the body. Keys other than
// username, email, password, first_name and last_name are refused.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	var reqUpdate UserUpdateRequest
	if err := bindStrict(c, &reqUpdate); err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updatedUser, err := h.userService.UpdateUser(ctx, uint(userID), domain.UserUpdate{
		Username:  reqUpdate.Username,
		Email:     reqUpdate.Email,
		Password:  reqUpdate.Password,
		FirstName: reqUpdate.FirstName,
		LastName:  reqUpdate.LastName,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User updated successfully!",
		"user":    domain.UserRepresentation(updatedUser),
	})
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.DeleteUser(ctx, uint(userID)); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User deleted successfully!",
	})
}
