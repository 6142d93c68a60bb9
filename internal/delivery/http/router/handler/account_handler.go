// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/entity"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerRequest struct {
	UserName string `json:"userName" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
	Gender   int    `json:"gender"`
}

type userNameRequest struct {
	UserName string `json:"userName" validate:"required"`
}

type loginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changeInfoRequest struct {
	NickName *string `json:"nickName,omitempty"`
	City     *string `json:"city,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Gender   *int    `json:"gender,omitempty"`
}

type changePasswordRequest struct {
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		UserName: input.UserName,
		Password: input.Password,
		Gender:   entity.Gender(input.Gender),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, profile, "User registered successfully")
}

// IsExist reports whether a user name is already registered.
func (h *AccountHandler) IsExist(c echo.Context) error {
	var input userNameRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.IsExist(c.Request().Context(), input.UserName)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "User exists")
}

// Login handles the login request. The session key comes from the caller's
// cookie, resolved by the session middleware.
func (h *AccountHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.uc.Login(c.Request().Context(), middleware.SessionKey(c), &usecase.LoginInput{
		UserName: input.UserName,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Login successful")
}

// ChangeInfo updates the authenticated caller's profile fields.
func (h *AccountHandler) ChangeInfo(c echo.Context) error {
	var input changeInfoRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	var gender *entity.Gender
	if input.Gender != nil {
		g := entity.Gender(*input.Gender)
		gender = &g
	}

	err := h.uc.ChangeUserInfo(c.Request().Context(), middleware.SessionKey(c), &usecase.ChangeUserInfoInput{
		NickName: input.NickName,
		City:     input.City,
		Avatar:   input.Avatar,
		Gender:   gender,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Profile updated successfully")
}

// ChangePassword replaces the caller's credential. On success the caller's
// session is cleared on purpose: the service keeps sessions out of password
// changes, and this handler owns the force-re-login policy.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	var input changePasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	ctx := c.Request().Context()
	sessionKey := middleware.SessionKey(c)

	err := h.uc.ChangePassword(ctx, sessionKey, &usecase.ChangePasswordInput{
		OldPassword: input.Password,
		NewPassword: input.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Logout(ctx, sessionKey); err != nil {
		h.logger.Warn("Failed to clear session after password change", slog.Any("error", err))
	}

	return response.Success(c, http.StatusOK, nil, "Password changed, please log in again")
}

// Delete removes an account record. Live sessions of the deleted user are not
// invalidated here.
func (h *AccountHandler) Delete(c echo.Context) error {
	var input userNameRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteUserInfo(c.Request().Context(), input.UserName); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// Logout destroys the caller's session.
func (h *AccountHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context(), middleware.SessionKey(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}
