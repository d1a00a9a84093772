// curator/controllers/auth.go
package controllers

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"curator/curator/auth"
	"curator/curator/config"
	"curator/curator/sources/psql/dao"
	"curator/curator/sources/psql/models"
)

type AuthController struct {
	userDAO *dao.UserDAO
	cfg     config.Config
}

func NewAuthController(userDAO *dao.UserDAO, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		cfg:     cfg,
	}
}

// Register creates a new account. Uniqueness of username and email is
// ultimately enforced by the database; a duplicate comes back as
// dao.ErrConflict whichever request commits second.
func (c *AuthController) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return c.userDAO.CreateUser(ctx, username, email, hash)
}

// Login verifies credentials and issues a session token. Lookup miss and
// password mismatch are indistinguishable to the caller.
func (c *AuthController) Login(ctx context.Context, username, password string) (string, error) {
	user, err := c.userDAO.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil || !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrUnauthorized
	}
	return auth.GenerateToken(user.Username, []byte(c.cfg.JWTSecret), c.cfg.TokenTTL)
}

// CurrentUser resolves a bearer token to its user. Any validation failure
// or a subject that no longer exists rejects the request.
func (c *AuthController) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	username, err := auth.ValidateToken(token, []byte(c.cfg.JWTSecret))
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := c.userDAO.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}
