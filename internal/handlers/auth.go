package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/configdb/internal/services"
	"github.com/localnerve/configdb/internal/utils"
)

// AuthHandler handles credential routes
type AuthHandler struct {
	Auth *services.AuthService
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Register handles POST /api/auth/register
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsBody true "Credentials"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body credentialsBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	user, err := h.Auth.Register(body.Email, body.Password, body.Role)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, user, fiber.StatusCreated)
}

// Login handles POST /api/auth/login
// @Summary Log in and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsBody true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body credentialsBody
	if err := parseBody(c, &body); err != nil {
		return err
	}

	token, user, err := h.Auth.Login(body.Email, body.Password)
	if err != nil {
		return err
	}
	return utils.SuccessResponse(c, loginResponse{
		Token:     token,
		TokenType: "Bearer",
		UserID:    user.UserID,
		Email:     user.Email,
		Role:      user.Role,
	}, fiber.StatusOK)
}
