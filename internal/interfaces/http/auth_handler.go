package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mini-estoque/internal/application/auth"
	"github.com/jhoicas/mini-estoque/internal/application/dto"
	"github.com/jhoicas/mini-estoque/pkg/logger"
	"github.com/jhoicas/mini-estoque/pkg/validator"
)

// AuthHandler maneja el login.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	validate validator.Validator
	log      *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, v validator.Validator, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, validate: v, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := bindAndValidate(c, h.validate, &in); !ok {
		return err
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
