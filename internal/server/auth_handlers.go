package server

import (
	"errors"

	"reunion/internal/middleware"
	"reunion/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AuthenticateRequest is the login request body.
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate verifies credentials and returns a signed token. Both fields
// are required; either one missing is a 400 before any lookup happens.
func (s *Server) Authenticate(c *fiber.Ctx) error {
	var req AuthenticateRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email or Password Missing"))
	}

	user, err := s.userRepo.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "UNAUTHORIZED" {
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
		middleware.Logger.ErrorContext(c.UserContext(), "authentication lookup failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	tok, err := s.tokens.Issue(user.Email)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "token issuance failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": tok,
	})
}
