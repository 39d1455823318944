package server

import (
	"errors"

	"reunion/internal/middleware"
	"reunion/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUser returns the authenticated user's profile: name plus follower and
// following counts. The counts are live queries against the follow edges, so
// the two sides of a relationship can never drift apart.
func (s *Server) GetUser(c *fiber.Ctx) error {
	user := s.currentUser(c)

	followers, err := s.followRepo.CountFollowers(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	following, err := s.followRepo.CountFollowing(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"username":  user.Name,
		"followers": followers,
		"following": following,
	})
}

// FollowUser makes the authenticated user follow the user in the path. A
// repeat follow is reported, not errored. Following yourself is allowed; the
// legacy API never rejected it.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user := s.currentUser(c)

	if err := s.requireUser(c, targetID); err != nil {
		return nil
	}

	outcome, err := s.followRepo.Follow(c.Context(), user.ID, targetID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	middleware.FollowMutations.WithLabelValues(string(outcome)).Inc()

	msg := "User followed successfully"
	if outcome == models.AlreadyFollowing {
		msg = "You already follow this user"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": msg})
}

// UnfollowUser removes the follow edge towards the user in the path.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user := s.currentUser(c)

	if err := s.requireUser(c, targetID); err != nil {
		return nil
	}

	outcome, err := s.followRepo.Unfollow(c.Context(), user.ID, targetID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	middleware.FollowMutations.WithLabelValues(string(outcome)).Inc()

	msg := "User unfollowed successfully"
	if outcome == models.NotFollowing {
		msg = "You are not following this user"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": msg})
}

// requireUser verifies the target user exists, writing a 404 when it does
// not. Returns errResponseWritten after writing so callers can bail out.
func (s *Server) requireUser(c *fiber.Ctx, id uint) error {
	_, err := s.userRepo.GetByID(c.Context(), id)
	if err == nil {
		return nil
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			&models.AppError{Code: "NOT_FOUND", Message: "User with given ID not found"})
	} else {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return errResponseWritten
}
