package server

import (
	"reunion/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCommentRequest is the request body for commenting on a post.
type CreateCommentRequest struct {
	Comment string `json:"comment"`
}

// CreateComment attaches a comment by the authenticated user to a post.
// Comments get a random UUID identity so concurrent commenters can never
// collide, and they live and die with their post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil || req.Comment == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Comment is missing"))
	}

	user := s.currentUser(c)
	if _, werr := s.requirePost(c, postID, "Post with given id not found"); werr != nil {
		return nil
	}

	comment := &models.Comment{
		Text:   req.Comment,
		UserID: user.ID,
		PostID: postID,
	}
	if err := s.postRepo.AddComment(c.Context(), comment); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comment_id": comment.ID,
	})
}
