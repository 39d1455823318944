package server

import (
	"errors"

	"reunion/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GetAllPosts returns every post in feed form, oldest first. An empty store
// is a 404, a quirk the existing clients depend on.
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	summaries, err := s.postRepo.ListSummaries(c.Context())
	if err != nil {
		return models.RespondWithError(c, appErrStatus(err, fiber.StatusNotFound), err)
	}
	return c.Status(fiber.StatusOK).JSON(summaries)
}

// CreatePost creates a post authored by the authenticated user. Title and
// description are both required.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil || req.Title == "" || req.Description == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title or description is missing"))
	}

	user := s.currentUser(c)
	post := &models.Post{
		Title:       req.Title,
		Description: req.Description,
		UserID:      user.ID,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          post.ID,
		"title":       post.Title,
		"description": post.Description,
		"created_at":  post.CreatedAt,
	})
}

// GetPost returns a single post with its like and comment counts.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, werr := s.requirePost(c, id, "Post with given id not found")
	if werr != nil {
		return nil
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id":          post.ID,
		"title":       post.Title,
		"description": post.Description,
		"likes":       post.LikesCount,
		"comments":    post.CommentsCount,
	})
}

// DeletePost deletes a post. Only the author may delete; anyone else gets a
// 401. A missing post, including a double delete, is a 404.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user := s.currentUser(c)

	post, werr := s.requirePost(c, id, "Post with given id not found or Post already deleted")
	if werr != nil {
		return nil
	}

	if post.UserID != user.ID {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("You are not authorized to delete this post"))
	}

	if err := s.postRepo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// LikePost records a like by the authenticated user. Liking twice reports
// the duplicate without failing.
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user := s.currentUser(c)

	if _, werr := s.requirePost(c, id, "Post with given id not found"); werr != nil {
		return nil
	}

	outcome, err := s.postRepo.Like(c.Context(), user.ID, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	msg := "Post liked successfully"
	if outcome == models.AlreadyLiked {
		msg = "You already liked this post"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": msg})
}

// UnlikePost removes the authenticated user's like from a post.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user := s.currentUser(c)

	if _, werr := s.requirePost(c, id, "Post with given id not found"); werr != nil {
		return nil
	}

	outcome, err := s.postRepo.Unlike(c.Context(), user.ID, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	msg := "Post unliked successfully"
	if outcome == models.NotLiked {
		msg = "You already unliked this post"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": msg})
}

// requirePost fetches the post, writing a 404 with the given message when it
// does not exist. Returns errResponseWritten after writing.
func (s *Server) requirePost(c *fiber.Ctx, id uint, notFoundMsg string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(c.Context(), id)
	if err == nil {
		return post, nil
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			&models.AppError{Code: "NOT_FOUND", Message: notFoundMsg})
	} else {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	return nil, errResponseWritten
}
