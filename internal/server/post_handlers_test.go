package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"reunion/internal/models"
)

func TestGetAllPosts_EmptyStoreIs404(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	resp := doRequest(t, app, http.MethodGet, "/api/all_posts", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["error"]; msg != "No posts found" {
		t.Fatalf("unexpected error: %v", msg)
	}
}

func TestGetAllPosts_Summaries(t *testing.T) {
	t.Parallel()
	_, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	post := &models.Post{Title: "First", Description: "hello world", UserID: alice.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"nice", "agreed"} {
		comment := &models.Comment{
			ID:        fmt.Sprintf("c-%d", i),
			Text:      text,
			UserID:    bob.ID,
			PostID:    post.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(comment).Error; err != nil {
			t.Fatalf("create comment: %v", err)
		}
	}
	if err := db.Create(&models.Like{UserID: bob.ID, PostID: post.ID}).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/all_posts", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	defer func() { _ = resp.Body.Close() }()

	var summaries []models.PostSummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	got := summaries[0]
	if got.Title != "First" || got.Description != "hello world" {
		t.Fatalf("unexpected summary: %+v", got)
	}
	if got.LikesCount != 1 {
		t.Fatalf("expected 1 like, got %d", got.LikesCount)
	}
	if len(got.Comments) != 2 || got.Comments[0] != "nice" || got.Comments[1] != "agreed" {
		t.Fatalf("unexpected comment texts: %v", got.Comments)
	}
}

func TestCreatePost_RoundTrip(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	tok := authToken(t, s, alice)

	resp := doRequest(t, app, http.MethodPost, "/api/posts", tok, map[string]string{
		"title":       "My first post",
		"description": "Something worth sharing",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["title"] != "My first post" {
		t.Fatalf("unexpected title: %v", body["title"])
	}
	if body["created_at"] == nil {
		t.Fatalf("expected created_at in response")
	}
	id := int(body["id"].(float64))
	if id <= 0 {
		t.Fatalf("expected assigned id, got %v", body["id"])
	}

	// Fetch it back through the public endpoint.
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	got := decodeBody(t, resp)
	if got["title"] != "My first post" || got["description"] != "Something worth sharing" {
		t.Fatalf("unexpected post: %v", got)
	}
	if got["likes"] != float64(0) || got["comments"] != float64(0) {
		t.Fatalf("expected zero counts, got %v", got)
	}
}

func TestCreatePost_MissingFields(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	tok := authToken(t, s, alice)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"no body", nil},
		{"missing description", map[string]string{"title": "only title"}},
		{"missing title", map[string]string{"description": "only description"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doRequest(t, app, http.MethodPost, "/api/posts", tok, tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestGetPost_NotFound(t *testing.T) {
	t.Parallel()
	_, app, _ := newTestServer(t)

	resp := doRequest(t, app, http.MethodGet, "/api/posts/424242", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["error"]; msg != "Post with given id not found" {
		t.Fatalf("unexpected error: %v", msg)
	}
}

func TestDeletePost_AuthorizationMatrix(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	author := createTestUser(t, db, "Author", "author@example.com")
	stranger := createTestUser(t, db, "Stranger", "stranger@example.com")

	post := &models.Post{Title: "Mine", Description: "keep out", UserID: author.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	// A non-author may not delete.
	resp := doRequest(t, app, http.MethodDelete, path, authToken(t, s, stranger), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-author, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["error"]; msg != "You are not authorized to delete this post" {
		t.Fatalf("unexpected error: %v", msg)
	}

	// The author may.
	resp = doRequest(t, app, http.MethodDelete, path, authToken(t, s, author), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for author, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["message"]; msg != "Post deleted successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}

	// Double delete reads as gone.
	resp = doRequest(t, app, http.MethodDelete, path, authToken(t, s, author), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for double delete, got %d", resp.StatusCode)
	}
}

func TestDeletePost_RemovesCommentsAndLikes(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	author := createTestUser(t, db, "Author", "author@example.com")
	fan := createTestUser(t, db, "Fan", "fan@example.com")

	post := &models.Post{Title: "Ephemeral", Description: "soon gone", UserID: author.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := db.Create(&models.Comment{ID: "c-1", Text: "hi", UserID: fan.ID, PostID: post.ID}).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if err := db.Create(&models.Like{UserID: fan.ID, PostID: post.ID}).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}

	resp := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%d", post.ID),
		authToken(t, s, author), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var comments, likes int64
	if err := db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if err := db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if comments != 0 || likes != 0 {
		t.Fatalf("expected owned rows removed, got %d comments and %d likes", comments, likes)
	}
}

func TestLikePost_Flow(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	author := createTestUser(t, db, "Author", "author@example.com")
	fan := createTestUser(t, db, "Fan", "fan@example.com")

	post := &models.Post{Title: "Likeable", Description: "like me", UserID: author.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	path := fmt.Sprintf("/api/like/%d", post.ID)
	tok := authToken(t, s, fan)

	resp := doRequest(t, app, http.MethodPost, path, tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["message"]; msg != "Post liked successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}

	// Liking twice reports the duplicate and keeps a single row.
	resp = doRequest(t, app, http.MethodPost, path, tok, nil)
	if msg := decodeBody(t, resp)["message"]; msg != "You already liked this post" {
		t.Fatalf("unexpected message: %v", msg)
	}

	var likes int64
	if err := db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	if likes != 1 {
		t.Fatalf("expected 1 like, got %d", likes)
	}
}

func TestUnlikePost_Flow(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	author := createTestUser(t, db, "Author", "author@example.com")
	fan := createTestUser(t, db, "Fan", "fan@example.com")

	post := &models.Post{Title: "Unlikeable", Description: "unlike me", UserID: author.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := db.Create(&models.Like{UserID: fan.ID, PostID: post.ID}).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}
	path := fmt.Sprintf("/api/unlike/%d", post.ID)
	tok := authToken(t, s, fan)

	resp := doRequest(t, app, http.MethodPost, path, tok, nil)
	if msg := decodeBody(t, resp)["message"]; msg != "Post unliked successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}

	resp = doRequest(t, app, http.MethodPost, path, tok, nil)
	if msg := decodeBody(t, resp)["message"]; msg != "You already unliked this post" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestLikePost_PostNotFound(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	fan := createTestUser(t, db, "Fan", "fan@example.com")

	for _, path := range []string{"/api/like/9999", "/api/unlike/9999"} {
		resp := doRequest(t, app, http.MethodPost, path, authToken(t, s, fan), nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}
