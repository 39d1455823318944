package server

import (
	"fmt"
	"net/http"
	"testing"

	"reunion/internal/models"
)

func TestGetUser_Counts(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	carol := createTestUser(t, db, "Carol", "carol@example.com")

	// bob and carol follow alice; alice follows bob
	for _, edge := range []models.Follow{
		{FollowerID: bob.ID, FolloweeID: alice.ID},
		{FollowerID: carol.ID, FolloweeID: alice.ID},
		{FollowerID: alice.ID, FolloweeID: bob.ID},
	} {
		if err := db.Create(&edge).Error; err != nil {
			t.Fatalf("create follow edge: %v", err)
		}
	}

	resp := doRequest(t, app, http.MethodGet, "/api/user", authToken(t, s, alice), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["username"] != "Alice" {
		t.Fatalf("unexpected username: %v", body["username"])
	}
	if body["followers"] != float64(2) {
		t.Fatalf("expected 2 followers, got %v", body["followers"])
	}
	if body["following"] != float64(1) {
		t.Fatalf("expected 1 following, got %v", body["following"])
	}
}

func TestFollowUser_Flow(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	tok := authToken(t, s, alice)

	// First follow succeeds.
	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/follow/%d", bob.ID), tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["message"]; msg != "User followed successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}

	// Repeat follow is reported, not duplicated.
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/follow/%d", bob.ID), tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["message"]; msg != "You already follow this user" {
		t.Fatalf("unexpected message: %v", msg)
	}

	var edges int64
	if err := db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", alice.ID, bob.ID).
		Count(&edges).Error; err != nil {
		t.Fatalf("count edges: %v", err)
	}
	if edges != 1 {
		t.Fatalf("expected exactly one follow edge, got %d", edges)
	}
}

func TestFollowUser_Symmetry(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/follow/%d", bob.ID),
		authToken(t, s, alice), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	// Alice sees one following; Bob sees one follower. Both views derive from
	// the same edge so they cannot disagree.
	aliceBody := decodeBody(t, doRequest(t, app, http.MethodGet, "/api/user", authToken(t, s, alice), nil))
	bobBody := decodeBody(t, doRequest(t, app, http.MethodGet, "/api/user", authToken(t, s, bob), nil))

	if aliceBody["following"] != float64(1) || aliceBody["followers"] != float64(0) {
		t.Fatalf("unexpected alice counts: %v", aliceBody)
	}
	if bobBody["followers"] != float64(1) || bobBody["following"] != float64(0) {
		t.Fatalf("unexpected bob counts: %v", bobBody)
	}
}

func TestFollowUser_TargetNotFound(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/follow/9999", authToken(t, s, alice), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["error"]; msg != "User with given ID not found" {
		t.Fatalf("unexpected error: %v", msg)
	}
}

func TestFollowUser_SelfFollowAllowed(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/follow/%d", alice.ID),
		authToken(t, s, alice), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeBody(t, doRequest(t, app, http.MethodGet, "/api/user", authToken(t, s, alice), nil))
	if body["followers"] != float64(1) || body["following"] != float64(1) {
		t.Fatalf("expected self-follow to count on both sides, got %v", body)
	}
}

func TestUnfollowUser_Flow(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	tok := authToken(t, s, alice)

	if err := db.Create(&models.Follow{FollowerID: alice.ID, FolloweeID: bob.ID}).Error; err != nil {
		t.Fatalf("create follow edge: %v", err)
	}

	resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/unfollow/%d", bob.ID), tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["message"]; msg != "User unfollowed successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}

	// Unfollowing again reports the missing relationship.
	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/unfollow/%d", bob.ID), tok, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["message"]; msg != "You are not following this user" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestUnfollowUser_TargetNotFound(t *testing.T) {
	t.Parallel()
	s, app, db := newTestServer(t)

	alice := createTestUser(t, db, "Alice", "alice@example.com")

	resp := doRequest(t, app, http.MethodPost, "/api/unfollow/9999", authToken(t, s, alice), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
