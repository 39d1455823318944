package seed

import (
	"fmt"
	"log"

	"reunion/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with a realistic social mesh: users, follow
// edges, posts, likes and comments.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Children go first so foreign keys are
// never violated.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Post{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}
	return nil
}

// Run seeds the database according to opts.
func (s *Seeder) Run(opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	follows, err := s.SeedFollowGraph(users)
	if err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}
	log.Printf("✓ %d follow relationships created", follows)

	posts, err := s.SeedPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	likes, comments, err := s.SeedEngagement(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("✓ %d likes and %d comments created", likes, comments)

	return nil
}

// SeedUsers creates n users with generated names and emails.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedFollowGraph wires users into a follow mesh: each user follows a random
// subset of the others. Returns the number of edges created.
func (s *Seeder) SeedFollowGraph(users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		// between 1 and a third of the population, capped
		max := len(users) / 3
		if max < 1 {
			max = 1
		}
		count := 1 + s.factory.rng.Intn(max)
		for i := 0; i < count; i++ {
			followee := users[s.factory.rng.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// SeedPosts creates n posts spread across the given users.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// SeedEngagement adds likes and comments from random users to random posts.
// Returns the number of likes and comments created.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) (int, int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, 0, nil
	}

	likes := 0
	comments := 0
	for _, post := range posts {
		nLikes := s.factory.rng.Intn(len(users))
		for i := 0; i < nLikes; i++ {
			user := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.CreateLike(user, post); err != nil {
				return likes, comments, err
			}
			likes++
		}

		nComments := s.factory.rng.Intn(5)
		for i := 0; i < nComments; i++ {
			user := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(user, post); err != nil {
				return likes, comments, err
			}
			comments++
		}
	}
	return likes, comments, nil
}
