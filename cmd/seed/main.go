// seed inserts a verified demo author and a few posts into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/blog-platform/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/blog-platform/internal/password"
)

const (
	seedEmail    = "seed@test.local"
	seedUsername = "seed"
	seedPassword = "seed-password"
)

var posts = []struct {
	title string
	body  string
}{
	{"Hello, world", "First post on the seeded blog."},
	{"On writing less", "Short posts are easier to test against."},
	{"Draft thoughts", "A third post so lists have something to paginate."},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := password.Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert the demo author, already verified so login works immediately.
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash, email_verified)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		seedEmail, seedUsername, hash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	var inserted int
	for _, p := range posts {
		tag, err := pool.Exec(ctx, `
			INSERT INTO posts (author_id, title, body)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (
				SELECT 1 FROM posts WHERE author_id = $1 AND title = $2
			)`,
			userID, p.title, p.body,
		)
		if err != nil {
			log.Fatalf("insert post %q: %v", p.title, err)
		}
		inserted += int(tag.RowsAffected())
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s (password %q, verified)\n", seedEmail, seedPassword)
	fmt.Printf("  Posts:    %d inserted\n", inserted)
	fmt.Printf("  Login:    POST /auth/login then GET /%s/home\n", seedUsername)
}
