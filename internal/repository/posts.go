package repository

import (
	"context"
	"fmt"
)

// PostRepository persists posts.
type PostRepository struct {
	db DB
}

// NewPostRepository creates a post repository over the given connection.
func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a post owned by the given user.
func (r *PostRepository) Create(ctx context.Context, userID int64, title, content string) (*Post, error) {
	query := `INSERT INTO posts (user_id, title, content)
	          VALUES ($1, $2, $3)
	          RETURNING id, user_id, title, content, created_at, updated_at`

	post := &Post{}
	err := r.db.QueryRow(ctx, query, userID, title, content).
		Scan(&post.ID, &post.UserID, &post.Title, &post.Content, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// ListByUser returns the user's posts, newest first.
func (r *PostRepository) ListByUser(ctx context.Context, userID int64) ([]Post, error) {
	query := `SELECT id, user_id, title, content, created_at, updated_at
	          FROM posts
	          WHERE user_id = $1
	          ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}
