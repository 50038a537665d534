package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"storefront-server/models"
	"storefront-server/utils"
)

// PostsStore serves the home page blog from a JSON file.
type PostsStore struct {
	path string
}

func NewPostsStore(path string) *PostsStore {
	return &PostsStore{path: path}
}

// ListPosts returns every post; a missing file means no posts yet.
func (ps *PostsStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	data, err := os.ReadFile(ps.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse posts %s: %w", ps.path, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	for i := range posts {
		posts[i].Body = utils.SanitizeHTML(posts[i].Body)
		posts[i].Excerpt = utils.SanitizeHTML(posts[i].Excerpt)
	}
	return posts, nil
}
