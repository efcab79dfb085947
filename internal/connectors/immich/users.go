package immich

import (
	"context"
	"fmt"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// userResponse is the slice of the users API response the tool needs.
type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	UpdatedAt string `json:"updatedAt"`
}

func (u userResponse) toDomain() domain.User {
	return domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		UpdatedAt: u.UpdatedAt,
	}
}

// Users returns all user accounts on the server. Listing other users
// requires an admin API key; non-admin keys get a forbidden error.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var result []userResponse
	if err := c.get(ctx, "/api/users", nil, &result); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(result))
	for _, u := range result {
		users = append(users, u.toDomain())
	}
	return users, nil
}

// Me returns the account that owns the API key.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var result userResponse
	if err := c.get(ctx, "/api/users/me", nil, &result); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}

	user := result.toDomain()
	return &user, nil
}
