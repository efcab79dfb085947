package immich

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// peopleResponse is one page of the people listing.
type peopleResponse struct {
	People []personResponse `json:"people"`
	Total  int              `json:"total"`
}

type personResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsHidden bool   `json:"isHidden"`
}

// People returns all recognised people, hidden ones included. The
// listing is paginated; fetching stops on an empty page or once the
// advertised total has been reached.
func (c *Client) People(ctx context.Context) ([]domain.Person, error) {
	var people []domain.Person

	for page := 1; ; page++ {
		query := url.Values{
			"page":       []string{strconv.Itoa(page)},
			"withHidden": []string{"true"},
		}
		var result peopleResponse
		if err := c.get(ctx, "/api/people", query, &result); err != nil {
			return nil, fmt.Errorf("list people (page %d): %w", page, err)
		}
		if len(result.People) == 0 {
			break
		}
		for _, p := range result.People {
			people = append(people, domain.Person{
				ID:     p.ID,
				Name:   p.Name,
				Hidden: p.IsHidden,
			})
		}
		if result.Total > 0 && len(people) >= result.Total {
			break
		}
	}

	return people, nil
}
