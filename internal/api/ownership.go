package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmarks/auditdeck/internal/domain"
)

// DiscoverOwnership fetches the ownership graph discovered so far for a
// company. The first call triggers discovery server-side; subsequent
// calls return the (possibly partial) current result, so polling this
// endpoint doubles as progress tracking.
func (c *Client) DiscoverOwnership(ctx context.Context, companyID string) (*domain.Ownership, error) {
	path := fmt.Sprintf("/api/ownership/%s", url.PathEscape(companyID))

	var ownership domain.Ownership
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &ownership); err != nil {
		return nil, err
	}
	return &ownership, nil
}
