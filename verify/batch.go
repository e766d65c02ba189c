package verify

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/optimode/verifykit/types"
)

// BatchOptions configures concurrent processing for VerifyMany.
type BatchOptions struct {
	// Workers is the number of concurrent requests. Default: 5
	Workers int
}

// VerifyMany verifies multiple emails concurrently with a bounded worker
// group. The result order matches the input slice order. The first failure
// cancels the remaining requests and is returned.
func (c *Client) VerifyMany(ctx context.Context, emails []string, opts ...BatchOptions) ([]types.Result, error) {
	workers := 5
	if len(opts) > 0 && opts[0].Workers > 0 {
		workers = opts[0].Workers
	}

	results := make([]types.Result, len(emails))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, email := range emails {
		i, email := i, email
		g.Go(func() error {
			res, err := c.Verify(ctx, email)
			if err != nil {
				return fmt.Errorf("verifying %q: %w", email, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
