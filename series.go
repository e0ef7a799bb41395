package fredclient

import "context"

// Typed shortcuts for the most used operations. Extra optional parameters go
// in opts; the named arguments always win.

// Series fetches series metadata (`seriess`).
func (c *Client) Series(ctx context.Context, seriesID string, opts Args) (map[string]any, error) {
	return c.CallObject(ctx, "series", with(opts, "series_id", seriesID))
}

// SeriesObservations fetches observations (`observations`) of a series.
func (c *Client) SeriesObservations(ctx context.Context, seriesID string, opts Args) (map[string]any, error) {
	return c.CallObject(ctx, "series_observations", with(opts, "series_id", seriesID))
}

// SeriesSearch searches series by text (`seriess`).
func (c *Client) SeriesSearch(ctx context.Context, searchText string, opts Args) (map[string]any, error) {
	return c.CallObject(ctx, "series_search", with(opts, "search_text", searchText))
}

// Category fetches one category (`categories`).
func (c *Client) Category(ctx context.Context, categoryID int) (map[string]any, error) {
	return c.CallObject(ctx, "category", Args{"category_id": categoryID})
}

// CategoryChildren fetches the child categories of a category.
func (c *Client) CategoryChildren(ctx context.Context, categoryID int, opts Args) (map[string]any, error) {
	return c.CallObject(ctx, "category_children", with(opts, "category_id", categoryID))
}

// Releases lists releases of economic data (`releases`).
func (c *Client) Releases(ctx context.Context, opts Args) (map[string]any, error) {
	return c.CallObject(ctx, "releases", with(opts, "", nil))
}

func with(opts Args, key string, value any) Args {
	args := make(Args, len(opts)+1)
	for k, v := range opts {
		args[k] = v
	}
	if key != "" {
		args[key] = value
	}
	return args
}
