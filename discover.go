package opensubtitles

import "context"

// Methods related to discovery endpoints (Popular, Latest, MostDownloaded)

// DiscoverPopular retrieves popular features (movies/tvshows).
func (c *Client) DiscoverPopular(ctx context.Context, params DiscoverParams) (*DiscoverPopularResponse, error) {
	return get[DiscoverPopularResponse](ctx, c, "/discover/popular", params)
}

// DiscoverLatest retrieves the latest added subtitles.
func (c *Client) DiscoverLatest(ctx context.Context, params DiscoverParams) (*DiscoverLatestResponse, error) {
	return get[DiscoverLatestResponse](ctx, c, "/discover/latest", params)
}

// DiscoverMostDownloaded retrieves the most downloaded subtitles.
func (c *Client) DiscoverMostDownloaded(ctx context.Context, params DiscoverParams) (*DiscoverMostDownloadedResponse, error) {
	return get[DiscoverMostDownloadedResponse](ctx, c, "/discover/most_downloaded", params)
}
