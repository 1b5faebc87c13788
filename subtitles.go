package opensubtitles

import (
	"context"
	"net/http"
)

// Methods related to subtitles (Search, Download)

// SearchSubtitles searches for subtitles based on various criteria.
func (c *Client) SearchSubtitles(ctx context.Context, params SearchSubtitlesParams) (*SearchSubtitlesResponse, error) {
	return get[SearchSubtitlesResponse](ctx, c, "/subtitles", params)
}

// Download requests a download link for a specific subtitle file.
// Requires authentication; each call counts against the user's daily quota.
func (c *Client) Download(ctx context.Context, params DownloadRequest) (*DownloadResponse, error) {
	return call[DownloadResponse](ctx, c, http.MethodPost, "/download", params)
}

// FetchFile saves the file behind a link returned by Download to dest.
func (c *Client) FetchFile(ctx context.Context, link, dest string) (int64, error) {
	return c.Executor().Fetch(ctx, link, dest)
}
