package opensubtitles

import "context"

// SearchFeatures searches for features (movies, tvshows, episodes) based on criteria.
// Each Feature keeps its attributes raw; use Feature.Movie, Feature.Tvshow or
// Feature.Episode once FeatureType says which one it is.
func (c *Client) SearchFeatures(ctx context.Context, params SearchFeaturesParams) (*SearchFeaturesResponse, error) {
	return get[SearchFeaturesResponse](ctx, c, "/features", params)
}
