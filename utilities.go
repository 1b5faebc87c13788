package opensubtitles

import "context"

// Methods related to utility and info endpoints

// Guessit attempts to parse structured information (title, year, season, etc.)
// from a filename using the OpenSubtitles guessit utility.
func (c *Client) Guessit(ctx context.Context, params GuessitParams) (*GuessitResponse, error) {
	return get[GuessitResponse](ctx, c, "/utilities/guessit", params)
}

// GetFormats lists the subtitle formats the API can convert to.
func (c *Client) GetFormats(ctx context.Context) (*FormatsResponse, error) {
	return get[FormatsResponse](ctx, c, "/infos/formats", nil)
}

// GetLanguages lists the languages subtitles can be searched in.
func (c *Client) GetLanguages(ctx context.Context) (*LanguagesResponse, error) {
	return get[LanguagesResponse](ctx, c, "/infos/languages", nil)
}
