package opensubtitles

import (
	"encoding/json"
	"fmt"
	"time"
)

// --- Common Types ---

// LanguageCode is an ISO 639-1 (or 639-2/B) language code such as "en" or "pt-br".
type LanguageCode string

// SortDirection defines the sorting order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterInclusion defines include/exclude options.
type FilterInclusion string

const (
	Include FilterInclusion = "include"
	Exclude FilterInclusion = "exclude"
)

// FilterInclusionOnly defines include/exclude/only options.
type FilterInclusionOnly string

const (
	IncludeOnly FilterInclusionOnly = "include"
	ExcludeOnly FilterInclusionOnly = "exclude"
	Only        FilterInclusionOnly = "only"
)

// FilterTrustedSources defines include/only options for trusted sources.
type FilterTrustedSources string

const (
	IncludeTrusted FilterTrustedSources = "include"
	OnlyTrusted    FilterTrustedSources = "only"
)

// FeatureType defines the type of a feature.
type FeatureType string

const (
	FeatureMovie   FeatureType = "movie"
	FeatureTVShow  FeatureType = "tvshow"
	FeatureEpisode FeatureType = "episode"
	FeatureAll     FeatureType = "all"
)

// String returns a pointer to s, for the optional fields of request params.
func String(s string) *string { return &s }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// PaginatedResponse carries the paging counters of list endpoints.
type PaginatedResponse struct {
	TotalPages int `json:"total_pages"`
	TotalCount int `json:"total_count"`
	PerPage    int `json:"per_page"`
	Page       int `json:"page"`
}

// ApiDataWrapper holds the "id" and "type" members shared by API resources.
type ApiDataWrapper struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// UploaderInfo describes who uploaded a subtitle. Any field may be null.
type UploaderInfo struct {
	UploaderID *int    `json:"uploader_id"`
	Name       *string `json:"name"`
	Rank       *string `json:"rank"`
}

// RelatedLink points at a related page (feature, other subtitles).
type RelatedLink struct {
	Label  string  `json:"label"`
	URL    string  `json:"url"`
	ImgURL *string `json:"img_url"`
}

// SubtitleCounts maps language codes to subtitle counts.
type SubtitleCounts map[LanguageCode]int

// BaseUserInfo contains the user fields common to /login and /infos/user.
type BaseUserInfo struct {
	AllowedDownloads int    `json:"allowed_downloads"`
	Level            string `json:"level"`
	UserID           int    `json:"user_id"`
	ExtInstalled     bool   `json:"ext_installed"`
	VIP              bool   `json:"vip"`
}

// --- Auth Types ---

// LoginRequest is the request body for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser is the user as described by the login response.
type LoginUser struct {
	BaseUserInfo
	AllowedTranslations int `json:"allowed_translations"`
}

// LoginResponse is the response from the login endpoint.
// BaseURL is usually a bare host such as "vip-api.opensubtitles.com".
type LoginResponse struct {
	User    LoginUser `json:"user"`
	BaseURL string    `json:"base_url"`
	Token   string    `json:"token"`
	Status  int       `json:"status"`
}

// LogoutResponse is the response from the logout endpoint.
type LogoutResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// UserInfo contains details from the /infos/user endpoint.
type UserInfo struct {
	BaseUserInfo
	Username           string `json:"username,omitempty"`
	DownloadsCount     int    `json:"downloads_count"`
	RemainingDownloads int    `json:"remaining_downloads"`
}

// GetUserInfoResponse wraps the UserInfo data.
type GetUserInfoResponse struct {
	Data UserInfo `json:"data"`
}

// --- Feature Types ---

// SearchFeaturesParams holds the query of /features. Nil fields are left out.
type SearchFeaturesParams struct {
	FeatureID  *int    `url:"feature_id,omitempty"`
	IMDbID     *string `url:"imdb_id,omitempty"`
	TMDBID     *string `url:"tmdb_id,omitempty"`
	Query      *string `url:"query,omitempty"`
	QueryMatch *string `url:"query_match,omitempty"` // start, word or exact
	FullSearch *bool   `url:"full_search,omitempty"`
	Type       *string `url:"type,omitempty"`
	Year       *int    `url:"year,omitempty"`
}

// FeatureBaseAttributes holds common fields for all feature types.
// Year comes back as a string; nullable ids are pointers.
type FeatureBaseAttributes struct {
	FeatureID       string         `json:"feature_id"`
	FeatureType     string         `json:"feature_type"` // Movie, Tvshow or Episode
	Title           string         `json:"title"`
	OriginalTitle   *string        `json:"original_title"`
	Year            string         `json:"year"`
	IMDbID          *int           `json:"imdb_id"`
	TMDBID          *int           `json:"tmdb_id"`
	TitleAKA        []string       `json:"title_aka"`
	URL             string         `json:"url"`
	ImgURL          *string        `json:"img_url"`
	SubtitlesCount  int            `json:"subtitles_count"`
	SubtitlesCounts SubtitleCounts `json:"subtitles_counts"`
}

// TvshowEpisodeStub is an episode as listed inside a season.
type TvshowEpisodeStub struct {
	EpisodeNumber int    `json:"episode_number"`
	Title         string `json:"title"`
	FeatureID     string `json:"feature_id"`
}

// TvshowSeason is a season with its episodes.
type TvshowSeason struct {
	SeasonNumber int                 `json:"season_number"`
	Episodes     []TvshowEpisodeStub `json:"episodes"`
}

// FeatureMovieAttributes are the attributes of a movie feature.
type FeatureMovieAttributes struct {
	FeatureBaseAttributes
	SeasonsCount    *int    `json:"seasons_count"`
	ParentTitle     *string `json:"parent_title"`
	SeasonNumber    *int    `json:"season_number"`
	EpisodeNumber   *int    `json:"episode_number"`
	ParentIMDbID    *int    `json:"parent_imdb_id"`
	ParentTMDBID    *int    `json:"parent_tmdb_id"`
	ParentFeatureID *string `json:"parent_feature_id"`
}

// FeatureTvshowAttributes are the attributes of a TV show feature.
type FeatureTvshowAttributes struct {
	FeatureBaseAttributes
	SeasonsCount int            `json:"seasons_count"`
	Seasons      []TvshowSeason `json:"seasons"`
}

// FeatureEpisodeAttributes are the attributes of an episode feature.
type FeatureEpisodeAttributes struct {
	FeatureBaseAttributes
	ParentIMDbID    *int    `json:"parent_imdb_id"`
	ParentTitle     *string `json:"parent_title"`
	ParentTMDBID    *int    `json:"parent_tmdb_id"`
	ParentFeatureID *string `json:"parent_feature_id"`
	SeasonNumber    int     `json:"season_number"`
	EpisodeNumber   int     `json:"episode_number"`
	MovieName       *string `json:"movie_name"`
}

// Feature represents any feature type returned by the API.
// Attributes stay raw until the caller picks the shape via Base, Movie, Tvshow or Episode.
type Feature struct {
	ApiDataWrapper
	Attributes json.RawMessage `json:"attributes"`
}

// Base decodes the attributes every feature type shares.
func (f Feature) Base() (FeatureBaseAttributes, error) {
	var attrs FeatureBaseAttributes
	err := f.decode(&attrs)
	return attrs, err
}

// Kind reports the feature type ("Movie", "Tvshow", "Episode"), or "" if unreadable.
func (f Feature) Kind() string {
	base, err := f.Base()
	if err != nil {
		return ""
	}
	return base.FeatureType
}

// Movie decodes the attributes as a movie.
func (f Feature) Movie() (FeatureMovieAttributes, error) {
	var attrs FeatureMovieAttributes
	err := f.decode(&attrs)
	return attrs, err
}

// Tvshow decodes the attributes as a TV show.
func (f Feature) Tvshow() (FeatureTvshowAttributes, error) {
	var attrs FeatureTvshowAttributes
	err := f.decode(&attrs)
	return attrs, err
}

// Episode decodes the attributes as an episode.
func (f Feature) Episode() (FeatureEpisodeAttributes, error) {
	var attrs FeatureEpisodeAttributes
	err := f.decode(&attrs)
	return attrs, err
}

func (f Feature) decode(v any) error {
	if len(f.Attributes) == 0 {
		return fmt.Errorf("feature %s has no attributes", f.ID)
	}
	if err := json.Unmarshal(f.Attributes, v); err != nil {
		return fmt.Errorf("failed to decode attributes of feature %s: %w", f.ID, err)
	}
	return nil
}

// SearchFeaturesResponse wraps the list of features.
type SearchFeaturesResponse struct {
	Data []Feature `json:"data"`
}

// --- Subtitle Types ---

// SubtitleFeatureDetails is the feature a subtitle belongs to, as embedded in the subtitle.
type SubtitleFeatureDetails struct {
	FeatureID       int     `json:"feature_id"`
	FeatureType     string  `json:"feature_type"`
	Year            int     `json:"year"`
	Title           string  `json:"title"`
	MovieName       string  `json:"movie_name"`
	IMDbID          *int    `json:"imdb_id"`
	TMDBID          *int    `json:"tmdb_id"`
	SeasonNumber    *int    `json:"season_number"`
	EpisodeNumber   *int    `json:"episode_number"`
	ParentIMDbID    *int    `json:"parent_imdb_id"`
	ParentTMDBID    *int    `json:"parent_tmdb_id"`
	ParentTitle     *string `json:"parent_title"`
	ParentFeatureID *int    `json:"parent_feature_id"`
}

// SubtitleFile is one file of a subtitle entry; FileID is what /download wants.
type SubtitleFile struct {
	FileID   int    `json:"file_id"`
	CDNumber int    `json:"cd_number"`
	FileName string `json:"file_name"`
}

// SubtitleAttributes holds the details of a subtitle entry.
type SubtitleAttributes struct {
	SubtitleID        string                 `json:"subtitle_id"`
	Language          LanguageCode           `json:"language"`
	DownloadCount     int                    `json:"download_count"`
	NewDownloadCount  int                    `json:"new_download_count"`
	HearingImpaired   bool                   `json:"hearing_impaired"`
	HD                bool                   `json:"hd"`
	FPS               *float64               `json:"fps"`
	Votes             int                    `json:"votes"`
	Points            *float64               `json:"points"`
	Ratings           float64                `json:"ratings"`
	FromTrusted       bool                   `json:"from_trusted"`
	ForeignPartsOnly  bool                   `json:"foreign_parts_only"`
	UploadDate        time.Time              `json:"upload_date"`
	AITranslated      bool                   `json:"ai_translated"`
	MachineTranslated bool                   `json:"machine_translated"`
	MoviehashMatch    *bool                  `json:"moviehash_match,omitempty"`
	Release           string                 `json:"release"`
	Comments          *string                `json:"comments"`
	LegacySubtitleID  *int                   `json:"legacy_subtitle_id"`
	NbCD              *int                   `json:"nb_cd"`
	Slug              *string                `json:"slug"`
	Uploader          UploaderInfo           `json:"uploader"`
	FeatureDetails    SubtitleFeatureDetails `json:"feature_details"`
	URL               string                 `json:"url"`
	RelatedLinks      []RelatedLink          `json:"related_links"`
	Files             []SubtitleFile         `json:"files"`
}

// Subtitle represents a full subtitle entry.
type Subtitle struct {
	ApiDataWrapper
	Attributes SubtitleAttributes `json:"attributes"`
}

// SearchSubtitlesParams holds the query of /subtitles. Nil fields are left out.
type SearchSubtitlesParams struct {
	ID                *int                  `url:"id,omitempty"`
	IMDbID            *int                  `url:"imdb_id,omitempty"`
	TMDBID            *int                  `url:"tmdb_id,omitempty"`
	ParentIMDbID      *int                  `url:"parent_imdb_id,omitempty"`
	ParentTMDBID      *int                  `url:"parent_tmdb_id,omitempty"`
	ParentFeatureID   *int                  `url:"parent_feature_id,omitempty"`
	Query             *string               `url:"query,omitempty"`
	SeasonNumber      *int                  `url:"season_number,omitempty"`
	EpisodeNumber     *int                  `url:"episode_number,omitempty"`
	Moviehash         *string               `url:"moviehash,omitempty"` // 16 lowercase hex digits
	Languages         *string               `url:"languages,omitempty"` // Comma-separated, sorted
	Type              *string               `url:"type,omitempty"`      // movie, episode or all
	Year              *int                  `url:"year,omitempty"`
	AITranslated      *FilterInclusion      `url:"ai_translated,omitempty"`
	MachineTranslated *FilterInclusion      `url:"machine_translated,omitempty"`
	HearingImpaired   *FilterInclusionOnly  `url:"hearing_impaired,omitempty"`
	ForeignPartsOnly  *FilterInclusionOnly  `url:"foreign_parts_only,omitempty"`
	TrustedSources    *FilterTrustedSources `url:"trusted_sources,omitempty"`
	MoviehashMatch    *string               `url:"moviehash_match,omitempty"`
	UploaderID        *int                  `url:"uploader_id,omitempty"`
	OrderBy           *string               `url:"order_by,omitempty"`
	OrderDirection    *SortDirection        `url:"order_direction,omitempty"`
	Page              *int                  `url:"page,omitempty"`
}

// SearchSubtitlesResponse wraps the paginated subtitle results.
type SearchSubtitlesResponse struct {
	PaginatedResponse
	Data []Subtitle `json:"data"`
}

// DownloadRequest is the request body for the /download endpoint.
type DownloadRequest struct {
	FileID        int      `json:"file_id"`
	SubFormat     *string  `json:"sub_format,omitempty"`
	FileName      *string  `json:"file_name,omitempty"`
	InFPS         *float64 `json:"in_fps,omitempty"`
	OutFPS        *float64 `json:"out_fps,omitempty"`
	Timeshift     *float64 `json:"timeshift,omitempty"`
	ForceDownload *bool    `json:"force_download,omitempty"`
}

// DownloadResponse is the response from the /download endpoint.
// Link is temporary; Remaining is what is left of the daily quota.
type DownloadResponse struct {
	Link         string    `json:"link"`
	FileName     string    `json:"file_name"`
	Requests     int       `json:"requests"`
	Remaining    int       `json:"remaining"`
	Message      string    `json:"message"`
	ResetTime    string    `json:"reset_time"`
	ResetTimeUTC time.Time `json:"reset_time_utc"`
}

// --- Discover Types ---

// DiscoverParams defines common query parameters for discover endpoints.
type DiscoverParams struct {
	Language *LanguageCode `url:"language,omitempty"` // A language code or "all"
	Type     *FeatureType  `url:"type,omitempty"`
}

// DiscoverPopularResponse wraps popular features; movies and TV shows are mixed,
// so check Feature.Kind before decoding.
type DiscoverPopularResponse struct {
	Data []Feature `json:"data"`
}

// DiscoverLatestResponse wraps the latest subtitles. The API always returns a single page.
type DiscoverLatestResponse struct {
	PaginatedResponse
	Data []Subtitle `json:"data"`
}

// DiscoverMostDownloadedResponse wraps paginated most downloaded subtitles.
type DiscoverMostDownloadedResponse struct {
	PaginatedResponse
	Data []Subtitle `json:"data"`
}

// --- Info Types ---

// FormatsResponse lists the subtitle formats accepted by /download's sub_format.
type FormatsResponse struct {
	Data struct {
		OutputFormats []string `json:"output_formats"`
	} `json:"data"`
}

// Language is one entry of /infos/languages.
type Language struct {
	LanguageCode LanguageCode `json:"language_code"`
	LanguageName string       `json:"language_name"`
}

// LanguagesResponse wraps the list of supported languages.
type LanguagesResponse struct {
	Data []Language `json:"data"`
}

// --- Utilities Types ---

// GuessitParams defines query parameters for the /utilities/guessit endpoint.
type GuessitParams struct {
	Filename string `url:"filename"`
}

// GuessitResponse is what guessit made of a filename. Undetected fields are nil.
type GuessitResponse struct {
	Title            *string       `json:"title"`
	Year             *int          `json:"year"`
	Season           *int          `json:"season"`
	Episode          *int          `json:"episode"`
	EpisodeTitle     *string       `json:"episode_title"`
	Language         *LanguageCode `json:"language"`
	SubtitleLanguage *LanguageCode `json:"subtitle_language"`
	ScreenSize       *string       `json:"screen_size"`
	StreamingService *string       `json:"streaming_service"`
	Source           *string       `json:"source"`
	Other            *string       `json:"other"`
	AudioCodec       *string       `json:"audio_codec"`
	AudioChannels    *string       `json:"audio_channels"`
	AudioProfile     *string       `json:"audio_profile"`
	VideoCodec       *string       `json:"video_codec"`
	ReleaseGroup     *string       `json:"release_group"`
	Type             *string       `json:"type"` // episode or movie
}
