package opensubtitles

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawAttributes marshals typed attributes the way the API would send them.
func rawAttributes(t *testing.T, attrs any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(attrs)
	require.NoError(t, err)
	return b
}

func TestSearchFeaturesSuccessByID(t *testing.T) {
	expectedIMDbID := "539911"
	expectedFeatureID := "1480735"
	expectedFeatureType := "Episode"

	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/features", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		query := r.URL.Query()
		assert.Equal(t, expectedIMDbID, query.Get("imdb_id"))
		assert.Equal(t, "", query.Get("query"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		resp := SearchFeaturesResponse{
			Data: []Feature{
				{
					ApiDataWrapper: ApiDataWrapper{ID: expectedFeatureID, Type: "feature"},
					Attributes: rawAttributes(t, FeatureEpisodeAttributes{
						FeatureBaseAttributes: FeatureBaseAttributes{
							FeatureID:   expectedFeatureID,
							FeatureType: expectedFeatureType,
							Title:       "the tortelli tort",
							Year:        "1982",
							IMDbID:      pint(539911),
							TMDBID:      pint(7645),
						},
						SeasonNumber:  1,
						EpisodeNumber: 3,
						ParentTitle:   pstr("Cheers"),
						ParentIMDbID:  pint(83399),
					}),
				},
			},
		}
		err := json.NewEncoder(w).Encode(resp)
		require.NoError(t, err)
	}

	_, client := setupTestServer(t, handler)

	resp, err := client.SearchFeatures(context.Background(), SearchFeaturesParams{IMDbID: String(expectedIMDbID)})

	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, resp.Data, 1)

	feature := resp.Data[0]
	assert.Equal(t, expectedFeatureID, feature.ID)
	assert.Equal(t, expectedFeatureType, feature.Kind())

	episode, err := feature.Episode()
	require.NoError(t, err)
	assert.Equal(t, "the tortelli tort", episode.Title)
	assert.Equal(t, 1, episode.SeasonNumber)
	assert.Equal(t, 3, episode.EpisodeNumber)
	require.NotNil(t, episode.ParentTitle)
	assert.Equal(t, "Cheers", *episode.ParentTitle)
	require.NotNil(t, episode.ParentIMDbID)
	assert.Equal(t, 83399, *episode.ParentIMDbID)
}

func TestSearchFeaturesByQuery(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "breaking bad", query.Get("query"))
		assert.Equal(t, "tvshow", query.Get("type"))
		assert.Equal(t, "true", query.Get("full_search"))

		_, _ = w.Write([]byte(`{"data":[{"id":"1","type":"feature","attributes":{
			"feature_id":"1","feature_type":"Tvshow","title":"Breaking Bad","year":"2008",
			"seasons_count":5,"seasons":[{"season_number":1,"episodes":[{"episode_number":1,"title":"Pilot","feature_id":"2"}]}]}}]}`))
	}
	_, client := setupTestServer(t, handler)

	resp, err := client.SearchFeatures(context.Background(), SearchFeaturesParams{
		Query:      String("breaking bad"),
		Type:       String(string(FeatureTVShow)),
		FullSearch: Bool(true),
	})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	show, err := resp.Data[0].Tvshow()
	require.NoError(t, err)
	assert.Equal(t, 5, show.SeasonsCount)
	require.Len(t, show.Seasons, 1)
	assert.Equal(t, "Pilot", show.Seasons[0].Episodes[0].Title)
}

func TestFeatureAttributes(t *testing.T) {
	t.Run("Movie", func(t *testing.T) {
		f := Feature{ApiDataWrapper: ApiDataWrapper{ID: "9"}, Attributes: json.RawMessage(`{"feature_type":"Movie","title":"Inception","year":"2010","imdb_id":1375666}`)}
		movie, err := f.Movie()
		require.NoError(t, err)
		assert.Equal(t, "Inception", movie.Title)
		assert.Equal(t, "2010", movie.Year)
		require.NotNil(t, movie.IMDbID)
		assert.Equal(t, 1375666, *movie.IMDbID)
		assert.Nil(t, movie.SeasonsCount)
	})

	t.Run("Missing", func(t *testing.T) {
		f := Feature{ApiDataWrapper: ApiDataWrapper{ID: "9"}}
		_, err := f.Base()
		assert.ErrorContains(t, err, "feature 9 has no attributes")
		assert.Empty(t, f.Kind())
	})

	t.Run("Malformed", func(t *testing.T) {
		f := Feature{ApiDataWrapper: ApiDataWrapper{ID: "9"}, Attributes: json.RawMessage(`{"title": 5}`)}
		_, err := f.Movie()
		assert.ErrorContains(t, err, "failed to decode attributes of feature 9")
	})
}
