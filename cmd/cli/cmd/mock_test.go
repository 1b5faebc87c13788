package cmd_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/angelospk/opensubtitles-go"
	clicmd "github.com/angelospk/opensubtitles-go/cmd/cli/cmd"
	"github.com/angelospk/opensubtitles-go/internal/httpclient"
)

// MockOSClient is a mock implementation of clicmd.APIClient using testify/mock
type MockOSClient struct {
	mock.Mock
}

var _ clicmd.APIClient = (*MockOSClient)(nil)

// ret returns the first mocked value as T, or the zero value when it was nil.
func ret[T any](args mock.Arguments) T {
	var zero T
	if args.Get(0) == nil {
		return zero
	}
	return args.Get(0).(T)
}

func (m *MockOSClient) Login(ctx context.Context, params opensubtitles.LoginRequest) (*opensubtitles.LoginResponse, error) {
	args := m.Called(ctx, params)
	return ret[*opensubtitles.LoginResponse](args), args.Error(1)
}

func (m *MockOSClient) Logout(ctx context.Context) (*opensubtitles.LogoutResponse, error) {
	args := m.Called(ctx)
	return ret[*opensubtitles.LogoutResponse](args), args.Error(1)
}

func (m *MockOSClient) GetUserInfo(ctx context.Context) (*opensubtitles.GetUserInfoResponse, error) {
	args := m.Called(ctx)
	return ret[*opensubtitles.GetUserInfoResponse](args), args.Error(1)
}

func (m *MockOSClient) SearchSubtitles(ctx context.Context, params opensubtitles.SearchSubtitlesParams) (*opensubtitles.SearchSubtitlesResponse, error) {
	args := m.Called(ctx, params)
	return ret[*opensubtitles.SearchSubtitlesResponse](args), args.Error(1)
}

func (m *MockOSClient) Download(ctx context.Context, params opensubtitles.DownloadRequest) (*opensubtitles.DownloadResponse, error) {
	args := m.Called(ctx, params)
	return ret[*opensubtitles.DownloadResponse](args), args.Error(1)
}

func (m *MockOSClient) FetchFile(ctx context.Context, link, dest string) (int64, error) {
	args := m.Called(ctx, link, dest)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOSClient) SearchFeatures(ctx context.Context, params opensubtitles.SearchFeaturesParams) (*opensubtitles.SearchFeaturesResponse, error) {
	args := m.Called(ctx, params)
	return ret[*opensubtitles.SearchFeaturesResponse](args), args.Error(1)
}

func (m *MockOSClient) DiscoverPopular(ctx context.Context, params opensubtitles.DiscoverParams) (*opensubtitles.DiscoverPopularResponse, error) {
	args := m.Called(ctx, params)
	return ret[*opensubtitles.DiscoverPopularResponse](args), args.Error(1)
}

func (m *MockOSClient) DiscoverLatest(ctx context.Context, params opensubtitles.DiscoverParams) (*opensubtitles.DiscoverLatestResponse, error) {
	args := m.Called(ctx, params)
	return ret[*opensubtitles.DiscoverLatestResponse](args), args.Error(1)
}

func (m *MockOSClient) DiscoverMostDownloaded(ctx context.Context, params opensubtitles.DiscoverParams) (*opensubtitles.DiscoverMostDownloadedResponse, error) {
	args := m.Called(ctx, params)
	return ret[*opensubtitles.DiscoverMostDownloadedResponse](args), args.Error(1)
}

func (m *MockOSClient) Guessit(ctx context.Context, params opensubtitles.GuessitParams) (*opensubtitles.GuessitResponse, error) {
	args := m.Called(ctx, params)
	return ret[*opensubtitles.GuessitResponse](args), args.Error(1)
}

func (m *MockOSClient) SetAuthToken(token string, baseUrl string) error {
	return m.Called(token, baseUrl).Error(0)
}

func (m *MockOSClient) GetCurrentToken() *string {
	return ret[*string](m.Called())
}

func (m *MockOSClient) GetCurrentBaseURL() string {
	return m.Called().String(0)
}

func (m *MockOSClient) Executor() *httpclient.Executor {
	return ret[*httpclient.Executor](m.Called())
}
