package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/angelospk/opensubtitles-go"
	"github.com/angelospk/opensubtitles-go/internal/config"
	"github.com/angelospk/opensubtitles-go/internal/httpclient"
	"github.com/angelospk/opensubtitles-go/internal/logger"
	"github.com/angelospk/opensubtitles-go/internal/session"
	coreErrors "github.com/angelospk/opensubtitles-go/pkg/core/errors"
)

// APIClient is the part of *opensubtitles.Client the commands use.
type APIClient interface {
	Login(ctx context.Context, params opensubtitles.LoginRequest) (*opensubtitles.LoginResponse, error)
	Logout(ctx context.Context) (*opensubtitles.LogoutResponse, error)
	GetUserInfo(ctx context.Context) (*opensubtitles.GetUserInfoResponse, error)
	SearchSubtitles(ctx context.Context, params opensubtitles.SearchSubtitlesParams) (*opensubtitles.SearchSubtitlesResponse, error)
	Download(ctx context.Context, params opensubtitles.DownloadRequest) (*opensubtitles.DownloadResponse, error)
	FetchFile(ctx context.Context, link, dest string) (int64, error)
	SearchFeatures(ctx context.Context, params opensubtitles.SearchFeaturesParams) (*opensubtitles.SearchFeaturesResponse, error)
	DiscoverPopular(ctx context.Context, params opensubtitles.DiscoverParams) (*opensubtitles.DiscoverPopularResponse, error)
	DiscoverLatest(ctx context.Context, params opensubtitles.DiscoverParams) (*opensubtitles.DiscoverLatestResponse, error)
	DiscoverMostDownloaded(ctx context.Context, params opensubtitles.DiscoverParams) (*opensubtitles.DiscoverMostDownloadedResponse, error)
	Guessit(ctx context.Context, params opensubtitles.GuessitParams) (*opensubtitles.GuessitResponse, error)
	SetAuthToken(token string, baseUrl string) error
	GetCurrentToken() *string
	GetCurrentBaseURL() string
	Executor() *httpclient.Executor
}

var _ APIClient = (*opensubtitles.Client)(nil)

// NewClientFunc creates the API client. Tests replace it with a mock.
var NewClientFunc = func(cfg *config.Config, log *logrus.Logger) (APIClient, error) {
	client, err := opensubtitles.NewClient(opensubtitles.Config{
		ApiKey:    cfg.OpenSubtitles.APIKey,
		UserAgent: cfg.OpenSubtitles.UserAgent,
		Server:    cfg.OpenSubtitles.BaseURL(),
		Timeout:   cfg.OpenSubtitles.Timeout,
		Logger:    logrus.NewEntry(log),
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// app carries what every command shares.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCmd builds the osclient command tree on top of v.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v}

	root := &cobra.Command{
		Use:   "osclient",
		Short: "A command line client for the OpenSubtitles REST API.",
		Long: `osclient searches, inspects and downloads subtitles from OpenSubtitles.com.

The API key is read from the config file (opensubtitles.apikey), a .env file
or the OSCLIENT_OPENSUBTITLES_APIKEY environment variable.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.v.BindPFlag(config.KeyLogLevel, cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
				return err
			}
			return config.Init(a.v, a.cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.osclient/config.yaml or ./config.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newSearchCmd(a),
		newScanCmd(a),
		newDownloadCmd(a),
		newFeaturesCmd(a),
		newDiscoverCmd(a),
		newGuessitCmd(a),
		newRequestCmd(a),
	)
	return root
}

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := NewRootCmd(viper.GetViper()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// runtime is the per-invocation state: config, logger, client and session store.
type runtime struct {
	cfg    *config.Config
	log    *logrus.Logger
	client APIClient
	store  *session.Store
}

// open loads the config, creates the client and restores a stored login.
func (a *app) open(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		log.Warn(err)
	}

	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	client, err := NewClientFunc(cfg, log)
	if err != nil {
		log.WithError(err).Error("Failed to initialize OpenSubtitles client")
		return nil, fmt.Errorf("failed to initialize OpenSubtitles client: %w", err)
	}

	store, err := session.Open(cfg.Session.Path)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, log: log, client: client, store: store}
	if err := rt.restore(); err != nil {
		store.Close()
		return nil, err
	}
	return rt, nil
}

func (rt *runtime) restore() error {
	sess, err := rt.store.Load()
	if errors.Is(err, coreErrors.ErrNoSessionData) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	rt.log.WithField("base_url", sess.BaseURL).Debug("Restoring stored session")
	return rt.client.SetAuthToken(sess.Token, sess.BaseURL)
}

func (rt *runtime) Close() {
	if err := rt.store.Close(); err != nil {
		rt.log.WithError(err).Warn("Failed to close session store")
	}
}

// headers are the ones the client sends on its own calls, for raw requests.
func (rt *runtime) headers() map[string]string {
	h := map[string]string{
		"User-Agent": rt.cfg.OpenSubtitles.UserAgent,
		"Accept":     "application/json",
	}
	if token := rt.client.GetCurrentToken(); token != nil {
		h["Authorization"] = "Bearer " + *token
	}
	return h
}

// explain adds the API's own message to an HTTP error, when it sent one.
func explain(err error) error {
	var httpErr *coreErrors.HTTPError
	if errors.As(err, &httpErr) {
		if msg := httpErr.Message(); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
	}
	return err
}
