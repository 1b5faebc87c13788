package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clicmd "github.com/angelospk/opensubtitles-go/cmd/cli/cmd"
	"github.com/angelospk/opensubtitles-go/internal/config"
	"github.com/angelospk/opensubtitles-go/internal/session"
)

// cliEnv is an isolated home, working directory and session file for one test.
type cliEnv struct {
	v           *viper.Viper
	sessionPath string
}

func newCLIEnv(t *testing.T, mockClient clicmd.APIClient) *cliEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OSCLIENT_OPENSUBTITLES_APIKEY", "")
	chdir(t, t.TempDir())

	originalNewClientFunc := clicmd.NewClientFunc
	t.Cleanup(func() { clicmd.NewClientFunc = originalNewClientFunc })
	clicmd.NewClientFunc = func(cfg *config.Config, log *logrus.Logger) (clicmd.APIClient, error) {
		assert.NotEmpty(t, cfg.OpenSubtitles.APIKey, "API key should not be empty when creating client")
		return mockClient, nil
	}

	env := &cliEnv{v: viper.New(), sessionPath: filepath.Join(t.TempDir(), "session.db")}
	env.v.Set(config.KeyAPIKey, "test-api-key")
	env.v.Set(config.KeySession, env.sessionPath)
	return env
}

// run executes the command line and returns what it printed.
func (e *cliEnv) run(args ...string) (string, error) {
	root := clicmd.NewRootCmd(e.v)
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func (e *cliEnv) saveSession(t *testing.T, sess session.Session) {
	t.Helper()
	store, err := session.Open(e.sessionPath)
	require.NoError(t, err)
	require.NoError(t, store.Save(sess))
	require.NoError(t, store.Close())
}

func (e *cliEnv) loadSession(t *testing.T) (*session.Session, error) {
	t.Helper()
	store, err := session.Open(e.sessionPath)
	require.NoError(t, err)
	defer store.Close()
	return store.Load()
}

func TestRootRequiresAPIKey(t *testing.T) {
	mockClient := new(MockOSClient)
	env := newCLIEnv(t, mockClient)
	env.v.Set(config.KeyAPIKey, "")

	_, err := env.run("whoami")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not configured")
	mockClient.AssertExpectations(t)
}

func TestRootBadConfigFile(t *testing.T) {
	env := newCLIEnv(t, new(MockOSClient))
	cfgFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, writeFile(cfgFile, "opensubtitles: [oops"))

	_, err := env.run("--config", cfgFile, "whoami")

	assert.ErrorContains(t, err, "read config file")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
