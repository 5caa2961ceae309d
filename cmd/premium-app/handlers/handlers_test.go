package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/orchestration"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/report"
	"github.com/purecloudlabs/premium-app-installer/internal/ui/tui"
)

const testManifestYAML = `prefix: TEST_
productId: premium-app-test
roles:
  - name: Role
groups:
  - name: Agents
`

// saveAndRestoreFactories restores every factory variable after the test.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origFind, origLoad, origPlatform := findConfigFile, loadConfigFile, newPlatform
	origInteractive, origTUI, origOutput := isInteractive, runTUI, output
	origUnvalidated, origAuthorize, origCache := loadConfigUnvalidated, authorize, tokenCache
	origWizard, origWrite := runWizard, writeConfig

	isInteractive = func() bool { return false }

	t.Cleanup(func() {
		findConfigFile, loadConfigFile, newPlatform = origFind, origLoad, origPlatform
		isInteractive, runTUI, output = origInteractive, origTUI, origOutput
		loadConfigUnvalidated, authorize, tokenCache = origUnvalidated, origAuthorize, origCache
		runWizard, writeConfig = origWizard, origWrite
	})
}

// writeTestConfig writes a token-mode config and a small manifest into a
// temp dir and returns the config path.
func writeTestConfig(t *testing.T, mutate func(*config.Config)) string {
	t.Helper()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifestYAML), 0o600))

	cfg := &config.Config{
		Environment: "mypurecloud.com",
		AuthMode:    config.AuthToken,
		AppURL:      "https://app.example.com/?env={{pcEnvironment}}",
		Manifest:    manifestPath,
		Report:      config.ReportConfig{Path: filepath.Join(dir, "report.yaml")},
	}
	if mutate != nil {
		mutate(cfg)
	}
	path := filepath.Join(dir, config.DefaultConfigFilename)
	require.NoError(t, config.Write(cfg, path))
	t.Setenv(config.EnvAccessToken, "token")
	return path
}

func useFake(t *testing.T) *purecloud.FakeClient {
	t.Helper()
	fake := purecloud.NewFakeClient()
	newPlatform = func(context.Context, *config.Config, logr.Logger, *provisioning.Metrics) (purecloud.PlatformManager, error) {
		return fake, nil
	}
	return fake
}

func roleNames(fake *purecloud.FakeClient) []string {
	var names []string
	for _, r := range fake.Roles {
		names = append(names, r.Name)
	}
	return names
}

func TestLoadConfig_EmptyPath_NoDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = func() (string, error) {
		return "", config.ErrConfigNotFound
	}

	_, err := loadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
	assert.Contains(t, err.Error(), "premium-app init")
}

func TestLoadConfig_EmptyPath_FindsDefaultFile(t *testing.T) {
	saveAndRestoreFactories(t)
	path := writeTestConfig(t, nil)
	findConfigFile = func() (string, error) { return path, nil }

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "mypurecloud.com", cfg.Environment)
	assert.Equal(t, "token", cfg.AccessToken)
}

func TestLoadConfig_Invalid(t *testing.T) {
	saveAndRestoreFactories(t)
	path := writeTestConfig(t, nil)
	t.Setenv(config.EnvAccessToken, "")

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrAccessTokenMissing)
}

func TestInstall(t *testing.T) {
	saveAndRestoreFactories(t)
	fake := useFake(t)
	path := writeTestConfig(t, nil)

	err := Install(context.Background(), InstallOptions{
		Globals:          Globals{ConfigPath: path},
		SkipProductCheck: true,
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"TEST_Role"}, roleNames(fake))

	r, err := report.Load(filepath.Join(filepath.Dir(path), "report.yaml"))
	require.NoError(t, err)
	assert.Equal(t, report.StatusSucceeded, r.Status)
	assert.Len(t, r.Resources, 2)
}

func TestInstall_ProductNotOwned(t *testing.T) {
	saveAndRestoreFactories(t)
	fake := useFake(t)
	path := writeTestConfig(t, nil)

	err := Install(context.Background(), InstallOptions{Globals: Globals{ConfigPath: path}})
	require.Error(t, err)
	assert.ErrorIs(t, err, orchestration.ErrProductNotOwned)
	assert.Zero(t, fake.Count())

	r, loadErr := report.Load(filepath.Join(filepath.Dir(path), "report.yaml"))
	require.NoError(t, loadErr, "failed installs still write a report")
	assert.Equal(t, report.StatusFailed, r.Status)
}

func TestInstall_AuthFailure(t *testing.T) {
	saveAndRestoreFactories(t)
	path := writeTestConfig(t, nil)
	newPlatform = func(context.Context, *config.Config, logr.Logger, *provisioning.Metrics) (purecloud.PlatformManager, error) {
		return nil, purecloud.ErrLoginRequired
	}

	err := Install(context.Background(), InstallOptions{Globals: Globals{ConfigPath: path}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to authenticate")
	assert.ErrorIs(t, err, purecloud.ErrLoginRequired)
}

func TestInstall_UsesDashboardOnTerminal(t *testing.T) {
	saveAndRestoreFactories(t)
	fake := useFake(t)
	fake.Products = []string{"premium-app-test"}
	path := writeTestConfig(t, func(c *config.Config) { c.TUI = true })
	isInteractive = func() bool { return true }

	var model tui.Model
	runTUI = func(ctx context.Context, m tui.Model, fn tui.RunFunc) error {
		model = m
		_, err := fn(ctx, provisioning.NewConsoleObserver(logr.Discard()))
		return err
	}

	require.NoError(t, Install(context.Background(), InstallOptions{Globals: Globals{ConfigPath: path}}))
	assert.Equal(t, tui.ModeInstall, model.Mode)
	assert.Equal(t, "TEST_", model.Prefix)
	assert.NotEmpty(t, roleNames(fake))
}

func TestInstall_MetricsFile(t *testing.T) {
	saveAndRestoreFactories(t)
	useFake(t)
	path := writeTestConfig(t, nil)
	metricsPath := filepath.Join(t.TempDir(), "premium_app.prom")

	require.NoError(t, Install(context.Background(), InstallOptions{
		Globals:          Globals{ConfigPath: path, MetricsFile: metricsPath},
		SkipProductCheck: true,
	}))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `premium_app_installer_last_run_timestamp_seconds{command="install",result="success"}`)
}

func TestUninstall(t *testing.T) {
	saveAndRestoreFactories(t)
	fake := useFake(t)
	path := writeTestConfig(t, nil)
	require.NoError(t, Install(context.Background(), InstallOptions{Globals: Globals{ConfigPath: path}, SkipProductCheck: true}))
	require.Equal(t, 2, fake.Count())

	require.NoError(t, Uninstall(context.Background(), UninstallOptions{Globals: Globals{ConfigPath: path}, DryRun: true}))
	assert.Equal(t, 2, fake.Count(), "dry run removes nothing")

	require.NoError(t, Uninstall(context.Background(), UninstallOptions{Globals: Globals{ConfigPath: path}}))
	assert.Zero(t, fake.Count())
}

func TestUninstall_Failure(t *testing.T) {
	saveAndRestoreFactories(t)
	fake := useFake(t)
	path := writeTestConfig(t, nil)
	require.NoError(t, Install(context.Background(), InstallOptions{Globals: Globals{ConfigPath: path}, SkipProductCheck: true}))
	fake.Errors["DeleteGroup"] = errors.New("forbidden")

	err := Uninstall(context.Background(), UninstallOptions{Globals: Globals{ConfigPath: path}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uninstall failed")
	assert.Empty(t, roleNames(fake), "removal continues past the failed group")
}

func TestUninstallSummary(t *testing.T) {
	res := &orchestration.UninstallResult{
		Planned: []provisioning.Resource{{Category: config.CategoryRole, Name: "Role", FullName: "TEST_Role"}},
	}

	assert.Contains(t, uninstallSummary(res, true), "TEST_Role")
	assert.Contains(t, uninstallSummary(res, false), "Removed 0 of 1")
	assert.Empty(t, uninstallSummary(nil, false))
}

func TestStatus(t *testing.T) {
	saveAndRestoreFactories(t)
	useFake(t)
	path := writeTestConfig(t, nil)
	var out bytes.Buffer
	output = &out

	require.NoError(t, Status(context.Background(), Globals{ConfigPath: path}))
	assert.Contains(t, out.String(), "role")
	assert.Contains(t, out.String(), "1 missing")

	out.Reset()
	require.NoError(t, Install(context.Background(), InstallOptions{Globals: Globals{ConfigPath: path}, SkipProductCheck: true}))
	require.NoError(t, Status(context.Background(), Globals{ConfigPath: path}))
	assert.Contains(t, out.String(), "1/1 ok")
	assert.Contains(t, out.String(), "TEST_Agents")
}

func TestManifest(t *testing.T) {
	saveAndRestoreFactories(t)
	var out bytes.Buffer
	output = &out

	t.Run("default", func(t *testing.T) {
		out.Reset()
		require.NoError(t, Manifest(ManifestOptions{Default: true}))
		assert.Equal(t, string(config.DefaultManifestYAML()), out.String())
	})

	t.Run("no config falls back to the default", func(t *testing.T) {
		out.Reset()
		findConfigFile = func() (string, error) { return "", config.ErrConfigNotFound }
		require.NoError(t, Manifest(ManifestOptions{}))
		assert.Contains(t, out.String(), "prefix: PREMIUM_EXAMPLE_")
	})

	t.Run("config overrides", func(t *testing.T) {
		out.Reset()
		path := writeTestConfig(t, func(c *config.Config) { c.Prefix = "ACME_" })
		require.NoError(t, Manifest(ManifestOptions{Globals: Globals{ConfigPath: path}}))
		assert.Contains(t, out.String(), "prefix: ACME_")
		assert.Contains(t, out.String(), "# 2 resources")
	})
}

func TestLogin(t *testing.T) {
	saveAndRestoreFactories(t)
	cache := &purecloud.TokenCache{Dir: t.TempDir()}
	tokenCache = func() (*purecloud.TokenCache, error) { return cache, nil }

	path := writeTestConfig(t, func(c *config.Config) {
		c.AuthMode = config.AuthBrowser
		c.OAuthClientID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	})

	var got purecloud.LoginOptions
	authorize = func(_ context.Context, opts purecloud.LoginOptions) (*oauth2.Token, error) {
		got = opts
		return &oauth2.Token{AccessToken: "fresh", Expiry: time.Now().Add(time.Hour)}, nil
	}

	require.NoError(t, Login(context.Background(), LoginOptions{Globals: Globals{ConfigPath: path}}))
	assert.Equal(t, "mypurecloud.com", got.Environment)
	assert.Equal(t, config.DefaultRedirectPort, got.Port)

	tok, err := cache.Load("mypurecloud.com")
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)

	require.NoError(t, Login(context.Background(), LoginOptions{Globals: Globals{ConfigPath: path}, Logout: true}))
	_, err = cache.Load("mypurecloud.com")
	assert.ErrorIs(t, err, purecloud.ErrLoginRequired)
}

func TestLogin_WrongMode(t *testing.T) {
	saveAndRestoreFactories(t)
	tokenCache = func() (*purecloud.TokenCache, error) { return &purecloud.TokenCache{Dir: t.TempDir()}, nil }
	path := writeTestConfig(t, nil)

	err := Login(context.Background(), LoginOptions{Globals: Globals{ConfigPath: path}})
	assert.ErrorIs(t, err, errNotBrowserMode)
}

func TestUseTUI(t *testing.T) {
	saveAndRestoreFactories(t)
	on, off := true, false
	cfg := &config.Config{TUI: true}

	isInteractive = func() bool { return true }
	assert.True(t, useTUI(cfg, nil))
	assert.False(t, useTUI(cfg, &off))
	assert.True(t, useTUI(&config.Config{}, &on))

	isInteractive = func() bool { return false }
	assert.False(t, useTUI(cfg, &on), "never without a terminal")
}
