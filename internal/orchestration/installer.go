package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/purecloud"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning/destroy"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning/modules"
	"github.com/purecloudlabs/premium-app-installer/internal/report"
)

// InstallOptions tune an install run.
type InstallOptions struct {
	// SkipProductCheck skips the preflight product entitlement check.
	SkipProductCheck bool
	// Reinstall removes the existing installation before creating it again.
	Reinstall bool
}

// Result describes a finished install run, successful or not.
type Result struct {
	InstallID string
	Resources []provisioning.Resource
	Report    *report.Report

	// AppURL is the configured app URL with its placeholders expanded.
	AppURL string
	// ReportPath and ReportKey are set by the hooks that wrote the report.
	ReportPath string
	ReportKey  string

	HookErrors []error
}

// Created returns how many resources the run created.
func (r *Result) Created() int {
	n := 0
	for _, res := range r.Resources {
		if res.Created {
			n++
		}
	}
	return n
}

// Installer orchestrates an installation.
type Installer struct {
	settings
}

// NewInstaller creates an installer for a manifest. The built-in finally
// hooks run before any hook added with WithHook.
func NewInstaller(platform purecloud.PlatformManager, cfg *config.Config, m *config.Manifest, opts ...Option) *Installer {
	i := &Installer{settings: newSettings(platform, cfg, m, opts)}
	i.hooks = append(i.builtinHooks(), i.hooks...)
	return i
}

// Install provisions every manifest resource and then runs the finally hooks.
// The returned Result is non-nil whenever the phases ran, even if they failed.
func (i *Installer) Install(ctx context.Context, opts InstallOptions) (*Result, error) {
	started := time.Now()
	installID := uuid.NewString()

	mods, err := modules.Build(i.manifest)
	if err != nil {
		return nil, err
	}
	phases := []provisioning.Phase{
		&preflightPhase{skipProductCheck: opts.SkipProductCheck},
		provisioning.NewValidationPhase(),
	}
	if opts.Reinstall {
		reversed, err := modules.BuildReversed(i.manifest)
		if err != nil {
			return nil, err
		}
		phases = append(phases, destroy.NewProvisioner(reversed, destroy.Options{}))
	}
	phases = append(phases, &createPhase{modules: mods}, &configurePhase{modules: mods})

	runCtx, cancel := i.runTimeout(ctx)
	defer cancel()
	pctx := i.newContext(runCtx)
	pctx.Observer = i.observer.WithFields(map[string]string{"install": installID})

	runErr := provisioning.RunPhases(pctx, phases)

	res := &Result{
		InstallID: installID,
		Resources: pctx.State.Resources(),
		Report:    report.New(pctx, installID, started, runErr),
		AppURL:    ExpandAppURL(i.config),
	}

	// Hooks still run when the phases were cancelled or timed out.
	hookCtx := pctx.WithContext(context.WithoutCancel(ctx))
	i.runHooks(hookCtx, res)

	i.metrics.MarkRun("install", runErr)
	if runErr != nil {
		return res, fmt.Errorf("install %s failed: %w", installID, runErr)
	}
	return res, nil
}
