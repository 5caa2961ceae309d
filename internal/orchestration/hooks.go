package orchestration

import (
	"fmt"
	"strings"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/report"
)

const phaseFinally = "finally"

// Hook runs after the install phases, whether or not they succeeded.
type Hook struct {
	Name string
	Run  func(ctx *provisioning.Context, res *Result) error
}

// builtinHooks returns the built-in hooks in run order. The local report is
// written last so it records the failures of the hooks before it.
func (s *settings) builtinHooks() []Hook {
	return []Hook{
		{Name: "app-url", Run: logAppURL},
		{Name: "upload-report", Run: s.uploadReport},
		{Name: "write-report", Run: writeReport},
	}
}

// runHooks runs every hook in registration order. Failures are logged and
// collected on res.
func (i *Installer) runHooks(ctx *provisioning.Context, res *Result) {
	for _, h := range i.hooks {
		err := h.Run(ctx, res)
		if err == nil {
			continue
		}
		err = fmt.Errorf("%s: %w", h.Name, err)
		res.HookErrors = append(res.HookErrors, err)
		res.Report.HookErrors = append(res.Report.HookErrors, err.Error())
		ctx.Observer.Event(provisioning.Event{
			Type:     provisioning.EventHookFailed,
			Phase:    phaseFinally,
			Resource: h.Name,
			Message:  err.Error(),
		})
	}
}

// ExpandAppURL substitutes the placeholders Genesys Cloud fills in when it
// embeds the app.
func ExpandAppURL(cfg *config.Config) string {
	return strings.NewReplacer(
		"{{pcEnvironment}}", cfg.Environment,
		"{{pcLangTag}}", cfg.Language,
	).Replace(cfg.AppURL)
}

// AdminURL returns the Genesys Cloud admin page listing installed apps.
func AdminURL(env string) string {
	return config.AppsBaseURL(env) + "/directory/#/admin/integrations/apps"
}

func logAppURL(ctx *provisioning.Context, res *Result) error {
	if res.Report.Status != report.StatusSucceeded || len(ctx.Manifest.AppInstances) == 0 {
		return nil
	}
	ctx.Observer.Printf("[Finally] App served from %s", res.AppURL)
	ctx.Observer.Printf("[Finally] Manage the app at %s", AdminURL(ctx.Config.Environment))
	return nil
}

func (s *settings) uploadReport(ctx *provisioning.Context, res *Result) error {
	if !ctx.Config.ReportEnabled() {
		return nil
	}
	store, err := s.newStore(ctx, ctx.Config.Report.S3)
	if err != nil {
		return err
	}
	key, err := store.Upload(ctx, res.Report)
	if err != nil {
		return err
	}
	res.ReportKey = key
	ctx.Observer.Printf("[Finally] Report uploaded to s3://%s/%s", ctx.Config.Report.S3.Bucket, key)
	return nil
}

func writeReport(ctx *provisioning.Context, res *Result) error {
	path := ctx.Config.Report.Path
	if path == "" {
		path = config.DefaultReportFilename
	}
	if err := res.Report.WriteFile(path); err != nil {
		return err
	}
	res.ReportPath = path
	ctx.Observer.Printf("[Finally] Report written to %s", path)
	return nil
}
