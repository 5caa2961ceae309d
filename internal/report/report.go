package report

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
)

// Run outcomes.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Report is the persisted record of one install run.
type Report struct {
	InstallID   string    `yaml:"installId"`
	Environment string    `yaml:"environment"`
	OrgID       string    `yaml:"orgId,omitempty"`
	OrgName     string    `yaml:"orgName,omitempty"`
	InstalledBy string    `yaml:"installedBy,omitempty"`
	Prefix      string    `yaml:"prefix"`
	ProductID   string    `yaml:"productId,omitempty"`
	StartedAt   time.Time `yaml:"startedAt"`
	Duration    string    `yaml:"duration"`
	Status      string    `yaml:"status"`
	Error       string    `yaml:"error,omitempty"`

	Resources  []provisioning.Resource `yaml:"resources"`
	HookErrors []string                `yaml:"hookErrors,omitempty"`
}

// New builds the report of a run from its provisioning context. Secrets in
// resource extras are redacted.
func New(ctx *provisioning.Context, installID string, startedAt time.Time, runErr error) *Report {
	id := ctx.State.Identity()
	r := &Report{
		InstallID:   installID,
		OrgID:       id.OrgID,
		OrgName:     id.OrgName,
		InstalledBy: id.UserName,
		StartedAt:   startedAt.UTC(),
		Duration:    time.Since(startedAt).Round(time.Millisecond).String(),
		Status:      StatusSucceeded,
	}
	if ctx.Config != nil {
		r.Environment = ctx.Config.Environment
	}
	if ctx.Manifest != nil {
		r.Prefix = ctx.Manifest.Prefix
		r.ProductID = ctx.Manifest.ProductID
	}
	if runErr != nil {
		r.Status = StatusFailed
		r.Error = runErr.Error()
	}
	for _, res := range ctx.State.Resources() {
		r.Resources = append(r.Resources, res.Redacted())
	}
	return r
}

// Marshal encodes the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// WriteFile writes the report to path, readable by the owner only.
func (r *Report) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Load reads a report written by WriteFile.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var r Report
	if err := unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &r, nil
}

func unmarshal(data []byte, r *Report) error {
	return yaml.Unmarshal(data, r)
}
