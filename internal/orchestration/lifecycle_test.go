package orchestration_test

import (
	"context"
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/orchestration"
	"github.com/purecloudlabs/premium-app-installer/internal/provisioning"
	"github.com/purecloudlabs/premium-app-installer/internal/report"
	itest "github.com/purecloudlabs/premium-app-installer/internal/testing"
)

const productID = "premium-app-test"

var _ = Describe("Install lifecycle", func() {
	var (
		ctx        context.Context
		fixture    *itest.PlatformFixture
		cfg        *config.Config
		manifest   *config.Manifest
		observer   *itest.RecordingObserver
		store      *memoryStore
		reportPath string
	)

	newInstaller := func(extra ...orchestration.Option) *orchestration.Installer {
		opts := append([]orchestration.Option{
			orchestration.WithObserver(observer),
			orchestration.WithTimeouts(config.TestTimeouts()),
			orchestration.WithReportStore(store.factory()),
		}, extra...)
		return orchestration.NewInstaller(fixture.Fake(), cfg, manifest, opts...)
	}

	newUninstaller := func() *orchestration.Uninstaller {
		return orchestration.NewUninstaller(fixture.Fake(), cfg, manifest,
			orchestration.WithObserver(observer),
			orchestration.WithTimeouts(config.TestTimeouts()),
			orchestration.WithReportStore(store.factory()),
		)
	}

	BeforeEach(func() {
		ctx = context.Background()
		fixture = itest.NewPlatformFixture().WithProduct(productID).WithForeign()
		reportPath = filepath.Join(GinkgoT().TempDir(), "install.yaml")
		cfg = itest.NewConfigBuilder().
			WithReportPath(reportPath).
			WithS3("https://s3.example.com", "reports").
			Build()
		manifest = itest.FullManifest()
		observer = itest.NewRecordingObserver()
		store = &memoryStore{}
	})

	Describe("a fresh install", func() {
		It("creates and configures every manifest resource", func() {
			res, err := newInstaller().Install(ctx, orchestration.InstallOptions{})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.InstallID).NotTo(BeEmpty())
			Expect(res.Resources).To(HaveLen(manifest.Count()))
			Expect(res.Created()).To(Equal(manifest.Count()))
			Expect(res.HookErrors).To(BeEmpty())

			By("wiring cross references")
			client := fixture.Fake().OAuthClients
			Expect(client).To(HaveLen(1))
			Expect(fixture.Fake().RoleUsers).To(HaveKey(lookupID(res, config.CategoryRole, "Role")))
			Expect(observer.OfType(provisioning.EventResourceConfigured)).NotTo(BeEmpty())

			By("writing and uploading the report")
			loaded, err := report.Load(reportPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.InstallID).To(Equal(res.InstallID))
			Expect(loaded.Status).To(Equal(report.StatusSucceeded))
			Expect(res.ReportPath).To(Equal(reportPath))
			Expect(res.ReportKey).To(ContainSubstring(res.InstallID))
			Expect(store.uploads).To(HaveLen(1))

			By("redacting the OAuth client secret")
			for _, r := range loaded.Resources {
				if r.Extra[provisioning.ExtraSecret] != "" {
					Expect(r.Extra[provisioning.ExtraSecret]).To(Equal("REDACTED"))
				}
			}
		})

		It("reuses existing resources on a second run", func() {
			first, err := newInstaller().Install(ctx, orchestration.InstallOptions{})
			Expect(err).NotTo(HaveOccurred())

			second, err := newInstaller().Install(ctx, orchestration.InstallOptions{})
			Expect(err).NotTo(HaveOccurred())

			Expect(second.Created()).To(BeZero())
			Expect(lookupID(second, config.CategoryGroup, "Agents")).To(Equal(lookupID(first, config.CategoryGroup, "Agents")))
			Expect(observer.OfType(provisioning.EventResourceExists)).To(HaveLen(manifest.Count()))
		})

		It("recreates everything when reinstalling", func() {
			first, err := newInstaller().Install(ctx, orchestration.InstallOptions{})
			Expect(err).NotTo(HaveOccurred())

			second, err := newInstaller().Install(ctx, orchestration.InstallOptions{Reinstall: true})
			Expect(err).NotTo(HaveOccurred())

			Expect(second.Created()).To(Equal(manifest.Count()))
			Expect(lookupID(second, config.CategoryRole, "Role")).NotTo(Equal(lookupID(first, config.CategoryRole, "Role")))
			Expect(fixture.Fake().Roles).To(HaveLen(2), "the new role and the foreign one")
		})
	})

	Describe("preflight", func() {
		It("refuses an org without the product", func() {
			fixture = itest.NewPlatformFixture()

			res, err := newInstaller().Install(ctx, orchestration.InstallOptions{})
			Expect(err).To(MatchError(orchestration.ErrProductNotOwned))
			Expect(res.Resources).To(BeEmpty())
			Expect(fixture.Fake().Count()).To(BeZero())
		})

		It("installs anyway when the product check is skipped", func() {
			fixture = itest.NewPlatformFixture()

			_, err := newInstaller().Install(ctx, orchestration.InstallOptions{SkipProductCheck: true})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("a failing install", func() {
		BeforeEach(func() {
			fixture.WithError("EnsureTrunkBase", errors.New("trunk quota reached"))
		})

		It("stops before configuring and still runs the hooks", func() {
			res, err := newInstaller().Install(ctx, orchestration.InstallOptions{})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("trunk quota reached"))

			Expect(fixture.Fake().Calls()).NotTo(ContainElement("UpdateIntegrationConfig"))
			Expect(fixture.Fake().Calls()).NotTo(ContainElement("EnsureCredential"))

			loaded, loadErr := report.Load(reportPath)
			Expect(loadErr).NotTo(HaveOccurred())
			Expect(loaded.Status).To(Equal(report.StatusFailed))
			Expect(loaded.Error).To(ContainSubstring("trunk quota reached"))
			Expect(loaded.Resources).To(HaveLen(len(res.Resources)))
		})
	})

	Describe("finally hooks", func() {
		It("collects hook failures without failing the install", func() {
			store.uploadErr = errors.New("access denied")

			res, err := newInstaller().Install(ctx, orchestration.InstallOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.HookErrors).To(HaveLen(1))
			Expect(res.HookErrors[0].Error()).To(ContainSubstring("upload-report: access denied"))
			Expect(observer.OfType(provisioning.EventHookFailed)).To(HaveLen(1))

			loaded, loadErr := report.Load(reportPath)
			Expect(loadErr).NotTo(HaveOccurred())
			Expect(loaded.HookErrors).To(ConsistOf(ContainSubstring("access denied")))
		})

		It("runs custom hooks after the built-in ones", func() {
			var sawReport string
			hook := orchestration.Hook{
				Name: "notify",
				Run: func(_ *provisioning.Context, res *orchestration.Result) error {
					sawReport = res.ReportPath
					return nil
				},
			}

			_, err := newInstaller(orchestration.WithHook(hook)).Install(ctx, orchestration.InstallOptions{})
			Expect(err).NotTo(HaveOccurred())
			Expect(sawReport).To(Equal(reportPath))
		})
	})

	Describe("uninstall", func() {
		BeforeEach(func() {
			_, err := newInstaller().Install(ctx, orchestration.InstallOptions{})
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes every prefixed resource and the stored reports", func() {
			res, err := newUninstaller().Uninstall(ctx, orchestration.UninstallOptions{})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Removed).To(HaveLen(len(res.Planned)))
			Expect(fixture.Fake().Count()).To(Equal(3), "foreign resources survive")
			Expect(res.DeletedReports).To(HaveLen(1))
			Expect(store.deletes).To(Equal([]string{manifest.Prefix}))
		})

		It("only lists resources on a dry run", func() {
			before := fixture.Fake().Count()

			res, err := newUninstaller().Uninstall(ctx, orchestration.UninstallOptions{DryRun: true})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Planned).NotTo(BeEmpty())
			Expect(res.Removed).To(BeEmpty())
			Expect(fixture.Fake().Count()).To(Equal(before))
			Expect(store.deletes).To(BeEmpty())
		})

		It("sweeps by prefix", func() {
			_, err := newUninstaller().Uninstall(ctx, orchestration.UninstallOptions{Sweep: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(fixture.Fake().Calls()).To(ContainElement("CleanupByPrefix"))
			Expect(fixture.Fake().Count()).To(Equal(3))
		})
	})

	Describe("status", func() {
		It("reports what is present per category", func() {
			_, err := newInstaller().Install(ctx, orchestration.InstallOptions{})
			Expect(err).NotTo(HaveOccurred())

			statuses, err := newInstaller().Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(len(manifest.Order)))
			for _, s := range statuses {
				Expect(s.Err).NotTo(HaveOccurred())
				Expect(s.Missing()).To(BeZero(), "category %s", s.Category)
			}
		})

		It("reports missing resources before an install", func() {
			statuses, err := newInstaller().Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses[0].Category).To(Equal(config.CategoryRole))
			Expect(statuses[0].Missing()).To(Equal(1))
		})
	})
})

func lookupID(res *orchestration.Result, category config.Category, name string) string {
	for _, r := range res.Resources {
		if r.Category == category && r.Name == name {
			return r.ID
		}
	}
	return ""
}
