// Package orchestration coordinates a Premium App installation.
//
// It owns the order of work and delegates the work itself to the resource
// modules in internal/provisioning/modules.
//
// # Install
//
// The Installer runs these phases in order:
//  1. Preflight - resolve the installer, org and home division, check the product
//  2. Validation - run-time checks against the resolved identity
//  3. Uninstall - only with Reinstall, removes the previous installation
//  4. Create - every module in manifest order, items fanned out per module
//  5. Configure - every module concurrently, now that all IDs exist
//
// Finally hooks run after the phases whether or not they succeeded. The
// built-in hooks log the app URL, upload the report and write it locally.
// Hook errors are collected and never undo the installation.
//
// # Usage
//
//	inst := orchestration.NewInstaller(platform, cfg, manifest)
//	result, err := inst.Install(ctx, orchestration.InstallOptions{})
//
// Install is idempotent: existing prefixed resources are reused.
package orchestration
