// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder and ManifestBuilder: fluent builders for configs and manifests
//   - PlatformFixture: a pre-populated in-memory Genesys Cloud org
//   - RecordingObserver: a thread-safe observer that keeps every event
//   - MockModule: a testify mock of provisioning.Module
//
// Usage:
//
//	m := testing.NewManifestBuilder().
//	    WithRole("Role", true).
//	    WithGroup("Agents", false).
//	    Build()
//
//	fixture := testing.NewPlatformFixture()
//	ctx := fixture.Context(t, testing.MinimalConfig(), m)
package testing
