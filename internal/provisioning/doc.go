// Package provisioning provides the shared types, interfaces and pipeline for
// installing and removing a premium app's resources in an organization.
//
// # Subpackages
//
//   - modules/ implements one Module per resource category (roles, groups,
//     OAuth clients, app instances, data tables, trunks, data actions)
//
// # Core Types
//
// Context carries the config, manifest, platform client, observer and
// metrics of one run. Phase defines a pipeline step with Name() and
// Provision(). Module is the per-category contract the install and
// uninstall orchestrators drive. State collects the resources each module
// produced so later modules can resolve them by manifest name.
package provisioning
