// Package config defines the installer configuration (the staging object the
// wizard fills in), the provisioning manifest, and the declarative rule tables
// both are validated against.
//
// # Files
//
//   - types.go: Config, the staging object handed to the orchestrator
//   - environments.go: Genesys Cloud regions and their login/API hosts
//   - rules.go: declarative validation rule tables shared with the wizard
//   - load.go: YAML loading, discovery and writing of premium-app.yaml
//   - manifest.go: the provisioning manifest and its cross-reference checks
//   - timeouts.go: environment driven timeouts and retry settings
//
// Secrets never live in YAML. Client credentials, access tokens and object
// storage keys are read from the environment by [Config.ApplyEnv].
package config
