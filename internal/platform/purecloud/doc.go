// Package purecloud is a small client for the Genesys Cloud Platform API v2,
// covering the resources a Premium App installation provisions.
//
// # Architecture
//
//   - client.go: resource manager interfaces and create options
//   - real_client.go: HTTP transport, pagination and the generic collection helper
//   - operations.go: generic Delete and Ensure operations
//   - role.go, group.go, oauth_client.go, integration.go, credential.go,
//     data_table.go, trunk.go, data_action.go, org.go: one file per resource
//   - cleanup.go: prefix based teardown
//   - auth.go, login.go: token sources, the token cache and browser login
//   - errors.go: error classification for retry logic
//   - fake_client.go: in-memory PlatformManager for tests
//
// # Ownership
//
// The platform has no resource labels. Everything the installer creates is
// named with a prefix, and listing, re-entry and cleanup all match on it.
//
// # Retries
//
// Every request is retried on 429 and gateway errors, honouring Retry-After.
// DeleteOperation additionally retries 409, which the API returns while a
// dependent resource is still going away. Limits come from config.LoadTimeouts:
//
//   - PURECLOUD_TIMEOUT_REQUEST: per request timeout (default: 30s)
//   - PURECLOUD_TIMEOUT_DELETE: per delete timeout including retries (default: 2m)
//   - PURECLOUD_RETRY_MAX_ATTEMPTS: maximum retry attempts (default: 5)
//   - PURECLOUD_RETRY_INITIAL_DELAY: initial retry delay (default: 1s)
package purecloud
