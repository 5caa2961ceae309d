// Package report records what an installation created.
//
// A Report lists every provisioned resource with secrets redacted. It is
// written as YAML next to the config and can be uploaded to S3-compatible
// storage, where uninstall removes it again.
package report
