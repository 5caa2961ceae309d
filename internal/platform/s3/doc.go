// Package s3 provides a small client for S3-compatible object storage.
//
// The installer stores its install reports there so a later uninstall, or
// another operator, can find what an installation created. Any endpoint
// speaking the S3 API works; path-style addressing is used for endpoints
// such as MinIO that do not support virtual-hosted buckets.
package s3
