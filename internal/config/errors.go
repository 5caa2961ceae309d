package config

import "errors"

// Validation errors that are not tied to a single rule.
var (
	ErrBrowserClientIDRequired  = errors.New("oauth_client_id is required for browser login")
	ErrClientCredentialsMissing = errors.New("client credentials login requires PURECLOUD_CLIENT_ID and PURECLOUD_CLIENT_SECRET")
	ErrAccessTokenMissing       = errors.New("token login requires PURECLOUD_ACCESS_TOKEN")
	ErrS3CredentialsMissing     = errors.New("report upload requires PREMIUM_APP_S3_ACCESS_KEY and PREMIUM_APP_S3_SECRET_KEY")
	ErrConfigNotFound           = errors.New("config file not found")
)
