// Package async provides utilities for parallel task execution with
// error collection.
//
// [RunParallel] executes named operations concurrently, waits for every one
// of them, and returns all failures joined. It is the fan-out primitive used
// by the install and uninstall pipelines.
package async
