// Package destroy removes an installation.
//
// The Provisioner walks the resource modules in reverse manifest order and
// deletes every prefixed resource each module reports as present. Failures
// are accumulated and teardown continues, so one stuck resource does not keep
// the rest of the installation alive. A sweep bypasses the modules and asks
// the platform to delete everything carrying the prefix.
package destroy
