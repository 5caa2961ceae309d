// Package modules implements provisioning.Module for every resource
// category a manifest can list.
//
// Each module owns the platform resources of one category whose names start
// with the manifest prefix. Create ensures the manifest items concurrently and
// registers them in the provisioning state; Configure resolves references to
// other categories through that state. Build returns the modules of a
// manifest in its provisioning order.
package modules
