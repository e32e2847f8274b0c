// Package apis holds the versioned configuration types of hostkit.
//
//   - host: the target host, its connection and the provisioning defaults
package apis
