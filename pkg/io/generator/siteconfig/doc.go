// Package siteconfig renders the per-tenant configuration files hostkit writes to the host:
// the uWSGI vassal unit, the nginx virtual host and the README manifest.
//
// Template text is kept in versioned constants (see TemplateVersion) and is rendered
// from typed parameter structs by pure functions, so output can be verified without a host.
package siteconfig
