// Package fsutil holds the local filesystem helpers used for operator-side files:
// the scaffolded config file and the SSH key paths it references.
package fsutil
