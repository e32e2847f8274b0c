// Package notify writes styled operator-facing messages.
//
// Message types are success (✔), error (✗), warning (⚠), info (ℹ), activity (►),
// generate (✚) and titles with an emoji. [StageSeparatingWriter] inserts a blank
// line before every title after the first, so command stages read as blocks.
package notify
