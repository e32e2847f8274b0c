// Package envvar expands environment variable placeholders in configuration values.
package envvar

import (
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
)

// pattern matches ${NAME} and ${NAME:-default}. Group 2 is the default and group 3
// the default text, present only with the :- form.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-([^}]*))?\}`)

// Expand replaces ${NAME} and ${NAME:-default} placeholders in value.
// An unset variable expands to its default, or to "" with a warning when it has none.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		name := groups[1]

		if env, ok := os.LookupEnv(name); ok {
			return env
		}

		if groups[2] != "" {
			return groups[3]
		}

		logrus.WithField("variable", name).Warn("environment variable not set")

		return ""
	})
}
