// Package layout renders log entries into the text a host target displays.
package layout

import "github.com/trickstertwo/hostlog"

// Layout is the formatter an appender renders entries with.
//
// Pattern returns the template the layout was configured with; an empty
// pattern means the layout is not usable and appenders refuse to start.
type Layout interface {
	Pattern() string
	Format(e hostlog.Entry) string
}
