// Package lifecycle holds the shared bounds for starting and stopping long-lived components.
package lifecycle

import "time"

// DefaultTimeout bounds start hooks (database ping, migrations) and graceful shutdown.
const DefaultTimeout = 15 * time.Second
