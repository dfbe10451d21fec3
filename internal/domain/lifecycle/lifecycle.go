// Package lifecycle holds shared timings for starting and stopping components.
package lifecycle

import "time"

// DefaultTimeout bounds every start and shutdown hook.
const DefaultTimeout = 10 * time.Second
