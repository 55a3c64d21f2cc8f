package driven

import "time"

// Observer records what the request client does.
type Observer interface {
	// ObserveRequest records one GraphQL round trip. Outcome is "ok" or an
	// ErrorKind string.
	ObserveRequest(operation, outcome string, duration time.Duration)

	// ObserveRefresh records one refresh attempt.
	ObserveRefresh(err error)

	// ObserveLogout records a forced logout after an authentication error.
	ObserveLogout()
}
