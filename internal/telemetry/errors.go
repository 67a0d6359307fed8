// SPDX-License-Identifier: MIT

package telemetry

import "errors"

var (
	// ErrUnknownFormat indicates a log format other than "text" or "json".
	ErrUnknownFormat = errors.New("telemetry: unknown log format")

	// ErrUnknownLevel indicates an unparsable log level.
	ErrUnknownLevel = errors.New("telemetry: unknown log level")

	// ErrRegistration indicates that a metric could not be registered.
	ErrRegistration = errors.New("telemetry: metric registration failed")
)
