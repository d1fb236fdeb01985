// Package clock provides the time source for task timestamps.
package clock

import "time"

// NowFunc returns the current time. Tests replace it for deterministic
// timestamps.
var NowFunc = time.Now

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }

// Since returns the time elapsed since t according to NowFunc.
func Since(t time.Time) time.Duration { return NowFunc().Sub(t) }
