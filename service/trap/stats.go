package trap

import "sync/atomic"

const maxCode = 64

// Stats counts handled traps by cause. Counters are atomics so trap context
// never blocks on them.
type Stats struct {
	exceptions [maxCode]atomic.Uint64
	interrupts [maxCode]atomic.Uint64
}

func (s *Stats) record(cause Cause) {
	if cause.Code >= maxCode {
		return
	}
	if cause.Interrupt {
		s.interrupts[cause.Code].Add(1)
		return
	}
	s.exceptions[cause.Code].Add(1)
}

// Count returns how many traps with cause were handled.
func (s *Stats) Count(cause Cause) uint64 {
	if cause.Code >= maxCode {
		return 0
	}
	if cause.Interrupt {
		return s.interrupts[cause.Code].Load()
	}
	return s.exceptions[cause.Code].Load()
}

// Snapshot returns the non-zero counters keyed by cause name.
func (s *Stats) Snapshot() map[string]uint64 {
	ret := map[string]uint64{}
	for code := uint64(0); code < maxCode; code++ {
		if n := s.exceptions[code].Load(); n > 0 {
			ret[Exception(code).String()] = n
		}
		if n := s.interrupts[code].Load(); n > 0 {
			ret[Interrupt(code).String()] = n
		}
	}
	return ret
}
