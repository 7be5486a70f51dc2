package event

// Type is a bit-set of event categories. A subscription's mask may combine
// several categories; routing tests intersection, not equality.
type Type uint64

// Built-in event categories.
const (
	// TypeFileContent carries the contents of a file reported by the
	// remote peer.
	TypeFileContent Type = 1 << iota

	// TypeDirListing carries a directory listing reported by the remote peer.
	TypeDirListing

	// TypeCommandResult carries the outcome of a generic command executed
	// by the remote peer.
	TypeCommandResult

	// TypeTimer is the periodic-timer base bit. Timer events always carry
	// this bit ORed with the owning subscription's identity bit.
	TypeTimer

	// TypeTimerOnce identifies one-shot timer events dispatched by callers.
	TypeTimerOnce
)

// TimerIdentityBase is the first dynamically allocated timer-identity bit.
// Bits at and above this value are reserved for per-subscription timer
// identities and are never assigned to built-in categories.
const TimerIdentityBase Type = 1 << 17

// Data is an event payload. The engine treats values opaquely; producers and
// subscribers agree on keys per category.
type Data map[string]any

// Has reports whether t contains every bit of mask.
func (t Type) Has(mask Type) bool {
	return t&mask == mask
}

// Intersects reports whether t shares at least one bit with mask.
func (t Type) Intersects(mask Type) bool {
	return t&mask != 0
}

// IsTimerIdentity reports whether t contains any dynamically allocated
// timer-identity bit.
func (t Type) IsTimerIdentity() bool {
	return t >= TimerIdentityBase
}

// String returns a short name for built-in categories, primarily for logs.
func (t Type) String() string {
	switch t {
	case TypeFileContent:
		return "file_content"
	case TypeDirListing:
		return "dir_listing"
	case TypeCommandResult:
		return "command_result"
	case TypeTimer:
		return "timer"
	case TypeTimerOnce:
		return "timer_once"
	default:
		if t.Intersects(TypeTimer) && t >= TimerIdentityBase {
			return "timer_tick"
		}
		return "composite"
	}
}
