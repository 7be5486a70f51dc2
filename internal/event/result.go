package event

// Result is one subscriber's outcome for one event. A subscriber may return
// a bare acknowledgment (OK with no payload), a plain message, or rendered
// content paired with an instruction for the remote peer.
type Result struct {
	OK          bool
	Message     string
	Content     string
	Instruction string
}

// Failure builds a failed Result carrying msg.
func Failure(msg string) Result {
	return Result{OK: false, Message: msg}
}

// Success builds a successful Result with an optional message.
func Success(msg string) Result {
	return Result{OK: true, Message: msg}
}

// Outcome is the merged result of dispatching one event to every matching
// subscriber. Messages, Contents, and Instructions are deduplicated in
// first-seen order and come only from successful results. Err holds the
// first failure's message when no subscriber succeeded.
type Outcome struct {
	OK           bool
	Messages     []string
	Contents     []string
	Instructions []string
	Err          string
}

// Aggregate merges per-subscriber results into a single Outcome.
//
// No results means no subscriber was interested, which is normal and counts
// as success with an empty payload. Otherwise the dispatch succeeds if any
// subscriber succeeded; payloads from failed subscribers are discarded.
func Aggregate(results []Result) Outcome {
	if len(results) == 0 {
		return Outcome{OK: true}
	}

	var out Outcome
	firstErr := ""
	for _, r := range results {
		if !r.OK {
			if firstErr == "" {
				firstErr = r.Message
			}
			continue
		}
		out.OK = true
		if r.Message != "" {
			out.Messages = appendUnique(out.Messages, r.Message)
		}
		if r.Content != "" {
			out.Contents = appendUnique(out.Contents, r.Content)
		}
		if r.Instruction != "" {
			out.Instructions = appendUnique(out.Instructions, r.Instruction)
		}
	}

	if !out.OK {
		out.Err = firstErr
	}
	return out
}

// appendUnique appends s to list unless an identical string is already
// present, preserving first-seen order.
func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
