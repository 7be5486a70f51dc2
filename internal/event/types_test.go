package event

import "testing"

func TestType_Intersects(t *testing.T) {
	mask := TypeFileContent | TypeTimer

	if !mask.Intersects(TypeFileContent) {
		t.Error("mask should intersect file-content bit")
	}
	if !mask.Intersects(TypeTimer | TypeDirListing) {
		t.Error("mask should intersect any combination containing the timer bit")
	}
	if mask.Intersects(TypeDirListing) {
		t.Error("mask should not intersect dir-listing bit")
	}
	if mask.Intersects(0) {
		t.Error("the empty mask intersects nothing")
	}
}

func TestType_Has(t *testing.T) {
	mask := TypeFileContent | TypeCommandResult

	if !mask.Has(TypeFileContent) {
		t.Error("mask should contain file-content bit")
	}
	if mask.Has(TypeFileContent | TypeTimer) {
		t.Error("Has requires every bit, not just one")
	}
}

func TestTimerIdentityBase(t *testing.T) {
	if TimerIdentityBase != 131072 {
		t.Errorf("identity range must start at bit 17 (131072), got %d", TimerIdentityBase)
	}

	// Built-in categories stay strictly below the identity range.
	for _, typ := range []Type{TypeFileContent, TypeDirListing, TypeCommandResult, TypeTimer, TypeTimerOnce} {
		if typ >= TimerIdentityBase {
			t.Errorf("built-in category %s (%d) collides with identity range", typ, typ)
		}
		if typ.IsTimerIdentity() {
			t.Errorf("built-in category %s should not report as timer identity", typ)
		}
	}

	if !(TimerIdentityBase << 3).IsTimerIdentity() {
		t.Error("allocated identity bits should report as timer identity")
	}
}

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeFileContent, "file_content"},
		{TypeDirListing, "dir_listing"},
		{TypeCommandResult, "command_result"},
		{TypeTimer, "timer"},
		{TypeTimerOnce, "timer_once"},
		{TypeTimer | TimerIdentityBase, "timer_tick"},
		{TypeFileContent | TypeDirListing, "composite"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}
