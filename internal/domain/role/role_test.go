package role

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		raw, label string
		kind       Kind
		stored     string
		str        string
	}{
		{"admin", "", KindAdmin, Admin, "admin"},
		{" ADMIN ", "", KindAdmin, Admin, "admin"},
		{"user", "", KindUser, User, "user"},
		{"", "", KindUser, User, "user"},
		{"Advisor", "", KindAdvisor, Advisor, "advisor"},
		{"other", "Treasurer", KindCustom, Other, "Treasurer"},
		{"other", "", KindCustom, Other, "other"},
		{"volunteer", "", KindCustom, Other, "volunteer"},
	}
	for _, tt := range tests {
		t.Run(tt.raw+"/"+tt.label, func(t *testing.T) {
			r := Parse(tt.raw, tt.label)
			if r.Kind() != tt.kind {
				t.Errorf("kind: got %v, want %v", r.Kind(), tt.kind)
			}
			if r.Stored() != tt.stored {
				t.Errorf("stored: got %q, want %q", r.Stored(), tt.stored)
			}
			if r.String() != tt.str {
				t.Errorf("string: got %q, want %q", r.String(), tt.str)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	if !NewAdmin().Matches("ADMIN") {
		t.Error("admin should match ADMIN")
	}
	if !NewAdvisor().Matches("user", " advisor ") {
		t.Error("advisor should match padded allow-list entry")
	}
	if NewUser().Matches("admin") {
		t.Error("user should not match admin")
	}
	if NewUser().Matches() {
		t.Error("empty allow-list should match nothing")
	}
}

func TestCustomNeverMatches(t *testing.T) {
	// A custom label that spells a privileged role must not escalate.
	r := NewCustom("admin")
	if r.Matches("admin") {
		t.Fatal("custom role matched an allow-list")
	}
	if r.Stored() != Other {
		t.Errorf("stored: got %q, want %q", r.Stored(), Other)
	}
}

func TestIsValidStored(t *testing.T) {
	for _, s := range []string{"admin", "User", "advisor", "other"} {
		if !IsValidStored(s) {
			t.Errorf("%q should be valid", s)
		}
	}
	if IsValidStored("superadmin") {
		t.Error("superadmin should not be valid")
	}
}
