package canon

import "testing"

func TestParseAccessLevel(t *testing.T) {
	cases := []struct {
		in   string
		want AccessLevel
		ok   bool
	}{
		{"Public", AccessPublic, true},
		{"internal", AccessInternal, true},
		{"RESTRICTED", AccessRestricted, true},
		{"Confidential", AccessConfidential, true},
		{"1", AccessPublic, true},
		{"4", AccessConfidential, true},
		{"5", 0, false},
		{"0", 0, false},
		{"secret", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, err := ParseAccessLevel(c.in)
		if c.ok && err != nil {
			t.Errorf("ParseAccessLevel(%q) unexpected error: %v", c.in, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("ParseAccessLevel(%q) expected error, got %v", c.in, got)
			}
			continue
		}
		if got != c.want {
			t.Errorf("ParseAccessLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAccessLevelString(t *testing.T) {
	if AccessRestricted.String() != "Restricted" {
		t.Errorf("got %s", AccessRestricted.String())
	}
	if AccessLevel(9).Valid() {
		t.Error("level 9 should be invalid")
	}
}
