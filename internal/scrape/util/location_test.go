package util

import "testing"

func TestIsUS(t *testing.T) {
	tests := []struct {
		loc  string
		want bool
	}{
		{"New York, NY", true},
		{"San Francisco, CA", true},
		{"Austin, TX", true},
		{"NYC", true},
		{"Bay Area", true},
		{"Remote", true},
		{"Remote (US)", true},
		{"US-Remote", true},
		{"United States", true},
		{"Boston, Massachusetts", true},
		{"Washington, DC", true},

		{"London, UK", false},
		{"London", false},
		{"Berlin, Germany", false},
		{"Toronto, Canada", false},
		{"Remote - Europe", false},
		{"Remote EMEA", false},
		{"Bengaluru, India", false},
		{"Tel Aviv", false},
		{"Singapore", false},
		{"APAC", false},
	}
	for _, tt := range tests {
		t.Run(tt.loc, func(t *testing.T) {
			if got := IsUS(tt.loc, false); got != tt.want {
				t.Errorf("IsUS(%q, false) = %v, want %v", tt.loc, got, tt.want)
			}
		})
	}
}

func TestIsUSUnknownPolicy(t *testing.T) {
	// strings with no recognizable marker fall to the configured default
	for _, loc := range []string{"", "Anywhere", "HQ"} {
		if IsUS(loc, true) != true {
			t.Errorf("IsUS(%q, true) should follow the unknown policy", loc)
		}
		if IsUS(loc, false) != false {
			t.Errorf("IsUS(%q, false) should follow the unknown policy", loc)
		}
	}

	// recognized strings ignore the policy
	if !IsUS("Chicago, IL", false) {
		t.Error("recognized US location must not depend on unknown policy")
	}
	if IsUS("Paris, France", true) {
		t.Error("recognized non-US location must not depend on unknown policy")
	}
}

func TestIsUSNonUSWinsOverRemote(t *testing.T) {
	// "remote" alone reads US, but an explicit non-US region wins
	if IsUS("Remote - United Kingdom", false) {
		t.Error("Remote - United Kingdom should be non-US")
	}
	if !IsUS("Remote", false) {
		t.Error("bare Remote should be US")
	}
}
