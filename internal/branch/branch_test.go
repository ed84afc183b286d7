package branch

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Branch
		wantErr bool
	}{
		{"calicut", Calicut, false},
		{"  COCHIN ", Cochin, false},
		{"Kannur", Kannur, false},
		{"global", Global, false},
		{"mumbai", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) err=%v wantErr=%v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Parse(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestScope_Predicate(t *testing.T) {
	if _, ok := GlobalScope().Predicate(); ok {
		t.Error("global scope must not produce a predicate")
	}
	if _, ok := (Scope{}).Predicate(); ok {
		t.Error("zero scope must behave as global")
	}
	for _, b := range Physical() {
		v, ok := NewScope(b).Predicate()
		if !ok || v != string(b) {
			t.Errorf("scope %s: got (%q, %v)", b, v, ok)
		}
	}
}

func TestScope_Matches(t *testing.T) {
	if !GlobalScope().Matches("kannur") {
		t.Error("global scope should match any location")
	}
	s := NewScope(Calicut)
	if !s.Matches("calicut") {
		t.Error("calicut scope should match calicut")
	}
	if s.Matches("cochin") {
		t.Error("calicut scope must not match cochin")
	}
}

func TestCanSwitch(t *testing.T) {
	allow := []string{"Head@Fets.in"}
	if !CanSwitch("super_admin", "", nil) {
		t.Error("super_admin should switch")
	}
	if CanSwitch("admin", "x@fets.in", allow) {
		t.Error("admin without allow-list entry should not switch")
	}
	if !CanSwitch("staff", " head@fets.in", allow) {
		t.Error("allow-listed email should switch regardless of case")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		persisted string
		assigned  string
		canSwitch bool
		want      Branch
	}{
		{"profile wins for staff", "cochin", "calicut", false, Calicut},
		{"switcher keeps persisted", "cochin", "calicut", true, Cochin},
		{"switcher with invalid persisted", "xyz", "kannur", true, Kannur},
		{"switcher persisted global", "global", "kannur", true, Global},
		{"nothing valid falls back", "", "", false, Cochin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.persisted, tt.assigned, tt.canSwitch, Cochin)
			if got != tt.want {
				t.Errorf("got %s want %s", got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if Global.DisplayName() != "Global View" {
		t.Errorf("unexpected %s", Global.DisplayName())
	}
	if Branch("x").DisplayName() != "x" {
		t.Error("unknown branch should echo value")
	}
}
