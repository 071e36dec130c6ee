package iconpath

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		appID, base string
		prefix      string
	}{
		{"", "", GeneralPrefix},
		{"com.example.App", "", "/com/example/App/icons/scalable/actions/"},
		{"com.example.App", "/org/custom/", "/org/custom/icons/scalable/actions/"},
		{"", "/org/custom", "/org/custom/icons/scalable/actions/"},
	}

	for _, test := range tests {
		if p := Prefix(test.appID, test.base); p != test.prefix {
			t.Errorf("Prefix(%q, %q) = %q, want %q", test.appID, test.base, p, test.prefix)
		}
	}
}

func TestThemePaths(t *testing.T) {
	got := ThemePaths(GeneralPrefix)
	expect := []string{"/org/gtkicons/icons/", GeneralPrefix}

	if diff := cmp.Diff(expect, got); diff != "" {
		t.Fatalf("ThemePaths mismatch (-want +got):\n%s", diff)
	}

	if got := ThemePaths("/odd/"); len(got) != 1 || got[0] != "/odd/" {
		t.Fatalf("ThemePaths of an unusual prefix = %q", got)
	}
}

func TestResource(t *testing.T) {
	if r := Resource(GeneralPrefix, "go-home"); r != GeneralPrefix+"go-home-symbolic.svg" {
		t.Fatalf("Resource = %q", r)
	}
	if s := Symbolic("go-home"); s != "go-home-symbolic" {
		t.Fatalf("Symbolic = %q", s)
	}
}
