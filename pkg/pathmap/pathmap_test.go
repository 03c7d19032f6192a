package pathmap

import "testing"

func TestMap(t *testing.T) {
	m := New([]Rule{
		{Remote: "/mnt/remote/a", Local: "/data/a"},
		{Remote: "/mnt/remote", Local: "/data/fallback"},
	})

	cases := []struct {
		in, out string
	}{
		{"/mnt/remote/a/project1", "/data/a/project1"},
		{"/mnt/remote/b/project2", "/data/fallback/b/project2"},
		{"/unrelated/path", "/unrelated/path"},
	}

	for _, c := range cases {
		if got := m.Map(c.in); got != c.out {
			t.Errorf("Map(%q) = %q, want %q", c.in, got, c.out)
		}
	}
}

func TestMapFirstMatchWins(t *testing.T) {
	m := New([]Rule{
		{Remote: "/a", Local: "/first"},
		{Remote: "/a/b", Local: "/second"},
	})

	if got := m.Map("/a/b/c"); got != "/first/b/c" {
		t.Errorf("Map() = %q, want %q", got, "/first/b/c")
	}
}

func TestMapEmptyRules(t *testing.T) {
	m := New(nil)
	if got := m.Map("/x/y"); got != "/x/y" {
		t.Errorf("Map() = %q, want passthrough", got)
	}
}
