package doctor

import "testing"

func TestParseNodeMajor(t *testing.T) {
	cases := []struct {
		in    string
		major int
		ok    bool
	}{
		{"v22.14.0", 22, true},
		{"20.1.0", 20, true},
		{" v18.0.0 ", 18, true},
		{"v20", 20, true},
		{"node?", 0, false},
		{"", 0, false},
		{"vv20.0.0", 0, false},
	}
	for _, tc := range cases {
		major, ok := parseNodeMajor(tc.in)
		if ok != tc.ok || major != tc.major {
			t.Fatalf("parseNodeMajor(%q) = (%d, %v), want (%d, %v)", tc.in, major, ok, tc.major, tc.ok)
		}
	}
}

func TestCheckNode_MissingRuntimeFailsNotCrashes(t *testing.T) {
	result := checkNode("definitely-not-a-real-node-binary", DefaultMinNodeMajor)
	if result.OK {
		t.Fatalf("expected failure for missing runtime, got %+v", result)
	}
	if result.Detail == "" {
		t.Fatalf("expected explanatory detail")
	}
}

func TestCheckNode_UnparsableOutputFails(t *testing.T) {
	// `true` exits 0 with no output, which is not a version string.
	result := checkNode("true", DefaultMinNodeMajor)
	if result.OK {
		t.Fatalf("expected failure for unparsable version output, got %+v", result)
	}
}

func TestFindFirstExisting_EmptyListMisses(t *testing.T) {
	if _, ok := findFirstExisting(nil); ok {
		t.Fatalf("expected miss on empty candidate list")
	}
	if _, ok := findFirstExisting([]string{"/definitely/not/here"}); ok {
		t.Fatalf("expected miss on nonexistent path")
	}
}
