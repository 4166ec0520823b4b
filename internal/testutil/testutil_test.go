package testutil

import "testing"

func TestEnvBool(t *testing.T) {
	cases := map[string]bool{"1": true, "true": true, "YES": true, "y": true, "0": false, "": false, "nope": false}
	for raw, want := range cases {
		t.Setenv("TESTUTIL_FLAG", raw)
		if got := envBool("TESTUTIL_FLAG"); got != want {
			t.Fatalf("envBool(%q) = %v, want %v", raw, got, want)
		}
	}
}
