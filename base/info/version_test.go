package info

import (
	"runtime"
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	t.Parallel()

	ua := UserAgent()
	if !strings.HasPrefix(ua, "random/") {
		t.Errorf("unexpected user agent prefix: %s", ua)
	}
	if !strings.Contains(ua, runtime.GOOS) {
		t.Errorf("user agent should contain the OS: %s", ua)
	}
}

func TestFullVersion(t *testing.T) {
	t.Parallel()

	v := FullVersion()
	if !strings.Contains(v, "Licensed under the") {
		t.Errorf("full version misses license line: %s", v)
	}
}
