package restoas

import (
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// withBuild sets the ldflags variables for the duration of a test.
func withBuild(t *testing.T, v, c, b string) {
	t.Helper()
	oldV, oldC, oldB := version, commit, buildTime
	version, commit, buildTime = v, c, b
	t.Cleanup(func() { version, commit, buildTime = oldV, oldC, oldB })
}

func TestBuildDefaults(t *testing.T) {
	withBuild(t, "dev", "unknown", "unknown")

	assert.Equal(t, "dev", Version())
	assert.Equal(t, "unknown", Commit())
	assert.Equal(t, "unknown", BuildTime())
	assert.Equal(t, runtime.Version(), GoVersion())
	assert.Equal(t, "restoas/dev", UserAgent())
}

func TestReleaseBuild(t *testing.T) {
	withBuild(t, "v1.4.0", "3f9c2ab", "2026-03-01T12:00:00Z")

	assert.Equal(t, "restoas/v1.4.0", UserAgent())
	assert.Equal(t,
		"Version: v1.4.0\nCommit: 3f9c2ab\nBuild Time: 2026-03-01T12:00:00Z\nGo Version: "+runtime.Version(),
		BuildInfo())
}

// The compiled-in values are either the development defaults or what the
// release pipeline injects.
func TestCompiledBuild(t *testing.T) {
	v := Version()
	assert.True(t, v == "dev" || regexp.MustCompile(`^v\d+\.\d+\.\d+`).MatchString(v), "version %q", v)

	if c := Commit(); c != "unknown" {
		assert.Regexp(t, `^[0-9a-f]{7,40}$`, c)
	}
	if b := BuildTime(); b != "unknown" {
		assert.Contains(t, b, "T")
	}

	ua := UserAgent()
	assert.True(t, strings.HasPrefix(ua, "restoas/"))
	assert.NotContains(t, ua, " ")
	assert.NotContains(t, ua, "\n")
}
