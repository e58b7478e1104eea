package buildinfo_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/pantry/internal/buildinfo"
)

func TestSummary(t *testing.T) {
	c := qt.New(t)
	c.Cleanup(func(v, cm, br, d string) func() {
		return func() { buildinfo.Version, buildinfo.GitCommit, buildinfo.GitBranch, buildinfo.BuildDate = v, cm, br, d }
	}(buildinfo.Version, buildinfo.GitCommit, buildinfo.GitBranch, buildinfo.BuildDate))

	buildinfo.Version = "v1.2.3"
	buildinfo.GitCommit = "abc123"
	buildinfo.GitBranch = "main"
	buildinfo.BuildDate = "2024-06-12"

	c.Assert(buildinfo.ResolvedVersion(), qt.Equals, "v1.2.3")
	c.Assert(buildinfo.Summary(), qt.Equals, "pantry v1.2.3 (commit abc123, branch main, built 2024-06-12)")
}
