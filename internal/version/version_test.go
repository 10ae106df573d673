package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.NotEmpty(t, info.Version)
	assert.LessOrEqual(t, len(info.GitCommit), 7)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestFromBuildInfo(t *testing.T) {
	defaults := Info{Version: "dev", GitCommit: "none", BuildDate: "unknown"}

	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/hupe1980/imdbsieve", Version: "v1.2.3"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	got := fromBuildInfo(defaults, bi)
	assert.Equal(t, "v1.2.3", got.Version)
	assert.Equal(t, "0123456789abcdef", got.GitCommit)
	assert.Equal(t, "2026-01-02T03:04:05Z", got.BuildDate)
	assert.True(t, got.Modified)
}

func TestFromBuildInfo_LdflagsWin(t *testing.T) {
	injected := Info{Version: "v2.0.0", GitCommit: "feedbee", BuildDate: "2026-05-01"}

	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
	}

	got := fromBuildInfo(injected, bi)
	assert.Equal(t, injected.Version, got.Version)
	assert.Equal(t, injected.GitCommit, got.GitCommit)
	assert.Equal(t, injected.BuildDate, got.BuildDate)
}

func TestFromBuildInfo_DevelVersionIgnored(t *testing.T) {
	got := fromBuildInfo(Info{Version: "dev"}, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	assert.Equal(t, "dev", got.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "v1.0.0", GitCommit: "abc1234", BuildDate: "today", GoVersion: "go1.25", Platform: "linux/amd64"}

	assert.Equal(t, "imdbsieve v1.0.0 (commit: abc1234, built: today, go1.25 linux/amd64)", info.String())

	info.Modified = true
	assert.Contains(t, info.String(), "commit: abc1234-dirty")
}

func TestInfoJSON(t *testing.T) {
	info := GetInfo()

	jsonStr, err := info.JSON()
	require.NoError(t, err)

	var parsed Info
	require.NoError(t, json.Unmarshal([]byte(jsonStr), &parsed))

	assert.Equal(t, info, parsed)
}

func TestShortCommit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"long SHA truncated", "abc1234def5678", "abc1234"},
		{"exact 7 unchanged", "abc1234", "abc1234"},
		{"short unchanged", "abc", "abc"},
		{"empty unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shortCommit(tt.input))
		})
	}
}
