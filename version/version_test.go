package version

import (
	"runtime"
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("expected %s, got %s", runtime.Version(), info.GoVersion)
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("unexpected platform %q", info.Platform)
	}
}

func TestGetWithBuildTime(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.0.0"
	BuildTime = "2024-01-15T10:30:00Z"
	GitCommit = "abc1234"

	info := Get()
	if info.GitCommit != "abc1234" {
		t.Errorf("expected commit abc1234, got %q", info.GitCommit)
	}
	if info.BuildDate.Year() != 2024 {
		t.Errorf("expected build year 2024, got %d", info.BuildDate.Year())
	}
	if !strings.Contains(info.String(), "(built 2024-01-15T10:30:00Z)") {
		t.Errorf("unexpected full version %q", info.String())
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "1.0.0"}, "1.0.0"},
		{Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestUserAgent(t *testing.T) {
	defer saveAndRestore()()
	Version = "2.1.0"

	ua := UserAgent()
	want := "devportal/2.1.0 (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
	if ua != want {
		t.Errorf("expected %q, got %q", want, ua)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456" {
		t.Errorf("expected 0123456, got %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}
