package scaffold

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureSystemInfo(t *testing.T) {
	info := CaptureSystemInfo()

	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.True(t, strings.HasPrefix(info.Runtime, "go"))
	assert.NotNil(t, info.Packages)
	assert.False(t, info.Empty())
}

func TestSystemInfoEmpty(t *testing.T) {
	assert.True(t, SystemInfo{}.Empty())
	assert.False(t, SystemInfo{Platform: "linux/amd64"}.Empty())
	assert.False(t, SystemInfo{Packages: map[string]string{"a": "v1"}}.Empty())
}

func TestSystemInfoString(t *testing.T) {
	info := SystemInfo{
		Platform: "linux/amd64",
		Runtime:  "go1.24.4",
		Packages: map[string]string{
			"github.com/spf13/cobra":       "v1.9.1",
			"github.com/fsnotify/fsnotify": "v1.9.0",
			"github.com/stretchr/testify":  "v1.10.0",
		},
	}

	rendered := info.String()

	assert.Equal(t,
		"platform: linux/amd64; runtime: go1.24.4; packages: "+
			"github.com/fsnotify/fsnotify v1.9.0, "+
			"github.com/spf13/cobra v1.9.1, "+
			"github.com/stretchr/testify v1.10.0",
		rendered,
	)
}

func TestSystemInfoStringNoPackages(t *testing.T) {
	info := SystemInfo{Platform: "darwin/arm64", Runtime: "go1.24.4"}

	assert.Equal(t, "platform: darwin/arm64; runtime: go1.24.4", info.String())
}

func TestSystemInfoStringDeterministic(t *testing.T) {
	info := SystemInfo{
		Platform: "linux/amd64",
		Runtime:  "go1.24.4",
		Packages: map[string]string{"b/b": "v2", "a/a": "v1", "c/c": "v3"},
	}

	first := info.String()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, info.String())
	}
	assert.Contains(t, first, "a/a v1, b/b v2, c/c v3")
}
