package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/freshen/internal/adapters/config"
	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/freshen/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) *config.FileConfigLoader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func TestLoad_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "freshen.yaml", `
version: "1"
outDir: build
tools:
  cc: clang
cflags: ["-O2", "-Wall"]
ldflags: ["-static"]
includes: [include]
headers: [include/defs.h]
env:
  LC_ALL: C
copy:
  - from: config.h.in
    to: config.h
classgen: [shape.meta]
lex: [scan.l]
yacc: [gram.y]
sources: ["src/*.c"]
link:
  output: calc
  libs: ["-lm"]
timeout: 90s
`)

	m, err := newLoader(t).Load(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, tmpDir, m.Root)
	assert.Equal(t, "build", m.OutDir)
	assert.Equal(t, "clang", m.Tools.Cc)
	assert.Equal(t, "flex", m.Tools.Lex, "unset tools fall back to defaults")
	assert.Equal(t, []string{"-O2", "-Wall"}, m.CFlags)
	assert.Equal(t, []string{"-static"}, m.LDFlags)
	assert.Equal(t, []string{"include"}, m.Includes)
	assert.Equal(t, []string{"include/defs.h"}, m.Headers)
	assert.Equal(t, map[string]string{"LC_ALL": "C"}, m.Env)
	assert.Equal(t, []domain.CopySpec{{From: "config.h.in", To: "config.h"}}, m.Copy)
	assert.Equal(t, []string{"shape.meta"}, m.ClassGen)
	assert.Equal(t, []string{"scan.l"}, m.Lex)
	assert.Equal(t, []string{"gram.y"}, m.Yacc)
	assert.Equal(t, []string{"src/*.c"}, m.Sources)
	assert.Equal(t, domain.LinkSpec{Output: "calc", Libs: []string{"-lm"}}, m.Link)
	assert.Equal(t, 90*time.Second, m.Timeout)
}

func TestLoad_TOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "freshen.toml", `
version = "1"
outDir = "out"
sources = ["main.c"]
cflags = ["-g"]

[tools]
yacc = "byacc"

[[copy]]
from = "a.txt"
to = "b.txt"

[link]
output = "app"
`)

	m, err := newLoader(t).Load(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, "out", m.OutDir)
	assert.Equal(t, "byacc", m.Tools.Yacc)
	assert.Equal(t, "cc", m.Tools.Cc)
	assert.Equal(t, []string{"main.c"}, m.Sources)
	assert.Equal(t, []domain.CopySpec{{From: "a.txt", To: "b.txt"}}, m.Copy)
	assert.Equal(t, "app", m.Link.Output)
}

func TestLoad_DiscoversFromSubdirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "freshen.yml", "sources: [main.c]\n")
	deep := filepath.Join(tmpDir, "src", "parser")
	require.NoError(t, os.MkdirAll(deep, 0o750))

	m, err := newLoader(t).Load(deep, "")
	require.NoError(t, err)
	assert.Equal(t, tmpDir, m.Root)
}

func TestLoad_PrefersYAMLOverTOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeManifest(t, tmpDir, "freshen.yaml", "outDir: from-yaml\n")
	writeManifest(t, tmpDir, "freshen.toml", "outDir = \"from-toml\"\n")

	m, err := newLoader(t).Load(tmpDir, "")
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", m.OutDir)
}

func TestLoad_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	sub := filepath.Join(tmpDir, "conf")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	writeManifest(t, sub, "release.yaml", "outDir: release\n")

	m, err := newLoader(t).Load(tmpDir, filepath.Join("conf", "release.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "release", m.OutDir)
	assert.Equal(t, sub, m.Root)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{"invalid yaml", "freshen.yaml", "sources: [unterminated\n", domain.ErrConfigParseFailed},
		{"invalid toml", "freshen.toml", "sources = [\n", domain.ErrConfigParseFailed},
		{"unknown version", "freshen.yaml", "version: \"2\"\n", domain.ErrConfigParseFailed},
		{"incomplete copy", "freshen.yaml", "copy:\n  - from: a\n", domain.ErrConfigParseFailed},
		{"bad timeout", "freshen.yaml", "timeout: soon\n", domain.ErrInvalidTimeout},
		{"negative timeout", "freshen.yaml", "timeout: -1s\n", domain.ErrInvalidTimeout},
		{"unsupported format", "freshen.json", "{}", domain.ErrUnsupportedConfigFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := writeManifest(t, tmpDir, tt.file, tt.content)

			_, err := newLoader(t).Load(tmpDir, path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := newLoader(t).Load(tmpDir, "nope.yaml")
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_NotFound(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := config.Discover(tmpDir)
	// A manifest in an ancestor of the temp dir would be found first, which
	// does not happen on a clean machine.
	if err == nil {
		t.Skip("found a manifest above the temp directory")
	}
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}
