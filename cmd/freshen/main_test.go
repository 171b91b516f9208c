package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/freshen/internal/app"
)

func TestRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses cp and sh")
	}

	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		setup        func(t *testing.T, dir string)
		args         []string
		expectedExit int
		check        func(t *testing.T, dir string, stdout string)
		logged       []string
	}{
		{
			name: "exec runs a stale command",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "in.txt"), []byte("hello"), 0o600))
			},
			args:         []string{"freshen", "exec", "-i", "in.txt", "-o", "out.txt", "--", "cp", "in.txt", "out.txt"},
			expectedExit: 0,
			check: func(t *testing.T, dir string, _ string) {
				data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
				require.NoError(t, err)
				assert.Equal(t, "hello", string(data))
				assert.FileExists(t, filepath.Join(dir, ".freshen", "journal.json"))
			},
		},
		{
			name: "exec dry run prints the command",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "in.txt"), []byte("hello"), 0o600))
			},
			args:         []string{"freshen", "--no-execute", "exec", "-i", "in.txt", "-o", "out.txt", "--", "cp", "in.txt", "out.txt"},
			expectedExit: 0,
			check: func(t *testing.T, dir string, stdout string) {
				assert.Equal(t, "cp in.txt out.txt\n", stdout)
				assert.NoFileExists(t, filepath.Join(dir, "out.txt"))
			},
		},
		{
			name:         "missing input fails",
			setup:        func(*testing.T, string) {},
			args:         []string{"freshen", "exec", "-i", "nope.txt", "-o", "out.txt", "--", "true"},
			expectedExit: 1,
			logged:       []string{"missing input: nope.txt"},
		},
		{
			name:         "failing command fails",
			setup:        func(*testing.T, string) {},
			args:         []string{"freshen", "exec", "--", "sh", "-c", "echo boom >&2; exit 4"},
			expectedExit: 1,
			logged:       []string{"command failed (exit 4)", "echo boom", "boom"},
		},
		{
			name: "build with manifest",
			setup: func(t *testing.T, dir string) {
				manifest := "version: \"1\"\ntools:\n  copy: cp\ncopy:\n  - from: a.txt\n    to: b.txt\n"
				require.NoError(t, os.WriteFile(filepath.Join(dir, "freshen.yaml"), []byte(manifest), 0o600))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("data"), 0o600))
			},
			args:         []string{"freshen", "build"},
			expectedExit: 0,
			check: func(t *testing.T, dir string, _ string) {
				assert.FileExists(t, filepath.Join(dir, "b.txt"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tt.setup(t, tmpDir)

			originalWd, _ := os.Getwd()
			require.NoError(t, os.Chdir(tmpDir))
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = tt.args

			var stdout, logs bytes.Buffer
			exitCode := run(func(c *app.Components) {
				c.App.WithOutput(&stdout, io.Discard)
				if l, ok := c.Logger.(interface{ SetOutput(io.Writer) }); ok {
					l.SetOutput(&logs)
				}
			})
			assert.Equal(t, tt.expectedExit, exitCode)
			for _, want := range tt.logged {
				assert.Contains(t, logs.String(), want)
			}
			if tt.check != nil {
				tt.check(t, tmpDir, stdout.String())
			}
		})
	}
}
