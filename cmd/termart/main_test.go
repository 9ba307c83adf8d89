package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/termart/player"
	"go.jacobcolvin.com/termart/preset"
)

func writePNG(t *testing.T, path string, v uint8) {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: v})
	img.SetGray(1, 0, color.Gray{Y: v})

	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

// frameDir writes a white frame followed by a black one.
func frameDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "frame-01.png"), 0xff)
	writePNG(t, filepath.Join(dir, "frame-02.png"), 0x00)

	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(t.Context())

	return stdout.String(), stderr.String(), err
}

func TestRoot_Play(t *testing.T) {
	t.Parallel()

	dir := frameDir(t)
	yes := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(yes, []byte("ascii-string: xy\n"), 0o600))

	tcs := map[string]struct {
		want string
		args []string
	}{
		"directory": {
			args: []string{"-a", "01", dir},
			want: "11\n" + ansi.CursorUp(1) + "00\n",
		},
		"glob": {
			args: []string{"-a", "01", filepath.Join(dir, "*-02.png")},
			want: "00\n",
		},
		"pre-render": {
			args: []string{"-p", "-a", "01", dir},
			want: "11\n" + ansi.CursorUp(1) + "00\n",
		},
		"reverse": {
			args: []string{"-r", "-a", "01", dir},
			want: "00\n" + ansi.CursorUp(1) + "11\n",
		},
		"preset": {
			args: []string{"--config", yes, dir},
			want: "yy\n" + ansi.CursorUp(1) + "xx\n",
		},
		"flag overrides preset": {
			args: []string{"--config", yes, "-a", "01", dir},
			want: "11\n" + ansi.CursorUp(1) + "00\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stdout, stderr, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, stdout)
			assert.Contains(t, stderr, "starting playback")
		})
	}
}

func TestRoot_Errors(t *testing.T) {
	t.Parallel()

	dir := frameDir(t)

	tcs := map[string]struct {
		wantErr error
		args    []string
	}{
		"missing file": {
			args:    []string{filepath.Join(dir, "nope.png")},
			wantErr: player.ErrDecode,
		},
		"glob without matches": {
			args:    []string{filepath.Join(dir, "*.webp")},
			wantErr: ErrPathExpansion,
		},
		"bad option": {
			args:    []string{"--filter=bicubic", dir},
			wantErr: player.ErrInvalidOption,
		},
		"bad preset": {
			args:    []string{"--config", filepath.Join(dir, "missing.yaml"), dir},
			wantErr: preset.ErrInvalidPreset,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tc.args...)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("no arguments", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t)
		require.Error(t, err)
	})
}

func TestRoot_LogFormat(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "--log-format=json", "--log-level=debug", "-a", "01", frameDir(t))
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewBufferString(stderr))

	var msgs []string

	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))

		msg, ok := entry["msg"].(string)
		require.True(t, ok)

		msgs = append(msgs, msg)
	}

	assert.Contains(t, msgs, "starting playback")
	assert.Contains(t, msgs, "rendered frame")
	assert.Contains(t, msgs, "playback finished")
}

func TestSchemaCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "schema")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", got["$schema"])
}

func TestVersionFlag(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "termart devel")
}
