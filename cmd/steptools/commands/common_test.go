package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "part.step", FormatSpecPath("part.step"))
}

func TestReadWriteGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part.step.gz")
	payload := []byte(testStepFile)

	require.NoError(t, WriteOutput(path, payload))

	// On-disk bytes are compressed, not the raw document.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, payload, raw)

	got, err := ReadInput(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestReadInput(t *testing.T) {
	t.Run("plain file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "part.step")
		require.NoError(t, os.WriteFile(path, []byte(testStepFile), 0o644))

		got, err := ReadInput(path)
		require.NoError(t, err)
		assert.Equal(t, []byte(testStepFile), got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadInput(filepath.Join(t.TempDir(), "nope.step"))
		assert.Error(t, err)
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.step.gz")
		require.NoError(t, os.WriteFile(path, []byte("not gzip data"), 0o644))

		_, err := ReadInput(path)
		assert.Error(t, err)
	})
}

func TestValidateOutputPath(t *testing.T) {
	t.Run("output overwrites input", func(t *testing.T) {
		err := ValidateOutputPath("part.step", []string{"part.step"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "would overwrite")
	})

	t.Run("distinct paths", func(t *testing.T) {
		assert.NoError(t, ValidateOutputPath("out.step", []string{"part.step"}))
	})

	t.Run("stdin input ignored", func(t *testing.T) {
		assert.NoError(t, ValidateOutputPath("out.step", []string{StdinFilePath}))
	})
}

func TestRejectSymlinkOutput(t *testing.T) {
	dir := t.TempDir()

	t.Run("nonexistent path", func(t *testing.T) {
		assert.NoError(t, RejectSymlinkOutput(filepath.Join(dir, "new.step")))
	})

	t.Run("regular file", func(t *testing.T) {
		path := filepath.Join(dir, "plain.step")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		assert.NoError(t, RejectSymlinkOutput(path))
	})

	t.Run("symlink", func(t *testing.T) {
		target := filepath.Join(dir, "target.step")
		link := filepath.Join(dir, "link.step")
		require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
		require.NoError(t, os.Symlink(target, link))

		err := RejectSymlinkOutput(link)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symlink")
	})
}
