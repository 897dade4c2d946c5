package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupParseFlags(t *testing.T) {
	fs, flags := SetupParseFlags()

	t.Run("default values", func(t *testing.T) {
		assert.False(t, flags.Types)
		assert.Equal(t, 0, flags.MaxEntity)
	})

	t.Run("parse flags", func(t *testing.T) {
		require.NoError(t, fs.Parse([]string{"--types", "--max-entities", "100", "part.step"}))
		assert.True(t, flags.Types)
		assert.Equal(t, 100, flags.MaxEntity)
		assert.Equal(t, "part.step", fs.Arg(0))
	})
}

func TestHandleParse(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "part.step")
		require.NoError(t, os.WriteFile(inPath, []byte(testStepFile), 0o644))

		assert.NoError(t, HandleParse([]string{inPath}))
	})

	t.Run("entity limit exceeded", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "part.step")
		require.NoError(t, os.WriteFile(inPath, []byte(testStepFile), 0o644))

		err := HandleParse([]string{"--max-entities", "1", inPath})
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, HandleParse([]string{filepath.Join(t.TempDir(), "nope.step")}))
	})

	t.Run("no args", func(t *testing.T) {
		assert.Error(t, HandleParse([]string{}))
	})

	t.Run("help", func(t *testing.T) {
		assert.NoError(t, HandleParse([]string{"--help"}))
	})
}
