package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStepFile = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION(('test part'),'2;1');
ENDSEC;
DATA;
#1=CARTESIAN_POINT('',(0.,0.,0.));
#2=CARTESIAN_POINT('',(0.,0.,0.));
#3=VERTEX_POINT('',#2);
ENDSEC;
END-ISO-10303-21;
`

func TestSetupReduceFlags(t *testing.T) {
	fs, flags := SetupReduceFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, "", flags.Output)
		assert.Equal(t, -1, flags.Precision, "expected exact comparison by default")
		assert.False(t, flags.UseStepPrecision)
		assert.False(t, flags.KeepOrphans)
		assert.False(t, flags.MaskNames)
		assert.False(t, flags.StripComments)
		assert.False(t, flags.Quiet)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{
			"-o", "out.step", "--precision", "3", "--use-step-precision",
			"--keep-orphans", "--mask-names", "--workers", "2", "-q", "part.step",
		}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "out.step", flags.Output)
		assert.Equal(t, 3, flags.Precision)
		assert.True(t, flags.UseStepPrecision)
		assert.True(t, flags.KeepOrphans)
		assert.True(t, flags.MaskNames)
		assert.Equal(t, 2, flags.Workers)
		assert.True(t, flags.Quiet)
		assert.Equal(t, "part.step", fs.Arg(0))
	})
}

func TestHandleReduce(t *testing.T) {
	t.Run("file to file", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "part.step")
		outPath := filepath.Join(dir, "reduced.step")
		require.NoError(t, os.WriteFile(inPath, []byte(testStepFile), 0o644))

		require.NoError(t, HandleReduce([]string{"-q", "-o", outPath, inPath}))

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "#1=CARTESIAN_POINT('',(0.,0.,0.));")
		assert.Contains(t, string(data), "#2=VERTEX_POINT('',#1);")
		assert.NotContains(t, string(data), "#3=")
	})

	t.Run("gzip round trip", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "part.step.gz")
		outPath := filepath.Join(dir, "reduced.step.gz")
		require.NoError(t, WriteOutput(inPath, []byte(testStepFile)))

		require.NoError(t, HandleReduce([]string{"-q", "-o", outPath, inPath}))

		data, err := ReadInput(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "#2=VERTEX_POINT('',#1);")
	})

	t.Run("profile flag", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "part.step")
		outPath := filepath.Join(dir, "reduced.step")
		profilePath := filepath.Join(dir, "profile.yaml")
		input := "ISO-10303-21;\nHEADER;\nENDSEC;\nDATA;\n" +
			"#1=CARTESIAN_POINT('a',(0.,0.,0.));\n" +
			"#2=CARTESIAN_POINT('b',(0.,0.,0.));\n" +
			"ENDSEC;\nEND-ISO-10303-21;\n"
		require.NoError(t, os.WriteFile(inPath, []byte(input), 0o644))
		require.NoError(t, os.WriteFile(profilePath, []byte("mask_names: true\n"), 0o644))

		require.NoError(t, HandleReduce([]string{"-q", "--profile", profilePath, "-o", outPath, inPath}))

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "#2=CARTESIAN_POINT")
	})

	t.Run("output must not overwrite input", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "part.step")
		require.NoError(t, os.WriteFile(inPath, []byte(testStepFile), 0o644))

		err := HandleReduce([]string{"-q", "-o", inPath, inPath})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "would overwrite")
	})

	t.Run("malformed input", func(t *testing.T) {
		dir := t.TempDir()
		inPath := filepath.Join(dir, "bad.step")
		require.NoError(t, os.WriteFile(inPath, []byte("not a step file"), 0o644))

		err := HandleReduce([]string{"-q", inPath})
		require.Error(t, err)
	})

	t.Run("no args", func(t *testing.T) {
		assert.Error(t, HandleReduce([]string{}))
	})

	t.Run("help", func(t *testing.T) {
		assert.NoError(t, HandleReduce([]string{"--help"}))
	})
}
