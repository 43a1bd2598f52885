package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateOutputType(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"terminal", "Text", "WORD", "markdown", ""} {
		require.NoError(t, validateOutputType(valid), "output type %q", valid)
	}

	require.Error(t, validateOutputType("pdf"))
}

func TestWriteOutputTerminal(t *testing.T) {
	t.Parallel()

	out := new(bytes.Buffer)
	app := &appState{outputType: "terminal", out: out}

	require.NoError(t, app.writeOutput("The summary.", "spk_0: Hello.\n"))
	require.Equal(t, "Summary:\nThe summary.\n\nTranscription:\nspk_0: Hello.\n\n", out.String())
}

// chdir changes the working directory for the duration of the test,
// standing in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func TestWriteOutputTextFile(t *testing.T) {
	chdir(t, t.TempDir())

	app := &appState{outputType: "text"}
	require.NoError(t, app.writeOutput("The summary.", "spk_0: Hello.\n"))

	onDisk, err := os.ReadFile("summary.txt")
	require.NoError(t, err)
	require.Contains(t, string(onDisk), "The summary.")
	require.Contains(t, string(onDisk), "Transcription:\nspk_0: Hello.")
}

func TestWriteOutputMarkdownFile(t *testing.T) {
	chdir(t, t.TempDir())

	app := &appState{outputType: "markdown"}
	require.NoError(t, app.writeOutput("The summary.", "spk_0: Hello.\n"))

	onDisk, err := os.ReadFile("summary.md")
	require.NoError(t, err)
	require.Contains(t, string(onDisk), "# Summary")
	require.Contains(t, string(onDisk), "\nspk_0: Hello.")
}

func TestWriteOutputWordFile(t *testing.T) {
	chdir(t, t.TempDir())

	app := &appState{outputType: "word"}
	require.NoError(t, app.writeOutput("The summary.", "spk_0: Hello.\n"))

	info, err := os.Stat("summary.docx")
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestWriteOutputUnknownType(t *testing.T) {
	t.Parallel()

	app := &appState{outputType: "pdf"}
	require.ErrorContains(t, app.writeOutput("s", "t"), "unknown output type")
}
