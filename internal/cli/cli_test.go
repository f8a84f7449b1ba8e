package cli_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rshade/energylabel/internal/cli"
	"github.com/rshade/energylabel/internal/config"
	"github.com/rshade/energylabel/internal/rating"
)

// isolateHome points the config directory at a temp dir and quiets logging.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("ENERGYLABEL_HOME", home)
	t.Setenv("ENERGYLABEL_LOG_LEVEL", "error")
	return home
}

// executeRoot runs the root command with args and returns its combined
// output. The global config is rebuilt for every run.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	var buf bytes.Buffer
	root := cli.NewRootCmd("test")
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func isInvalidInput(err error) bool {
	return errors.Is(err, rating.ErrInvalidInput)
}
