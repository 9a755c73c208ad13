package root

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/plainmd/pkg/plaintext"
)

func TestNewCmdRoot_Subcommands(t *testing.T) {
	cmd := NewCmdRoot()

	var subs []string
	for _, c := range cmd.Commands() {
		subs = append(subs, c.Name())
	}
	assert.Subset(t, subs, []string{"init", "convert", "rules", "config", "completion"})
}

func TestNewCmdRoot_Version(t *testing.T) {
	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "plainmd version dev"))
}

func TestNewCmdRoot_ConvertAndRules(t *testing.T) {
	t.Setenv("PLAINMD_BOLD_MODE", "")
	configPath := filepath.Join(t.TempDir(), "config.yml")

	run := func(stdin string, args ...string) string {
		cmd := NewCmdRoot()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetIn(strings.NewReader(stdin))
		cmd.SetArgs(append(args, "--config", configPath, "--no-color"))
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	run("", "rules", "add", "--name", "shout", "hello", "HELLO")
	assert.Contains(t, run("", "rules", "list"), "shout")

	out := run("**bold** hello", "convert")
	assert.Equal(t, plaintext.ToBold("bold")+" HELLO\n", out)

	run("", "rules", "disable", "1")
	out = run("hello", "convert")
	assert.Equal(t, "hello\n", out)

	assert.Equal(t, configPath+"\n", run("", "config", "path"))
}

func TestNewCmdRoot_InvalidOutputFlag(t *testing.T) {
	cmd := NewCmdRoot()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"rules", "list", "-o", "xml", "-c", filepath.Join(t.TempDir(), "c.yml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
