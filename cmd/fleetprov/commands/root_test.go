package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_HasSubcommands(t *testing.T) {
	t.Parallel()
	root := Root()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "run")
	assert.Contains(t, names, "validate")
	assert.Contains(t, names, "version")
	assert.Contains(t, names, "completion")
}

func TestRun_Flags(t *testing.T) {
	t.Parallel()
	cmd := Run()

	for _, flag := range []string{"retries", "dry-run", "concurrency", "api-url", "timeout", "config", "metrics-listen"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestRun_RequiresInventoryArg(t *testing.T) {
	t.Parallel()
	cmd := Run()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
}

func TestVersion_Output(t *testing.T) {
	t.Parallel()
	cmd := Version()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "fleetprov")
	assert.Contains(t, out.String(), "commit:")
}
