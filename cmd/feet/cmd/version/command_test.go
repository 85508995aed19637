package version_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/feet/cmd/feet/cmd/version"
	"github.com/agentstation/feet/internal/cmd/application"
)

func TestVersionCommand(t *testing.T) {
	cmd := version.NewCommand(&application.Mock{VersionFunc: func() string { return "1.2.3" }})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "feet version 1.2.3")
	assert.Contains(t, out.String(), "commit: unknown")
	assert.Contains(t, out.String(), "platform: ")
}
