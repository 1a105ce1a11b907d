package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plancheck/plancheck/internal/suite"
)

func TestListRendersTable(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	root := newRootCmd(testRegistry(t))
	root.SetOut(out)
	root.SetArgs([]string{"list"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "MODULE")
	require.Contains(t, out.String(), "s3")
	require.Contains(t, out.String(), "cloudfront")
}

func TestListRendersJSON(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	root := newRootCmd(testRegistry(t))
	root.SetOut(out)
	root.SetArgs([]string{"list", "--json"})

	require.NoError(t, root.Execute())

	var payload listJSONPayload
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	require.Equal(t, 5, payload.Count)

	names := make([]string, len(payload.Modules))
	for i, mod := range payload.Modules {
		names[i] = mod.Name
		require.NotEmpty(t, mod.Cases)
		require.Equal(t, len(mod.Cases), mod.CaseCount)
	}
	require.Contains(t, names, "iam")
	require.Contains(t, names, "monitoring")
}

func TestListEmptyRegistry(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	root := newRootCmd(suite.NewRegistry())
	root.SetOut(out)
	root.SetArgs([]string{"list"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "No test modules registered.")
}
