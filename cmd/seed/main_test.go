package main

import (
	"bytes"
	"os"
	"path/filepath"
	"stepsurvey/internal/catalog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")

	out, err := run(t, "catalog", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 19 questions")

	c, err := catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Len(), c.Len())

	out, err = run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok, 19 questions")
}

func TestCatalogToStdout(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "items:")
}

func TestValidateRejectsBrokenCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - id: a\n  - id: a\n"), 0o644))

	_, err := run(t, "validate", path)
	assert.ErrorIs(t, err, catalog.ErrDuplicateID)
}

func TestValidateRejectsCatalogWithoutQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - section: Intro\n"), 0o644))

	_, err := run(t, "validate", path)
	assert.ErrorIs(t, err, catalog.ErrNoQuestions)
}
