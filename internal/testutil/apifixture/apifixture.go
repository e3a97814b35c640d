// Package apifixture provides a small two-package API model for tests.
package apifixture

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apisite/internal/apimodel"
)

//go:embed *.api.json
var descriptors embed.FS

// Package names present in the fixture.
const (
	WidgetsPackage = "@acme/widgets"
	ToolsPackage   = "tools"
)

// FS returns the fixture descriptors as an in-memory filesystem rooted at ".".
func FS(t testing.TB) fstest.MapFS {
	t.Helper()
	out := fstest.MapFS{}
	entries, err := fs.ReadDir(descriptors, ".")
	require.NoError(t, err)
	for _, e := range entries {
		data, err := descriptors.ReadFile(e.Name())
		require.NoError(t, err)
		out[e.Name()] = &fstest.MapFile{Data: data}
	}
	return out
}

// Load returns the fixture model.
func Load(t testing.TB) *apimodel.Model {
	t.Helper()
	m, err := apimodel.LoadFS(FS(t), ".", apimodel.LoadOptions{})
	require.NoError(t, err)
	return m
}

// WriteDir copies the fixture descriptors into dir.
func WriteDir(t testing.TB, dir string) {
	t.Helper()
	for name, f := range FS(t) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), f.Data, 0o600))
	}
}

// Find returns the first item in m with the given display name and kind.
func Find(t testing.TB, m *apimodel.Model, kind apimodel.Kind, name string) *apimodel.Item {
	t.Helper()
	for _, it := range apimodel.Flatten(m.Root()) {
		if it.Kind == kind && it.DisplayName() == name {
			return it
		}
	}
	require.Failf(t, "fixture item not found", "%s %s", kind, name)
	return nil
}
