package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListStudies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study-config.json")

	body := `[
  // Fall cohort
  {"name": "pilot", "starts_at": "2019-11-12 09:00:00", "ends_at": "2019-11-30 17:00:00", "participants": []},
  {"name": "main", "participants": []}
]`

	err := os.WriteFile(path, []byte(body), 0600)
	require.NoError(t, err)

	buf := &bytes.Buffer{}

	err = listStudies(path, json.NewEncoder(buf))
	require.NoError(t, err)

	expected := `{"index":0,"name":"pilot","starts_at":"2019-11-12 09:00:00","ends_at":"2019-11-30 17:00:00"}` + "\n" +
		`{"index":1,"name":"main"}` + "\n"

	require.Equal(t, expected, buf.String())
}

func TestListStudies_Errors(t *testing.T) {
	dir := t.TempDir()

	err := listStudies(filepath.Join(dir, "missing.json"), json.NewEncoder(&bytes.Buffer{}))
	require.Error(t, err)

	path := filepath.Join(dir, "invalid.json")
	err = os.WriteFile(path, []byte(`{"name":"pilot"}`), 0600)
	require.NoError(t, err)

	err = listStudies(path, json.NewEncoder(&bytes.Buffer{}))
	require.Error(t, err)
}
