package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEvaluateCmd(t *testing.T) {
	path := writeFile(t, "checklist.json", `{"twisted_bow": true, "fire_cape": false, "made_up": true}`)

	out, err := run(t, "evaluate", "--checklist", path)
	require.NoError(t, err)

	var got struct {
		Evaluation struct {
			PointsEarned int `json:"pointsEarned"`
			Qualified    struct {
				Label string `json:"label"`
			} `json:"qualifiedRank"`
		} `json:"evaluation"`
		NextThreshold  *int     `json:"nextThreshold"`
		UnknownItemIDs []string `json:"unknownItemIds"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 100, got.Evaluation.PointsEarned)
	assert.Equal(t, "Bob", got.Evaluation.Qualified.Label)
	require.NotNil(t, got.NextThreshold)
	assert.Equal(t, 250, *got.NextThreshold)
	assert.Equal(t, []string{"made_up"}, got.UnknownItemIDs)

	_, err = run(t, "evaluate")
	assert.Error(t, err)
}

func TestReconcileCmd(t *testing.T) {
	path := writeFile(t, "names.txt", "Fangs of venenatis\n\n  Nothing like this  \n")

	out, err := run(t, "reconcile", "--file", path, "Craw's bow (u)")
	require.NoError(t, err)

	var got struct {
		IDs         []string         `json:"matchedIds"`
		Unmatched   []string         `json:"unmatched"`
		Suggestions map[string][]any `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"webweaver_bow"}, got.IDs)
	assert.Equal(t, []string{"Nothing like this"}, got.Unmatched)
	assert.Contains(t, got.Suggestions, "Nothing like this")

	_, err = run(t, "reconcile")
	assert.Error(t, err)
}

func TestSkillingCmd(t *testing.T) {
	out, err := run(t, "skilling", "1500")
	require.NoError(t, err)
	assert.Contains(t, out, `"label": "Onyx"`)
	assert.Contains(t, out, `"label": "Zenyte"`)

	_, err = run(t, "skilling", "lots")
	assert.Error(t, err)
}

func TestCatalogCmd(t *testing.T) {
	out, err := run(t, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, `"infernal_cape"`)
	assert.Contains(t, out, `"pointsMax"`)
}
