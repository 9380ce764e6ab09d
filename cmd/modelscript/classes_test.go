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

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func byClass(rows []ClassInfo) map[string]ClassInfo {
	m := make(map[string]ClassInfo, len(rows))
	for _, r := range rows {
		m[r.Class] = r
	}
	return m
}

func TestClasses_JSON(t *testing.T) {
	out, err := runRoot(t, "classes")
	require.NoError(t, err)

	var rows []ClassInfo
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	classes := byClass(rows)

	actor, ok := classes["BusinessActor"]
	require.True(t, ok)
	assert.Equal(t, "business-actor", actor.Kebab)
	assert.Equal(t, "element", actor.Category)
	assert.True(t, actor.Icon)
	assert.True(t, actor.AlternateFigure)

	junction := classes["Junction"]
	assert.False(t, junction.Icon)
	assert.NotEmpty(t, junction.Hidden)

	assert.Equal(t, "relationship", classes["AssignmentRelationship"].Category)
	assert.Equal(t, "diagram", classes["DiagramModelNote"].Category)
}

func TestClasses_CategoryFilter(t *testing.T) {
	out, err := runRoot(t, "classes", "--category", "relationship")
	require.NoError(t, err)

	var rows []ClassInfo
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.Equal(t, "relationship", r.Category, r.Class)
	}

	_, err = runRoot(t, "classes", "--category", "widgets")
	assert.ErrorContains(t, err, `unknown category "widgets"`)
}

func TestClasses_HumanWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Goal:\n  icon: false\n"), 0o600))

	out, err := runRoot(t, "classes", "--human", "--category", "element", "--capabilities", path)
	require.NoError(t, err)

	assert.Contains(t, out, "CLASS")
	assert.Contains(t, out, "ALT FIGURE")
	assert.Regexp(t, `(?m)^Goal\s+goal\s+element\s+false\s+`, out)
	assert.Regexp(t, `(?m)^BusinessActor\s+business-actor\s+element\s+true\s+true`, out)
	assert.NotContains(t, out, "DiagramModelNote")
}
