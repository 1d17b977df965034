package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable(t *testing.T) {
	data := NewTableData("APP", "STATUS")
	data.AddRow("alpha", "running")
	data.AddRow("beta", "stopped")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "APP")
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
}

func TestPrintTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, NewTableData("COL")))
	assert.Contains(t, buf.String(), "COL")
}

func TestSimpleTable(t *testing.T) {
	pairs := [][2]string{
		{"Status", "Running"},
		{"PID", "4242"},
	}

	var buf bytes.Buffer
	require.NoError(t, SimpleTable(&buf, pairs))

	out := buf.String()
	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "Running")
	assert.Contains(t, out, "4242")
}
