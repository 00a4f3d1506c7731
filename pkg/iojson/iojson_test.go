package iojson

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteLine(&buf, map[string]any{"id": 1, "text": "a"}))
	require.NoError(t, WriteLine(&buf, map[string]any{"id": 2, "text": "b"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"id":1,"text":"a"}`, lines[0])
	assert.JSONEq(t, `{"id":2,"text":"b"}`, lines[1])
}

func TestWriteLine_MarshalError(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLine(&buf, make(chan int))
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, []string{"x"}))
	assert.Equal(t, "[\n  \"x\"\n]\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_MarshalErrorGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer

	err := WriteWith(&out, &errOut, make(chan int))
	require.Error(t, err)
	assert.Empty(t, out.String())

	var report struct {
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &report))
	assert.Contains(t, report.Message, "iojson.WriteWith")
	assert.NotEmpty(t, report.Data["json_error"])
}

func TestFileReader_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"text":"a"}]`), 0o644))

	fr := FileReader[[]map[string]string]{fileFlagValue: path}
	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"text": "a"}}, got)
}

func TestFileReader_MissingFile(t *testing.T) {
	fr := FileReader[[]string]{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}
	_, err := fr.Read()
	assert.ErrorContains(t, err, "open file")
}
