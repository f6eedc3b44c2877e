package transport

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/mikelestevenzamora-tech/football-intel/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequestSingleLine(t *testing.T) {
	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	tr := NewStdioTransportWithStreams(in, io.Discard)

	req, err := tr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, "tools/list", req.Method)
}

func TestReadRequestSpansMultipleLines(t *testing.T) {
	in := strings.NewReader("{\n  \"jsonrpc\": \"2.0\",\n  \"id\": 2,\n  \"method\": \"initialize\"\n}")
	tr := NewStdioTransportWithStreams(in, io.Discard)

	req, err := tr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, "initialize", req.Method)
}

func TestReadRequestIgnoresBracesInStrings(t *testing.T) {
	in := strings.NewReader(`{"jsonrpc":"2.0","id":3,"method":"invoke_tool","params":{"name":"football_query","parameters":{"query":"braces { } and \" quotes"}}}`)
	tr := NewStdioTransportWithStreams(in, io.Discard)

	req, err := tr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, "invoke_tool", req.Method)
}

func TestReadRequestReadsSequentially(t *testing.T) {
	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n")
	tr := NewStdioTransportWithStreams(in, io.Discard)

	first, err := tr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, "initialize", first.Method)

	second, err := tr.ReadRequest()
	require.NoError(t, err)
	assert.Equal(t, "tools/list", second.Method)
}

func TestReadRequestEOF(t *testing.T) {
	tr := NewStdioTransportWithStreams(strings.NewReader(""), io.Discard)

	_, err := tr.ReadRequest()
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriteResponseIsNewlineDelimited(t *testing.T) {
	var out bytes.Buffer
	tr := NewStdioTransportWithStreams(strings.NewReader(""), &out)

	resp, err := protocol.NewJsonRpcResponse(map[string]string{"ok": "yes"}, 7)
	require.NoError(t, err)
	require.NoError(t, tr.WriteResponse(resp))

	written := out.String()
	assert.True(t, strings.HasSuffix(written, "\n"))
	assert.Contains(t, written, `"jsonrpc":"2.0"`)
}
