package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Message(t *testing.T) {
	fx := newFixture(t)
	fx.writeStandaloneConfig(t)
	fx.seedProcess(t, "proc-a", 3)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: fx.configPath}
	cmd := NewReadCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"proc-a-msg-1"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "message proc-a-msg-1")
	assert.Contains(t, out, "process:    proc-a")
	assert.Contains(t, out, "nonce:      1")
	assert.Contains(t, out, "timestamp:  1010")
}

func TestRead_ProcessLog(t *testing.T) {
	fx := newFixture(t)
	fx.writeStandaloneConfig(t)
	fx.seedProcess(t, "proc-a", 3)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: fx.configPath}
	cmd := NewReadCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"proc-a"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "process proc-a: 3 message(s)")
	assert.Contains(t, out, "proc-a-msg-0")
	assert.Contains(t, out, "proc-a-msg-2")
}

func TestRead_WindowedProcessLog(t *testing.T) {
	fx := newFixture(t)
	fx.writeStandaloneConfig(t)
	fx.seedProcess(t, "proc-a", 3) // timestamps 1000, 1010, 1020

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: fx.configPath}
	cmd := NewReadCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"proc-a", "--from", "1000", "--to", "1010"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "process proc-a: 1 message(s)")
	assert.NotContains(t, out, "proc-a-msg-0", "from is exclusive")
	assert.Contains(t, out, "proc-a-msg-1")
	assert.NotContains(t, out, "proc-a-msg-2")
}

func TestRead_UnknownID(t *testing.T) {
	fx := newFixture(t)
	fx.writeStandaloneConfig(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: fx.configPath}
	cmd := NewReadCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "NOT_FOUND")
	assert.Contains(t, buf.String(), "not found")
}

func TestRead_JSONMessage(t *testing.T) {
	fx := newFixture(t)
	fx.writeStandaloneConfig(t)
	fx.seedProcess(t, "proc-a", 2)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", ConfigPath: fx.configPath}
	cmd := NewReadCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"proc-a-msg-0"})

	require.NoError(t, cmd.Execute())

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	msg, ok := data["message"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "proc-a-msg-0", msg["message_id"])
	assert.Equal(t, float64(0), msg["nonce"])
	assert.NotEmpty(t, msg["hash_chain"])
}

func TestRead_JSONProcessLog(t *testing.T) {
	fx := newFixture(t)
	fx.writeStandaloneConfig(t)
	fx.seedProcess(t, "proc-a", 2)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", ConfigPath: fx.configPath}
	cmd := NewReadCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"proc-a"})

	require.NoError(t, cmd.Execute())

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "proc-a", data["process_id"])
	log, ok := data["log"].([]any)
	require.True(t, ok)
	assert.Len(t, log, 2)
}
