package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seqnet/su/internal/chain"
	"github.com/seqnet/su/internal/record"
	"github.com/seqnet/su/internal/store"
)

// fixture lays out a config file, a database, and a scheduler list under
// one temp dir, the way a deployed unit sees them.
type fixture struct {
	configPath string
	dbPath     string
	listPath   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	return &fixture{
		configPath: filepath.Join(dir, "su.yaml"),
		dbPath:     filepath.Join(dir, "su.db"),
		listPath:   filepath.Join(dir, "schedulers.json"),
	}
}

func (f *fixture) writeStandaloneConfig(t *testing.T) {
	t.Helper()
	content := fmt.Sprintf("database_path: %s\n", f.dbPath)
	require.NoError(t, os.WriteFile(f.configPath, []byte(content), 0o644))
}

func (f *fixture) writeRouterConfig(t *testing.T) {
	t.Helper()
	content := fmt.Sprintf("mode: router\ndatabase_path: %s\nnative_process_id: native-proc\nscheduler_list_path: %s\n",
		f.dbPath, f.listPath)
	require.NoError(t, os.WriteFile(f.configPath, []byte(content), 0o644))
}

func (f *fixture) writeSchedulerList(t *testing.T, urls ...string) {
	t.Helper()
	entries := make([]string, len(urls))
	for i, u := range urls {
		entries[i] = fmt.Sprintf("{\"url\": %q}", u)
	}
	content := "[" + strings.Join(entries, ", ") + "]"
	require.NoError(t, os.WriteFile(f.listPath, []byte(content), 0o644))
}

// seed opens the fixture database, runs fn against it, and closes it
// again so the command under test gets the file to itself.
func (f *fixture) seed(t *testing.T, fn func(ctx context.Context, s *store.Store)) {
	t.Helper()
	s, err := store.Open(f.dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()
	fn(context.Background(), s)
}

// seedProcess creates a process and n correctly chained messages. Message
// ids are <pid>-msg-<nonce> and timestamps run 1000, 1010, 1020, ...
func (f *fixture) seedProcess(t *testing.T, processID string, n int) {
	t.Helper()
	f.seed(t, func(ctx context.Context, s *store.Store) {
		require.NoError(t, s.WriteProcess(ctx, testProcess(processID)))
		prev := processID
		for i := 0; i < n; i++ {
			m := testMessage(processID, i, chain.Link(prev, messageID(processID, i)))
			require.NoError(t, s.WriteMessage(ctx, m))
			prev = m.HashChain
		}
	})
}

func messageID(processID string, nonce int) string {
	return fmt.Sprintf("%s-msg-%d", processID, nonce)
}

func testProcess(processID string) record.Process {
	return record.Process{
		ProcessID: processID,
		Module:    "wasm32-module",
		Scheduler: "sched-pubkey",
		Timestamp: 1000,
		Raw:       []byte("item:spawn-" + processID),
	}
}

func testMessage(processID string, nonce int, link string) record.Message {
	return record.Message{
		MessageID: messageID(processID, nonce),
		ProcessID: processID,
		Epoch:     0,
		Nonce:     int32(nonce),
		Timestamp: 1000 + int64(nonce)*10,
		HashChain: link,
		Raw:       []byte("item:" + messageID(processID, nonce)),
	}
}
