package store

import (
	"path/filepath"
	"testing"

	"github.com/seqnet/su/internal/record"
)

// createTestStore creates a store backed by a throwaway database file.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestMessage creates a message with plausible fields for one log slot.
func createTestMessage(messageID, processID string, nonce int32, timestamp int64) record.Message {
	return record.Message{
		MessageID: messageID,
		ProcessID: processID,
		Epoch:     0,
		Nonce:     nonce,
		Timestamp: timestamp,
		HashChain: "link-" + messageID,
		Raw:       []byte("raw-" + messageID),
	}
}

// createTestProcess creates a process record with minimal required fields.
func createTestProcess(processID string, timestamp int64) record.Process {
	return record.Process{
		ProcessID: processID,
		Module:    "module-1",
		Scheduler: "scheduler-1",
		Timestamp: timestamp,
		Raw:       []byte("raw-" + processID),
	}
}
