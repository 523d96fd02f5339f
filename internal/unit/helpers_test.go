package unit

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seqnet/su/internal/item"
	"github.com/seqnet/su/internal/sequencer"
	"github.com/seqnet/su/internal/store"
	"github.com/seqnet/su/internal/testutil"
)

// testUnit bundles a Unit with handles on its deterministic collaborators.
type testUnit struct {
	unit     *Unit
	store    *store.Store
	builder  *testutil.FakeBuilder
	uploader *testutil.MemUploader
	clock    *testutil.FixedClock
}

// newTestUnit builds a Unit over a real SQLite store in a temp dir, a fixed
// clock starting at 2023-11-14T22:13:20Z advancing 10ms per read, and
// in-memory collaborators.
func newTestUnit(t *testing.T) *testUnit {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "su.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := testutil.NewFixedClock(1700000000000, 10)
	builder := testutil.NewFakeBuilder()
	uploader := testutil.NewMemUploader()

	u := New(
		Deps{
			Store:     s,
			Sequencer: sequencer.New(s, sequencer.WithClock(clock)),
			Builder:   builder,
			Uploader:  uploader,
			Gateway:   testutil.StaticGateway{Height: 1427155},
			Wallet:    testutil.StaticWallet{Addr: "su-unit-wallet"},
		},
		WithClock(clock),
		WithRequestIDs(testutil.NewFixedRequestIDs()),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	return &testUnit{unit: u, store: s, builder: builder, uploader: uploader, clock: clock}
}

// registerProcess registers a well-formed Process item and returns its raw
// payload.
func (tu *testUnit) registerProcess(id string) []byte {
	raw := []byte("item:spawn-" + id)
	tu.builder.Register(raw, &item.Item{
		ID: id,
		Tags: item.Tags{
			{Name: item.TagDataProtocol, Value: "ao"},
			{Name: item.TagType, Value: item.TypeProcess},
			{Name: item.TagModule, Value: "wasm32-module"},
			{Name: item.TagScheduler, Value: "sched-pubkey"},
		},
	})
	return raw
}

// registerMessage registers a well-formed Message item and returns its raw
// payload.
func (tu *testUnit) registerMessage(id, target string) []byte {
	raw := []byte("item:" + id)
	tu.builder.Register(raw, &item.Item{
		ID:     id,
		Target: target,
		Tags: item.Tags{
			{Name: item.TagDataProtocol, Value: "ao"},
			{Name: item.TagType, Value: item.TypeMessage},
		},
	})
	return raw
}
