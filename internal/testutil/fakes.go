package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/item"
	"github.com/seqnet/su/internal/record"
)

// FakeBuilder is an in-memory item.Builder. Tests register the parsed view
// of each raw payload up front; unregistered payloads fail Parse the way a
// bad signature would. Finalize assembles a readable, deterministic binary
// so tests and golden files can assert on the stamped values.
type FakeBuilder struct {
	mu          sync.Mutex
	items       map[string]*item.Item
	ParseErr    error
	FinalizeErr error
}

// NewFakeBuilder creates an empty builder.
func NewFakeBuilder() *FakeBuilder {
	return &FakeBuilder{items: make(map[string]*item.Item)}
}

// Register maps a raw payload to its parsed view.
func (b *FakeBuilder) Register(raw []byte, it *item.Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items[string(raw)] = it
}

// Parse implements item.Builder.
func (b *FakeBuilder) Parse(_ context.Context, raw []byte) (*item.Item, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ParseErr != nil {
		return nil, b.ParseErr
	}
	it, ok := b.items[string(raw)]
	if !ok {
		return nil, fault.New(fault.KindValidation, "item signature did not verify")
	}
	cp := *it
	return &cp, nil
}

// Finalize implements item.Builder. The binary is the raw payload plus the
// stamped schedule values in a fixed text form.
func (b *FakeBuilder) Finalize(_ context.Context, raw []byte, sched record.ScheduleInfo) (*item.Finalized, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FinalizeErr != nil {
		return nil, b.FinalizeErr
	}
	it, ok := b.items[string(raw)]
	if !ok {
		return nil, fault.New(fault.KindValidation, "item signature did not verify")
	}
	binary := fmt.Sprintf("%s|epoch=%d|nonce=%d|timestamp=%d|hash=%s",
		raw, sched.Epoch, sched.Nonce, sched.Timestamp, sched.HashChain)
	return &item.Finalized{ID: it.ID, Binary: []byte(binary)}, nil
}

// MemUploader records uploads in memory.
type MemUploader struct {
	mu      sync.Mutex
	Err     error
	uploads [][]byte
}

// NewMemUploader creates an empty uploader.
func NewMemUploader() *MemUploader {
	return &MemUploader{}
}

// Upload implements item.Uploader. Receipt ids are "upload-1", "upload-2",
// ... in acceptance order.
func (u *MemUploader) Upload(_ context.Context, binary []byte) (*item.Receipt, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.Err != nil {
		return nil, u.Err
	}
	cp := make([]byte, len(binary))
	copy(cp, binary)
	u.uploads = append(u.uploads, cp)
	return &item.Receipt{ID: fmt.Sprintf("upload-%d", len(u.uploads))}, nil
}

// Uploads returns a snapshot of everything uploaded so far.
func (u *MemUploader) Uploads() [][]byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([][]byte(nil), u.uploads...)
}

// StaticGateway serves a fixed block height.
type StaticGateway struct {
	Height uint64
	Err    error
}

// BlockHeight implements item.Gateway.
func (g StaticGateway) BlockHeight(context.Context) (uint64, error) {
	if g.Err != nil {
		return 0, g.Err
	}
	return g.Height, nil
}

// StaticWallet serves a fixed ledger address.
type StaticWallet struct {
	Addr string
	Err  error
}

// Address implements item.Wallet.
func (w StaticWallet) Address() (string, error) {
	if w.Err != nil {
		return "", w.Err
	}
	return w.Addr, nil
}
