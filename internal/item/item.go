// Package item defines the parsed view of a signed data item and the
// interfaces of the external collaborators that produce, finalize, and
// publish items. Envelope encoding, signature verification, and transport
// live behind these interfaces, outside this module.
package item

import (
	"context"

	"github.com/seqnet/su/internal/record"
)

// Tag names recognized by the scheduler unit.
const (
	TagDataProtocol = "Data-Protocol"
	TagType         = "Type"
	TagModule       = "Module"
	TagScheduler    = "Scheduler"
)

// Type tag values an item may carry.
const (
	TypeProcess = "Process"
	TypeMessage = "Message"
)

// Tag is a single name/value pair from an item's tag list.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Tags preserves the order tags appear on the wire.
type Tags []Tag

// Get returns the value of the first tag with the given name.
func (t Tags) Get(name string) (string, bool) {
	for _, tag := range t {
		if tag.Name == name {
			return tag.Value, true
		}
	}
	return "", false
}

// Has reports whether a tag with the given name is present.
func (t Tags) Has(name string) bool {
	_, ok := t.Get(name)
	return ok
}

// Item is the parsed, signature-verified view of a raw data item. ID is the
// item's content-derived identity; Target is the destination process id for
// Message-typed items (empty otherwise); Owner is the signer's address.
type Item struct {
	ID     string `json:"id"`
	Target string `json:"target"`
	Owner  string `json:"owner"`
	Tags   Tags   `json:"tags"`
}

// Finalized is a sequenced item assembled into its publishable form: the
// original signed item wrapped in this unit's envelope with the ordering
// values stamped on.
type Finalized struct {
	ID     string
	Binary []byte
}

// Receipt acknowledges a durable upload. Raw holds the uploader's response
// body verbatim for callers that relay it.
type Receipt struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	Raw       []byte `json:"-"`
}

// Builder parses incoming items and assembles finalized envelopes.
// Parse must reject envelopes whose signatures do not verify. Finalize
// stamps the schedule values onto the unit's envelope and signs it; for
// Process-typed items the values carry only the creation timestamp.
type Builder interface {
	Parse(ctx context.Context, raw []byte) (*Item, error)
	Finalize(ctx context.Context, raw []byte, sched record.ScheduleInfo) (*Finalized, error)
}

// Signer signs envelope payloads with the unit's key.
type Signer interface {
	Sign(ctx context.Context, data []byte) ([]byte, error)
	PublicKey() []byte
}

// Wallet exposes the unit's ledger address, reported by health checks.
type Wallet interface {
	Address() (string, error)
}

// Uploader publishes a finalized item to the underlying data ledger.
type Uploader interface {
	Upload(ctx context.Context, binary []byte) (*Receipt, error)
}

// Gateway reads chain-level facts from the ledger network.
type Gateway interface {
	BlockHeight(ctx context.Context) (uint64, error)
}
