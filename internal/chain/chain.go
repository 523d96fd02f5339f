// Package chain implements the hash chain that makes a process's message
// log tamper-evident. Each link commits to the full prefix of the log:
//
//	link[0] = H(process_id || message_id[0])
//	link[n] = H(link[n-1] || message_id[n])
//
// H is SHA-256 and digests are encoded as unpadded URL-safe base64, so a
// link is always 43 characters. There is no domain separator: the link
// function is fixed by the protocol and verified by downstream units, so
// the encoding cannot change unilaterally.
package chain

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/record"
)

// Link computes the next chain digest. previousOrSeed is the prior link,
// or the process id when sealing the first message of a log.
func Link(previousOrSeed, messageID string) string {
	h := sha256.New()
	h.Write([]byte(previousOrSeed))
	h.Write([]byte(messageID))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// VerifyLog checks an ordered message log against the chain rules: nonces
// are exactly 0..N-1, epochs are consistent, every message belongs to
// processID, and every link recomputes. Returns a validation fault naming
// the first broken position, or nil for an intact (possibly empty) log.
func VerifyLog(processID string, msgs []record.Message) error {
	prev := processID
	for i, m := range msgs {
		if m.ProcessID != processID {
			return fault.Newf(fault.KindValidation,
				"log position %d: message %q belongs to process %q, want %q",
				i, m.MessageID, m.ProcessID, processID)
		}
		if m.Nonce != int32(i) {
			return fault.Newf(fault.KindValidation,
				"log position %d: nonce %d breaks contiguity", i, m.Nonce)
		}
		if i > 0 && m.Epoch != msgs[i-1].Epoch {
			return fault.Newf(fault.KindValidation,
				"log position %d: epoch %d differs from previous epoch %d",
				i, m.Epoch, msgs[i-1].Epoch)
		}
		if want := Link(prev, m.MessageID); m.HashChain != want {
			return fault.Newf(fault.KindValidation,
				"log position %d: hash chain mismatch for message %q",
				i, m.MessageID)
		}
		prev = m.HashChain
	}
	return nil
}
