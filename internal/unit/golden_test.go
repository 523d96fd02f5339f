package unit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/seqnet/su/internal/record"
)

// writeSnapshot captures everything a write scenario produces: the results
// returned to callers, the persisted log, the finalized binaries handed to
// the uploader, and the status view afterwards.
type writeSnapshot struct {
	Results []*WriteResult   `json:"results"`
	Log     []record.Message `json:"log"`
	Uploads []string         `json:"uploads"`
	Status  Status           `json:"status"`
}

// TestGolden_SequenceScenario pins the full write pipeline end to end:
// spawn a process, sequence three messages, and snapshot every externally
// visible value. The fixed clock, request ids, and receipt ids make the
// output byte-stable.
//
// To regenerate the fixture after an intentional change:
//
//	go test ./internal/unit -run TestGolden_SequenceScenario -update
func TestGolden_SequenceScenario(t *testing.T) {
	tu := newTestUnit(t)
	ctx := context.Background()

	var results []*WriteResult
	for _, raw := range [][]byte{
		tu.registerProcess("proc-alpha"),
		tu.registerMessage("msg-alpha-1", "proc-alpha"),
		tu.registerMessage("msg-alpha-2", "proc-alpha"),
		tu.registerMessage("msg-alpha-3", "proc-alpha"),
	} {
		result, err := tu.unit.WriteItem(ctx, raw)
		require.NoError(t, err)
		results = append(results, result)
	}

	status, err := tu.unit.Status(ctx)
	require.NoError(t, err)

	log, err := tu.unit.ReadProcessLog(ctx, "proc-alpha", 0, 0)
	require.NoError(t, err)

	uploads := []string{}
	for _, b := range tu.uploader.Uploads() {
		uploads = append(uploads, string(b))
	}

	snapshot := writeSnapshot{
		Results: results,
		Log:     log,
		Uploads: uploads,
		Status:  status,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "sequence_scenario", data)
}
