package store

import (
	"context"
	"testing"

	"github.com/seqnet/su/internal/fault"
	"github.com/seqnet/su/internal/record"
)

func TestWriteScheduler_AssignsRowID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id1, err := s.WriteScheduler(ctx, record.Scheduler{URL: "https://su1.example"})
	if err != nil {
		t.Fatalf("WriteScheduler() failed: %v", err)
	}
	id2, err := s.WriteScheduler(ctx, record.Scheduler{URL: "https://su2.example"})
	if err != nil {
		t.Fatalf("WriteScheduler() failed: %v", err)
	}

	if id1 == id2 {
		t.Errorf("row ids should differ, both = %d", id1)
	}
	if id2 < id1 {
		t.Errorf("row ids should ascend with registration order: %d then %d", id1, id2)
	}
}

func TestWriteScheduler_RejectsDuplicateURL(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.WriteScheduler(ctx, record.Scheduler{URL: "https://su1.example"}); err != nil {
		t.Fatalf("WriteScheduler() failed: %v", err)
	}

	_, err := s.WriteScheduler(ctx, record.Scheduler{URL: "https://su1.example"})
	if err == nil {
		t.Fatal("WriteScheduler() with duplicate URL should fail")
	}
	if !fault.IsKind(err, fault.KindStore) {
		t.Errorf("err = %v, want store fault", err)
	}
}

func TestReadScheduler_ByRowAndURL(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rowID, err := s.WriteScheduler(ctx, record.Scheduler{URL: "https://su1.example", ProcessCount: 7})
	if err != nil {
		t.Fatalf("WriteScheduler() failed: %v", err)
	}

	byRow, err := s.ReadScheduler(ctx, rowID)
	if err != nil {
		t.Fatalf("ReadScheduler() failed: %v", err)
	}
	byURL, err := s.ReadSchedulerByURL(ctx, "https://su1.example")
	if err != nil {
		t.Fatalf("ReadSchedulerByURL() failed: %v", err)
	}

	if byRow != byURL {
		t.Errorf("lookups disagree: %+v vs %+v", byRow, byURL)
	}
	if byRow.ProcessCount != 7 {
		t.Errorf("ProcessCount = %d, want 7", byRow.ProcessCount)
	}
}

func TestReadScheduler_NotFound(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.ReadScheduler(ctx, 42); !fault.IsNotFound(err) {
		t.Errorf("ReadScheduler() err = %v, want not-found fault", err)
	}
	if _, err := s.ReadSchedulerByURL(ctx, "https://missing.example"); !fault.IsNotFound(err) {
		t.Errorf("ReadSchedulerByURL() err = %v, want not-found fault", err)
	}
}

func TestUpdateSchedulerProcessCount(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rowID, err := s.WriteScheduler(ctx, record.Scheduler{URL: "https://su1.example"})
	if err != nil {
		t.Fatalf("WriteScheduler() failed: %v", err)
	}

	if err := s.UpdateSchedulerProcessCount(ctx, rowID, 3); err != nil {
		t.Fatalf("UpdateSchedulerProcessCount() failed: %v", err)
	}

	got, err := s.ReadScheduler(ctx, rowID)
	if err != nil {
		t.Fatalf("ReadScheduler() failed: %v", err)
	}
	if got.ProcessCount != 3 {
		t.Errorf("ProcessCount = %d, want 3", got.ProcessCount)
	}
}

func TestUpdateSchedulerProcessCount_MissingRow(t *testing.T) {
	s := createTestStore(t)

	err := s.UpdateSchedulerProcessCount(context.Background(), 42, 1)
	if !fault.IsNotFound(err) {
		t.Errorf("err = %v, want not-found fault", err)
	}
}

func TestReadAllSchedulers_RowIDOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	urls := []string{"https://su1.example", "https://su2.example", "https://su3.example"}
	for _, u := range urls {
		if _, err := s.WriteScheduler(ctx, record.Scheduler{URL: u}); err != nil {
			t.Fatalf("WriteScheduler(%s) failed: %v", u, err)
		}
	}

	all, err := s.ReadAllSchedulers(ctx)
	if err != nil {
		t.Fatalf("ReadAllSchedulers() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i, sc := range all {
		if sc.URL != urls[i] {
			t.Errorf("position %d = %q, want %q", i, sc.URL, urls[i])
		}
	}
}

func TestReadAllSchedulers_EmptyReturnsSliceNotNil(t *testing.T) {
	s := createTestStore(t)

	all, err := s.ReadAllSchedulers(context.Background())
	if err != nil {
		t.Fatalf("ReadAllSchedulers() failed: %v", err)
	}
	if all == nil {
		t.Error("ReadAllSchedulers() should return empty slice, not nil")
	}
}
