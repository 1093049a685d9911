package store

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/roach88/eggir/internal/passes"
)

func testRun(id, input string) Run {
	return NewRun(id, passes.RemoveGlobalsName, "prog.yaml", input, "out-"+input, passes.Stats{
		InputCommands:  3,
		OutputCommands: 4,
		Globals:        1,
		References:     2,
	})
}

func TestRecordRun_AssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"run-b", "run-a", "run-c"} {
		seq, err := s.RecordRun(ctx, testRun(id, "in"))
		if err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", id, err)
		}
		if seq != int64(i+1) {
			t.Errorf("RecordRun(%s) seq = %d, expected %d", id, seq, i+1)
		}
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	got := make([]string, len(runs))
	for i, r := range runs {
		got[i] = r.ID
	}
	want := []string{"run-b", "run-a", "run-c"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("ListRuns() order = %v, expected %v", got, want)
	}
}

func TestRecordRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.RecordRun(ctx, testRun("run-1", "in"))
	if err != nil {
		t.Fatalf("first RecordRun() failed: %v", err)
	}

	changed := testRun("run-1", "other")
	second, err := s.RecordRun(ctx, changed)
	if err != nil {
		t.Fatalf("second RecordRun() failed: %v", err)
	}
	if first != second {
		t.Errorf("duplicate RecordRun() seq = %d, expected %d", second, first)
	}

	got, found, err := s.GetRun(ctx, "run-1")
	if err != nil || !found {
		t.Fatalf("GetRun() = found %v, err %v", found, err)
	}
	if got.InputDigest != "in" {
		t.Errorf("duplicate write changed input digest to %q", got.InputDigest)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("ListRuns() returned %d runs, expected 1", len(runs))
	}
}

func TestRecordRun_RequiresID(t *testing.T) {
	s := createTestStore(t)
	if _, err := s.RecordRun(context.Background(), testRun("", "in")); err == nil {
		t.Error("RecordRun() with empty id should fail")
	}
}

func TestGetRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	want := testRun("run-1", "abc")
	seq, err := s.RecordRun(ctx, want)
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	want.Seq = seq

	got, found, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if !found {
		t.Fatal("GetRun() did not find run-1")
	}
	if got != want {
		t.Errorf("GetRun() = %+v, expected %+v", got, want)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, found, err := s.GetRun(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if found {
		t.Error("GetRun() found a run that was never recorded")
	}
}

func TestListRuns_Empty(t *testing.T) {
	s := createTestStore(t)

	runs, err := s.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if runs == nil {
		t.Error("ListRuns() returned nil, expected empty slice")
	}
	if len(runs) != 0 {
		t.Errorf("ListRuns() returned %d runs, expected 0", len(runs))
	}
}

func TestListRuns_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, r := range []Run{testRun("run-b", "aaa"), testRun("run-a", "bbb")} {
		if _, err := s.RecordRun(ctx, r); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", r.ID, err)
		}
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-b" || runs[1].ID != "run-a" {
		t.Errorf("ListRuns() = %+v, expected run-b then run-a", runs)
	}
	if runs[0].Seq >= runs[1].Seq {
		t.Errorf("ListRuns() seqs %d, %d are not increasing", runs[0].Seq, runs[1].Seq)
	}
}

func TestFindByInputDigest(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, r := range []Run{testRun("run-1", "aaa"), testRun("run-2", "bbb"), testRun("run-3", "aaa")} {
		if _, err := s.RecordRun(ctx, r); err != nil {
			t.Fatalf("RecordRun(%s) failed: %v", r.ID, err)
		}
	}

	runs, err := s.FindByInputDigest(ctx, "aaa")
	if err != nil {
		t.Fatalf("FindByInputDigest() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-1" || runs[1].ID != "run-3" {
		t.Errorf("FindByInputDigest(aaa) = %+v, expected run-1 then run-3", runs)
	}

	none, err := s.FindByInputDigest(ctx, "zzz")
	if err != nil {
		t.Fatalf("FindByInputDigest() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("FindByInputDigest(zzz) returned %d runs, expected 0", len(none))
	}
}

func TestRecordRun_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s1.RecordRun(ctx, testRun("run-1", "in")); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	seq, err := s2.RecordRun(ctx, testRun("run-2", "in"))
	if err != nil {
		t.Fatalf("RecordRun() after reopen failed: %v", err)
	}
	if seq != 2 {
		t.Errorf("seq after reopen = %d, expected 2", seq)
	}
}

func TestRecordRun_Concurrent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.RecordRun(ctx, testRun(fmt.Sprintf("run-%02d", i), "in")); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent RecordRun() failed: %v", err)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 20 {
		t.Errorf("ListRuns() returned %d runs, expected 20", len(runs))
	}
	for i, r := range runs {
		if r.Seq != int64(i+1) {
			t.Errorf("runs[%d].Seq = %d, expected %d", i, r.Seq, i+1)
		}
	}
}

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUUIDv7Generator(t *testing.T) {
	var gen IDGenerator = UUIDv7Generator{}

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		if !uuidPattern.MatchString(id) {
			t.Fatalf("Generate() = %q, not a UUIDv7", id)
		}
		if seen[id] {
			t.Fatalf("Generate() returned duplicate %q", id)
		}
		seen[id] = true
	}
}
