package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"funnel_backend/internal/leads/domain"
	"funnel_backend/platform/db"
)

func TestListFilterNormalized(t *testing.T) {
	cases := []struct {
		in   ListFilter
		want ListFilter
	}{
		{ListFilter{}, ListFilter{Limit: 50}},
		{ListFilter{Limit: 500, Offset: -3}, ListFilter{Limit: 50}},
		{ListFilter{QualifiedOnly: true, Limit: 200, Offset: 40}, ListFilter{QualifiedOnly: true, Limit: 200, Offset: 40}},
		{ListFilter{Limit: 1, Offset: 7}, ListFilter{Limit: 1, Offset: 7}},
	}
	for _, tc := range cases {
		if got := tc.in.normalized(); got != tc.want {
			t.Fatalf("normalized(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestInsertArgsFollowColumnOrder(t *testing.T) {
	lead := testLead(true)
	args := insertArgs(lead)
	if len(args) != 21 {
		t.Fatalf("expected 21 args, got %d", len(args))
	}
	if args[0] != lead.ID || args[2] != true || args[3] != lead.Score || args[6] != "ana@example.com" {
		t.Fatalf("unexpected leading args: %v", args[:7])
	}
	if start, ok := args[19].(*time.Time); !ok || start != nil {
		t.Fatalf("expected nil meeting start without a meeting, got %v", args[19])
	}

	start := time.Date(2026, 2, 2, 19, 0, 0, 0, time.UTC)
	lead.Meeting = &domain.Meeting{Start: start, End: start.Add(75 * time.Minute), Link: "https://meet.google.com/abc"}
	args = insertArgs(lead)
	if got := args[19].(*time.Time); got == nil || !got.Equal(start) {
		t.Fatalf("unexpected meeting start %v", args[19])
	}
	if args[20] != "https://meet.google.com/abc" {
		t.Fatalf("unexpected meeting link %v", args[20])
	}
}

type testDatabase string

func (d testDatabase) GetDatabaseURL() string  { return string(d) }
func (d testDatabase) IsDatabaseEnabled() bool { return d != "" }

// TestPostgresAppendAndList needs a disposable database in TEST_DATABASE_URL;
// it truncates the leads table.
func TestPostgresAppendAndList(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, testDatabase(url))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := db.RunMigrations(ctx, pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE leads"); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	store := NewPostgres(pool)
	qualified := testLead(true)
	unqualified := testLead(false)
	unqualified.RegisteredAt = qualified.RegisteredAt.Add(time.Minute)
	for _, lead := range []domain.Lead{qualified, unqualified} {
		if err := store.Append(ctx, lead); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	start := time.Date(2026, 2, 3, 19, 0, 0, 0, time.UTC)
	qualified.Meeting = &domain.Meeting{Start: start, End: start.Add(75 * time.Minute), Link: "https://meet.google.com/abc"}
	if err := store.Append(ctx, qualified); err != nil {
		t.Fatalf("re-append: %v", err)
	}

	all, total, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(all) != 2 {
		t.Fatalf("expected 2 leads, got %d (%d rows)", total, len(all))
	}
	if all[0].ID != unqualified.ID {
		t.Fatal("expected newest lead first")
	}

	only, total, err := store.List(ctx, ListFilter{QualifiedOnly: true})
	if err != nil {
		t.Fatalf("list qualified: %v", err)
	}
	if total != 1 || len(only) != 1 || only[0].ID != qualified.ID {
		t.Fatalf("unexpected qualified listing: %d %+v", total, only)
	}
	if only[0].MeetingStart == nil || !only[0].MeetingStart.Equal(start) || only[0].MeetingLink != "https://meet.google.com/abc" {
		t.Fatalf("expected upserted meeting, got %+v", only[0])
	}

	page, total, err := store.List(ctx, ListFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if total != 2 || len(page) != 1 || page[0].ID != qualified.ID {
		t.Fatalf("unexpected page: %d %+v", total, page)
	}
}
