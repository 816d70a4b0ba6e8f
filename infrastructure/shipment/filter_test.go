package shipment

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleRows() []Row {
	return []Row{
		{Vessel: "MSC1", ClearanceDate: "2024-03-05", Port: "Tokyo", DrugNo: "D-7", SOStatus: StatusDone, TelexStatus: StatusPending},
		{Vessel: "EVER GIVEN", ClearanceDate: "2024-03-01", Port: "Osaka", DrugNo: "", SOStatus: StatusPending, TelexStatus: StatusDone},
		{Vessel: "ONE APUS", ClearanceDate: "2024-03-05", Port: "Kobe", DrugNo: "msc-ref", SOStatus: StatusDone, TelexStatus: StatusDone},
		{Vessel: "YM WISDOM", ClearanceDate: "2024-02-28", Port: "Nagoya", DrugNo: "D-9", SOStatus: StatusPending, TelexStatus: StatusPending},
		{Vessel: "WAN HAI", ClearanceDate: "2024-03-05", Port: "tokyo bay", DrugNo: "D-1", SOStatus: StatusDone, TelexStatus: StatusPending},
	}
}

func vessels(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Vessel)
	}
	return out
}

func TestApply_StatusFilterExample(t *testing.T) {
	t.Parallel()

	rows := []Row{{Vessel: "MSC1", ClearanceDate: "2024-03-05", SOStatus: StatusDone, TelexStatus: StatusPending}}

	got := Apply(rows, Criteria{SO: FilterDone, Telex: FilterAll})
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Fatalf("done filter mismatch (-want +got):\n%s", diff)
	}

	got = Apply(rows, Criteria{SO: FilterPending, Telex: FilterAll})
	if len(got) != 0 {
		t.Fatalf("expected no rows for pending filter, got %d", len(got))
	}
}

func TestApply_KeywordIsCaseInsensitiveAcrossThreeFields(t *testing.T) {
	t.Parallel()

	got := vessels(Apply(sampleRows(), Criteria{Keyword: "  MSC "}))
	want := []string{"MSC1", "ONE APUS"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("keyword match mismatch (-want +got):\n%s", diff)
	}

	got = vessels(Apply(sampleRows(), Criteria{Keyword: "TOKYO"}))
	want = []string{"MSC1", "WAN HAI"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("port keyword mismatch (-want +got):\n%s", diff)
	}

	if got := Apply(sampleRows(), Criteria{Keyword: "2024-03"}); len(got) != 0 {
		t.Fatalf("keyword must not match date columns, got %v", vessels(got))
	}
}

func TestApply_FiltersAreConjunctive(t *testing.T) {
	t.Parallel()

	got := vessels(Apply(sampleRows(), Criteria{Keyword: "d-", SO: FilterDone, Telex: FilterPending}))
	want := []string{"MSC1", "WAN HAI"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("conjunctive filter mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_UnsortedPreservesInputOrder(t *testing.T) {
	t.Parallel()

	rows := sampleRows()
	got := Apply(rows, Criteria{Telex: FilterPending})
	want := []Row{rows[0], rows[3], rows[4]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unsorted output mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_StableSortKeepsTieOrder(t *testing.T) {
	t.Parallel()

	got := vessels(Apply(sampleRows(), Criteria{SortKey: SortClearanceDate, SortOrder: Asc}))
	want := []string{"YM WISDOM", "EVER GIVEN", "MSC1", "ONE APUS", "WAN HAI"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("asc sort mismatch (-want +got):\n%s", diff)
	}

	got = vessels(Apply(sampleRows(), Criteria{SortKey: SortClearanceDate, SortOrder: Desc}))
	want = []string{"MSC1", "ONE APUS", "WAN HAI", "EVER GIVEN", "YM WISDOM"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("desc sort mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_LexicographicNotNumeric(t *testing.T) {
	t.Parallel()

	rows := []Row{{Vessel: "a", Quantity: "10"}, {Vessel: "b", Quantity: "9"}, {Vessel: "c", Quantity: "100"}}
	got := vessels(Apply(rows, Criteria{SortKey: SortQuantity}))
	want := []string{"a", "c", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("quantity sort mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_DescIsReverseOfAscForDistinctKeys(t *testing.T) {
	t.Parallel()

	asc := Apply(sampleRows(), Criteria{SortKey: SortVessel, SortOrder: Asc})
	desc := Apply(asc, Criteria{SortKey: SortVessel, SortOrder: Desc})
	reversed := slices.Clone(asc)
	slices.Reverse(reversed)
	if diff := cmp.Diff(reversed, desc); diff != "" {
		t.Fatalf("desc is not the reverse of asc (-want +got):\n%s", diff)
	}
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	criteria := []Criteria{
		{},
		{Keyword: "o", SO: FilterDone},
		{SortKey: SortClearanceDate, SortOrder: Desc},
		{SortKey: SortTelexStatus, SortOrder: Asc, Telex: FilterAll},
		{Keyword: "d-", SortKey: SortPort, SortOrder: Desc, SO: FilterPending},
	}
	for _, c := range criteria {
		once := Apply(sampleRows(), c)
		twice := Apply(once, c)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("criteria %+v not idempotent (-once +twice):\n%s", c, diff)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	rows := sampleRows()
	before := slices.Clone(rows)
	_ = Apply(rows, Criteria{SortKey: SortVessel, SortOrder: Desc})
	if diff := cmp.Diff(before, rows); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	if ParseStatusFilter("DONE") != FilterDone || ParseStatusFilter("pending") != FilterPending || ParseStatusFilter("bogus") != FilterAll {
		t.Fatalf("unexpected status filter parsing")
	}
	if ParseSortOrder("desc") != Desc || ParseSortOrder("") != Asc {
		t.Fatalf("unexpected sort order parsing")
	}
	for _, key := range Columns {
		if ParseSortKey(key.String()) != key {
			t.Fatalf("sort key %q does not round trip", key.String())
		}
	}
	if ParseSortKey("nope") != SortNone {
		t.Fatalf("expected unknown sort key to be SortNone")
	}
}
