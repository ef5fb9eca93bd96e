package model

import "testing"

func TestComputeProgress_RoundsHalfUp(t *testing.T) {
	c := &Checklist{Items: []Entry{{ID: "a", Done: true}, {ID: "b", Done: true}, {ID: "c"}}}
	got := ComputeProgress(c)
	want := Progress{Completed: 2, Total: 3, Percentage: 67}
	if got != want {
		t.Fatalf("expected %+v; got %+v", want, got)
	}
	if got.Complete() {
		t.Fatalf("expected incomplete")
	}
}

func TestComputeProgress_EmptyChecklistIsZero(t *testing.T) {
	got := ComputeProgress(&Checklist{Items: []Entry{}})
	if got != (Progress{}) {
		t.Fatalf("expected zero progress; got %+v", got)
	}
	if got.Complete() {
		t.Fatalf("empty checklist must not count as complete")
	}
}

func TestComputeProgress_Cases(t *testing.T) {
	cases := []struct {
		done, total int
		want        int
	}{
		{0, 1, 0},
		{1, 1, 100},
		{1, 2, 50},
		{1, 3, 33},
		{1, 8, 13},
		{5, 7, 71},
	}
	for _, tc := range cases {
		c := &Checklist{}
		for i := 0; i < tc.total; i++ {
			c.Items = append(c.Items, Entry{Done: i < tc.done})
		}
		got := ComputeProgress(c)
		if got.Percentage != tc.want || got.Completed != tc.done || got.Total != tc.total {
			t.Fatalf("%d/%d: expected %d%%; got %+v", tc.done, tc.total, tc.want, got)
		}
	}
}

func TestComputeProgress_AllDoneIsComplete(t *testing.T) {
	c := &Checklist{Items: []Entry{{Done: true}, {Done: true}}}
	if !ComputeProgress(c).Complete() {
		t.Fatalf("expected complete")
	}
}
