package domain

import "testing"

func TestPriorityRank_Ordering(t *testing.T) {
	ranked := []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Rank() <= ranked[i-1].Rank() {
			t.Fatalf("expected %s to rank above %s", ranked[i], ranked[i-1])
		}
	}
	if TaskPriority("bogus").Rank() != 0 {
		t.Fatalf("unknown priority should rank 0")
	}
}

func TestTaskStatus_Valid(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusInProgress, StatusCompleted} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if TaskStatus("done").Valid() {
		t.Fatalf("'done' should not be valid")
	}
}

func TestTaskPriority_Valid(t *testing.T) {
	for _, p := range []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		if !p.Valid() {
			t.Fatalf("%s should be valid", p)
		}
	}
	if TaskPriority("critical").Valid() {
		t.Fatalf("'critical' should not be valid")
	}
}

func TestValidAssignee(t *testing.T) {
	cases := map[string]bool{
		"":                true, // unassigned
		"ana@x.com":       true,
		"a.b@example.org": true,
		"not-an-email":    false,
		"missing@domain":  false,
	}
	for in, want := range cases {
		if got := ValidAssignee(in); got != want {
			t.Fatalf("ValidAssignee(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ana@X.Com "); got != "ana@x.com" {
		t.Fatalf("unexpected normalization: %q", got)
	}
}
