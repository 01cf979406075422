package medications

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandRange_Basic(t *testing.T) {
	got, err := ExpandRange(day(2024, 1, 1), day(2024, 1, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("date %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestExpandRange_Properties(t *testing.T) {
	start := day(2024, 2, 25)
	end := day(2024, 3, 5) // cruza el 29 de febrero (bisiesto)

	got, err := ExpandRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if len(got) != days {
		t.Fatalf("expected %d dates, got %d", days, len(got))
	}
	if got[0] != "2024-02-25" || got[len(got)-1] != "2024-03-05" {
		t.Fatalf("wrong endpoints: %s .. %s", got[0], got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		if !(got[i-1] < got[i]) {
			t.Fatalf("not strictly ascending at %d: %s >= %s", i, got[i-1], got[i])
		}
	}
}

func TestExpandRange_SingleDay(t *testing.T) {
	got, err := ExpandRange(day(2024, 1, 1), day(2024, 1, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "2024-01-01" {
		t.Fatalf("expected single date 2024-01-01, got %v", got)
	}
}

func TestExpandRange_StripsTimeOfDay(t *testing.T) {
	// start con hora tardía y end con hora temprana: el rango sigue siendo
	// por día calendario, no por instantes.
	start := time.Date(2024, 1, 1, 23, 50, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 0, 10, 0, 0, time.UTC)

	got, err := ExpandRange(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 dates, got %v", got)
	}
}

func TestExpandRange_InvalidRange(t *testing.T) {
	_, err := ExpandRange(day(2024, 1, 5), day(2024, 1, 1))
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestFindAction_MatchesByDateOnly(t *testing.T) {
	m := Medication{
		Actions: []Action{
			{ID: "a1", Date: "2024-06-01", Status: StatusTaken},
			{ID: "a2", Date: "2024-06-02", Status: StatusMissed},
		},
	}

	a, ok := FindAction(m, "2024-06-02")
	if !ok || a.ID != "a2" {
		t.Fatalf("expected a2, got %+v ok=%v", a, ok)
	}

	if _, ok := FindAction(m, "2024-06-03"); ok {
		t.Fatal("expected no action for 2024-06-03")
	}
}

func TestFindAction_FirstWinsOnCorruptInput(t *testing.T) {
	// Dos acciones para la misma fecha no deberían existir; si el dato
	// viene corrupto, el lector devuelve la primera y no intenta arreglarlo.
	m := Medication{
		Actions: []Action{
			{ID: "first", Date: "2024-06-01", Status: StatusTaken},
			{ID: "second", Date: "2024-06-01", Status: StatusMissed},
		},
	}

	a, ok := FindAction(m, "2024-06-01")
	if !ok || a.ID != "first" {
		t.Fatalf("expected first action to win, got %+v", a)
	}
}

func TestCanRecord(t *testing.T) {
	m := Medication{
		Actions: []Action{{ID: "a1", Date: "2024-06-01", Status: StatusTaken}},
	}

	if CanRecord(m, "2024-06-01") {
		t.Fatal("expected CanRecord false for recorded date")
	}
	if !CanRecord(m, "2024-06-02") {
		t.Fatal("expected CanRecord true for free date")
	}
}
