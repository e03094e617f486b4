package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[float64])
	d1, v1 := New(2025, 07, 01), 101.0
	d2, v2 := New(2024, 07, 01), 99.0

	// Append two values in reverse order and check the series stays sorted.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Fatalf("Len() = %v want 2", h.Len())
	}

	if h.days[0] != d2 || h.days[1] != d1 {
		t.Errorf("days = %v, %v want %v, %v", h.days[0], h.days[1], d2, d1)
	}
	if h.values[0] != v2 || h.values[1] != v1 {
		t.Errorf("values = %v, %v want %v, %v", h.values[0], h.values[1], v2, v1)
	}
}

func TestAppendOverwritesSameDate(t *testing.T) {
	h := new(History[float64])
	d := New(2025, 06, 30)
	h.Append(d, 100)
	h.Append(d, 105)

	if h.Len() != 1 {
		t.Fatalf("Len() = %v want 1 after same-date append", h.Len())
	}
	if v, _ := h.Get(d); v != 105 {
		t.Errorf("Get() = %v want 105 (last write wins)", v)
	}
}

func TestTruncate(t *testing.T) {
	h := new(History[float64])
	for i := 0; i < 5; i++ {
		h.Append(New(2025, 01, 1+i), float64(i))
	}
	h.Truncate(3)
	if h.Len() != 3 {
		t.Fatalf("Truncate(3).Len() = %v want 3", h.Len())
	}
	// Oldest entries are dropped first.
	day, value := h.Latest()
	if day != New(2025, 01, 5) || value != 4 {
		t.Errorf("Latest() = %v, %v want 2025-01-05, 4", day, value)
	}
	if _, ok := h.Get(New(2025, 01, 1)); ok {
		t.Errorf("Get(oldest) should be gone after Truncate")
	}
}

func TestValueAsOf(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2025, 01, 31), 100)
	h.Append(New(2025, 03, 31), 110)

	testCases := []struct {
		name     string
		day      Date
		expect   float64
		expectOk bool
	}{
		{"Exact hit", New(2025, 01, 31), 100, true},
		{"Between points", New(2025, 02, 15), 100, true},
		{"After last", New(2025, 12, 31), 110, true},
		{"Before first", New(2024, 01, 01), 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := h.ValueAsOf(tc.day)
			if ok != tc.expectOk || got != tc.expect {
				t.Errorf("ValueAsOf(%v) = %v, %v want %v, %v", tc.day, got, ok, tc.expect, tc.expectOk)
			}
		})
	}
}
