package application

import "testing"

func TestStatusNext(t *testing.T) {
	cases := []struct {
		from Status
		want Status
		ok   bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusAccepted, StatusOnTheWay, true},
		{StatusOnTheWay, StatusDone, true},
		{StatusDone, "", false},
		{"withdrawn", "", false},
	}

	for _, tc := range cases {
		got, ok := tc.from.Next()
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Next(%s) = (%s, %v), want (%s, %v)", tc.from, got, ok, tc.want, tc.ok)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusAccepted, StatusOnTheWay, StatusDone} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if Status("rejected").Valid() {
		t.Fatalf("rejected is not a status; rejection deletes the row")
	}
}
