package matches

import (
	"reflect"
	"testing"
)

func TestStatusValues(t *testing.T) {
	expected := map[Status]string{
		StatusNotStarted: "not_started",
		StatusLive:       "live",
		StatusEnded:      "ended",
	}

	for status, want := range expected {
		if string(status) != want {
			t.Fatalf("expected %q got %q", want, status)
		}
	}
}

func TestMatchJSONTags(t *testing.T) {
	matchType := reflect.TypeOf(Match{})
	fields := map[string]string{
		"HomeTeam":  "homeTeam",
		"AwayTeam":  "awayTeam",
		"StartTime": "startTime",
		"Status":    "status",
		"Score":     "score",
		"LeagueKey": "leagueKey",
	}

	for name, tag := range fields {
		field, ok := matchType.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if got := field.Tag.Get("json"); got != tag {
			t.Fatalf("field %s expected tag %q got %q", name, tag, got)
		}
	}
}

func TestMatchLifecycleHelpers(t *testing.T) {
	cases := []struct {
		name       string
		match      Match
		ended      bool
		live       bool
		notStarted bool
	}{
		{"scheduled", Match{Status: StatusNotStarted}, false, false, true},
		{"live", Match{Status: StatusLive, Period: PeriodFirstHalf}, false, true, false},
		{"ended status", Match{Status: StatusEnded}, true, false, false},
		{"ended period while live", Match{Status: StatusLive, Period: PeriodEnded}, true, false, false},
	}

	for _, tc := range cases {
		if got := tc.match.Ended(); got != tc.ended {
			t.Fatalf("%s: expected ended=%v, got %v", tc.name, tc.ended, got)
		}
		if got := tc.match.Live(); got != tc.live {
			t.Fatalf("%s: expected live=%v, got %v", tc.name, tc.live, got)
		}
		if got := tc.match.NotStarted(); got != tc.notStarted {
			t.Fatalf("%s: expected notStarted=%v, got %v", tc.name, tc.notStarted, got)
		}
	}
}

func TestFindMatchesByTeams(t *testing.T) {
	list := []Match{
		{ID: "a", HomeTeam: "Arsenal", AwayTeam: "Chelsea"},
		{ID: "b", HomeTeam: "Chelsea", AwayTeam: "Arsenal"},
	}

	got, ok := Find(list, "Chelsea", "Arsenal")
	if !ok || got.ID != "b" {
		t.Fatalf("expected reverse fixture, got %+v ok=%v", got, ok)
	}
	if _, ok := Find(list, "Arsenal", "Spurs"); ok {
		t.Fatalf("expected no match")
	}
}

func TestParseStatusAndPeriod(t *testing.T) {
	if ParseStatus("closed") != StatusEnded {
		t.Fatalf("expected closed to map to ended")
	}
	if ParseStatus("LIVE") != StatusLive {
		t.Fatalf("expected live status")
	}
	if ParseStatus("postponed") != StatusNotStarted {
		t.Fatalf("expected unknown to map to not started")
	}
	if ParsePeriod("halftime") != PeriodHalftime {
		t.Fatalf("expected halftime period")
	}
	if ParsePeriod("penalties") != "" {
		t.Fatalf("expected unknown period to be empty")
	}
}
