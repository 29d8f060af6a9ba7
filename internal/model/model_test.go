package model

import "testing"

func TestEventTypeValid(t *testing.T) {
	for _, et := range EventTypes {
		if !et.Valid() {
			t.Errorf("%s should be valid", et)
		}
	}
	if EventType("success").Valid() {
		t.Error("event types are case sensitive")
	}
}

func TestStatsCounters(t *testing.T) {
	var s ProfileStats
	for i, et := range EventTypes {
		for j := 0; j <= i; j++ {
			s.Increment(et)
		}
	}
	s.Increment("UNKNOWN")

	for i, et := range EventTypes {
		if got := s.Count(et); got != i+1 {
			t.Errorf("%s: expected %d, got %d", et, i+1, got)
		}
	}
	if s.TypeTotal() != 28 {
		t.Errorf("expected 28, got %d", s.TypeTotal())
	}
	if s.Count("UNKNOWN") != 0 {
		t.Error("unknown type should count 0")
	}
}

func TestNextDay(t *testing.T) {
	if got := (Profile{}).NextDay(); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := (Profile{CurrentDay: 41}).NextDay(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}
