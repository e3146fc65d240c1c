package events

import "testing"

func TestMemoryLog_AppendAndStream(t *testing.T) {
	log := NewMemoryLog()

	if err := log.Append("schedule", PlanBuiltEvent, PlanBuilt{Day: 0}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := log.Append("schedule", PlanBuiltEvent, PlanBuilt{Day: 1}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := log.Append("vessel/V1", VesselDischargedEvent, VesselDischarged{VesselID: "V1"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	stream, err := log.Stream("schedule")
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if len(stream) != 2 {
		t.Fatalf("expected 2 events on schedule stream, got %d", len(stream))
	}
	if stream[0].Version != 1 || stream[1].Version != 2 {
		t.Errorf("versions = %d, %d, want 1, 2", stream[0].Version, stream[1].Version)
	}

	all, err := log.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 events total, got %d", len(all))
	}
	if all[2].StreamID != "vessel/V1" {
		t.Errorf("all[2] stream = %s, want vessel/V1", all[2].StreamID)
	}
}

func TestMemoryLog_EmptyStream(t *testing.T) {
	log := NewMemoryLog()

	stream, err := log.Stream("nothing")
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if len(stream) != 0 {
		t.Errorf("expected empty stream, got %d events", len(stream))
	}
}
