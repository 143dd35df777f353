package charger

import (
	"testing"

	"chargecode-go/bus"
)

func TestTopics(t *testing.T) {
	want := bus.T("hal", "cap", "power", "charger", "main", "control", "enable")
	got := TopicControl("main", "enable")
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if a := Address("main"); a.Kind != "charger" || a.Domain != "power" {
		t.Fatalf("address %+v", a)
	}
}
