package metrics

import "testing"

func TestCollectorSnapshot(t *testing.T) {
	c := NewCollector()
	c.IncRequests()
	c.IncRequests()
	c.IncFailures()
	c.IncNoResponse()

	got := c.Snapshot()
	want := Snapshot{Requests: 2, Failures: 1, NoResponse: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.IncRequests()
	c.IncFailures()
	c.IncNoResponse()
	if got := c.Snapshot(); got != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", got)
	}
}
