package view

import "testing"

func TestScaleNotifiesChanges(t *testing.T) {
	var got []float64
	s := NewScale(func(level float64) { got = append(got, level) })
	if s.ZoomLevel() != 0 {
		t.Fatalf("initial level = %v", s.ZoomLevel())
	}
	s.SetZoomLevel(s.ZoomLevel() + 1)
	s.SetZoomLevel(s.ZoomLevel() - 2)
	if s.ZoomLevel() != -1 {
		t.Errorf("level = %v, want -1", s.ZoomLevel())
	}
	if len(got) != 2 || got[0] != 1 || got[1] != -1 {
		t.Errorf("callbacks = %v", got)
	}
}
