package model

import "testing"

func TestRect_Lerp(t *testing.T) {
	from := NewRect(0, 0, 100, 100)
	to := NewRect(200, 100, 300, 400)

	tests := []struct {
		t        float32
		expected Rect
	}{
		{0, from},
		{1, to},
		{-0.5, from},
		{1.5, to},
		{0.5, NewRect(100, 50, 200, 250)},
	}

	for _, test := range tests {
		result := from.Lerp(to, test.t)
		if result != test.expected {
			t.Errorf("Lerp(t=%v) = %+v, expected %+v", test.t, result, test.expected)
		}
	}
}

func TestRect_Contains(t *testing.T) {
	rect := NewRect(10, 20, 100, 50)

	tests := []struct {
		x, y     float32
		expected bool
	}{
		{10, 20, true},
		{60, 45, true},
		{109.9, 69.9, true},
		{110, 70, false},
		{9, 45, false},
		{60, 19, false},
	}

	for _, test := range tests {
		result := rect.Contains(test.x, test.y)
		if result != test.expected {
			t.Errorf("Contains(%v, %v) = %v, expected %v", test.x, test.y, result, test.expected)
		}
	}
}

func TestRect_ApproxEqual(t *testing.T) {
	base := NewRect(10, 20, 100, 50)

	if !base.ApproxEqual(NewRect(10.4, 19.6, 100.2, 50.1), 0.5) {
		t.Error("Expected rects within tolerance to be approximately equal")
	}

	if base.ApproxEqual(NewRect(12, 20, 100, 50), 0.5) {
		t.Error("Expected rects outside tolerance to differ")
	}
}

func TestRect_Derived(t *testing.T) {
	rect := NewRect(10, 20, 100, 50)

	if rect.Right() != 110 {
		t.Errorf("Right() = %v, expected 110", rect.Right())
	}

	if rect.Bottom() != 70 {
		t.Errorf("Bottom() = %v, expected 70", rect.Bottom())
	}

	if rect.CenterX() != 60 {
		t.Errorf("CenterX() = %v, expected 60", rect.CenterX())
	}

	if rect.CenterY() != 45 {
		t.Errorf("CenterY() = %v, expected 45", rect.CenterY())
	}

	moved := rect.Offset(-5, 15)
	if moved != NewRect(5, 35, 100, 50) {
		t.Errorf("Offset(-5, 15) = %+v", moved)
	}

	if !rect.Offset(0, 0).ApproxEqual(rect, 0) {
		t.Error("Offset(0, 0) should preserve the rect")
	}

	if rect.IsZero() {
		t.Error("Non-empty rect reported IsZero")
	}

	if !(Rect{}).IsZero() {
		t.Error("Zero rect not reported IsZero")
	}
}
