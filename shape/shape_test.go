package shape

import (
	"math"
	"testing"

	"github.com/akmonengine/physics2d/vecmath"
)

func floatEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestNewCircleValidation(t *testing.T) {
	if _, err := NewCircle(0); err == nil {
		t.Error("NewCircle(0) expected error, got nil")
	}
	if _, err := NewCircle(-1); err == nil {
		t.Error("NewCircle(-1) expected error, got nil")
	}
	s, err := NewCircle(2)
	if err != nil {
		t.Fatalf("NewCircle(2): %v", err)
	}
	if s.Kind != Circle || s.Radius != 2 {
		t.Errorf("NewCircle(2) = %+v", s)
	}
}

func TestNewRectangleValidation(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"valid", 2, 3, false},
		{"zero width", 0, 3, true},
		{"negative height", 2, -3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRectangle(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRectangle(%v, %v) err = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
		})
	}
}

func TestNewPolygonRequiresThreeVertices(t *testing.T) {
	if _, err := NewPolygon([]vecmath.Vec2{vecmath.New(0, 0), vecmath.New(1, 0)}); err == nil {
		t.Error("NewPolygon with 2 vertices expected error, got nil")
	}

	verts := []vecmath.Vec2{vecmath.New(0, 0), vecmath.New(1, 0), vecmath.New(0, 1)}
	s, err := NewPolygon(verts)
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	// mutating the caller's slice must not affect the stored shape (deep copy).
	verts[0] = vecmath.New(99, 99)
	if s.Vertices[0] == vecmath.New(99, 99) {
		t.Error("NewPolygon did not defensively copy vertices")
	}
}

func TestLocalAreaUnitSquare(t *testing.T) {
	s, err := NewPolygon([]vecmath.Vec2{
		vecmath.New(0, 0),
		vecmath.New(1, 0),
		vecmath.New(1, 1),
		vecmath.New(0, 1),
	})
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	area := s.LocalArea()
	if !floatEqual(math.Abs(area), 1.0, 1e-9) {
		t.Errorf("LocalArea() = %v, want |area| == 1", area)
	}
}

func TestLocalAreaNonPolygonIsZero(t *testing.T) {
	c, _ := NewCircle(1)
	if c.LocalArea() != 0 {
		t.Errorf("LocalArea() on circle = %v, want 0", c.LocalArea())
	}
}
