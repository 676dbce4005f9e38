package serialize

import (
	"testing"

	"github.com/akmonengine/physics2d"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/vecmath"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	v := []Value{1.0, []Value{2.0, 3.5}, []Value{}}
	text := Encode(v)

	decoded, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	text2 := Encode(decoded)
	if text != text2 {
		t.Errorf("round trip mismatch: %q != %q", text, text2)
	}
}

func TestDecodeRejectsTrailingData(t *testing.T) {
	if _, err := Decode("{1,2}garbage"); err == nil {
		t.Error("expected error for trailing data")
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	worldID := physics2d.CreateWorld()
	defer physics2d.Destroy(worldID)

	staticID, err := physics2d.CreateStaticBody(worldID)
	if err != nil {
		t.Fatalf("CreateStaticBody: %v", err)
	}
	rect, _ := shape.NewRectangle(10, 1)
	physics2d.SetShape(worldID, staticID, rect)
	physics2d.SetPosition(worldID, staticID, vecmath.New(0, 0))

	dynID, err := physics2d.CreateDynamicBody(worldID)
	if err != nil {
		t.Fatalf("CreateDynamicBody: %v", err)
	}
	circle, _ := shape.NewCircle(0.5)
	physics2d.SetShape(worldID, dynID, circle)
	physics2d.SetPosition(worldID, dynID, vecmath.New(0, 2))
	physics2d.SetVelocity(worldID, dynID, vecmath.New(1, -1))

	text, err := Serialize(worldID)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	restoredID, err := Deserialize(text)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	defer physics2d.Destroy(restoredID)

	text2, err := Serialize(restoredID)
	if err != nil {
		t.Fatalf("re-Serialize: %v", err)
	}
	if text != text2 {
		t.Errorf("round trip mismatch:\n%q\n%q", text, text2)
	}

	ids, err := physics2d.BodyIDs(restoredID)
	if err != nil {
		t.Fatalf("BodyIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d bodies, want 2", len(ids))
	}

	pos, err := physics2d.GetPosition(restoredID, dynID)
	if err != nil {
		t.Fatalf("GetPosition: %v", err)
	}
	if pos != vecmath.New(0, 2) {
		t.Errorf("restored dynamic body position = %v, want (0,2)", pos)
	}
}

func TestSerializePreservesLatestBodyIDAcrossDestroy(t *testing.T) {
	worldID := physics2d.CreateWorld()
	defer physics2d.Destroy(worldID)

	id1, _ := physics2d.CreateDynamicBody(worldID)
	_, _ = physics2d.CreateDynamicBody(worldID)
	physics2d.DestroyBody(worldID, id1)

	text, err := Serialize(worldID)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	restoredID, err := Deserialize(text)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	defer physics2d.Destroy(restoredID)

	latest, err := physics2d.LatestBodyID(restoredID)
	if err != nil {
		t.Fatalf("LatestBodyID: %v", err)
	}
	wantLatest, _ := physics2d.LatestBodyID(worldID)
	if latest != wantLatest {
		t.Errorf("LatestBodyID = %v, want %v", latest, wantLatest)
	}
}
