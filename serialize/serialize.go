package serialize

import (
	"github.com/pkg/errors"

	"github.com/akmonengine/physics2d"
	"github.com/akmonengine/physics2d/body"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/vecmath"
)

// Serialize encodes a world's persisted state — latestBodyId plus the
// ordered list of body records — as the canonical nested list literal.
func Serialize(worldID uint64) (string, error) {
	ids, err := physics2d.BodyIDs(worldID)
	if err != nil {
		return "", err
	}
	latest, err := physics2d.LatestBodyID(worldID)
	if err != nil {
		return "", err
	}

	records := make([]Value, len(ids))
	for i, id := range ids {
		record, err := encodeBody(worldID, id)
		if err != nil {
			return "", err
		}
		records[i] = record
	}

	root := []Value{float64(latest), records}
	return Encode(root), nil
}

func encodeBody(worldID, id uint64) (Value, error) {
	bodyType, err := physics2d.GetBodyType(worldID, id)
	if err != nil {
		return nil, err
	}
	pos, err := physics2d.GetPosition(worldID, id)
	if err != nil {
		return nil, err
	}
	vel, err := physics2d.GetVelocity(worldID, id)
	if err != nil {
		return nil, err
	}
	rotation, err := physics2d.GetRotation(worldID, id)
	if err != nil {
		return nil, err
	}
	angularVelocity, err := physics2d.GetAngularVelocity(worldID, id)
	if err != nil {
		return nil, err
	}
	materialID, err := physics2d.GetMaterial(worldID, id)
	if err != nil {
		return nil, err
	}
	s, err := physics2d.GetShape(worldID, id)
	if err != nil {
		return nil, err
	}

	return []Value{
		float64(id),
		float64(bodyType),
		pos[0], pos[1],
		vel[0], vel[1],
		rotation, angularVelocity,
		float64(materialID),
		float64(s.Kind),
		encodeShapeData(s),
	}, nil
}

func encodeShapeData(s shape.Shape) Value {
	switch s.Kind {
	case shape.Circle:
		return s.Radius
	case shape.Rectangle:
		return []Value{s.Width, s.Height}
	case shape.Polygon:
		points := make([]Value, len(s.Vertices))
		for i, v := range s.Vertices {
			points[i] = []Value{v[0], v[1]}
		}
		return points
	default: // None
		return 0.0
	}
}

// Deserialize parses the canonical textual encoding and rebuilds a world
// from it, returning the new world's id.
func Deserialize(text string) (uint64, error) {
	root, err := Decode(text)
	if err != nil {
		return 0, errors.Wrap(err, "decoding world snapshot")
	}
	top, ok := root.([]Value)
	if !ok || len(top) != 2 {
		return 0, errors.New("world snapshot must be {latestBodyId, records}")
	}
	latest, ok := top[0].(float64)
	if !ok {
		return 0, errors.New("latestBodyId must be a number")
	}
	records, ok := top[1].([]Value)
	if !ok {
		return 0, errors.New("records must be a list")
	}

	worldID := physics2d.CreateWorld()
	for _, r := range records {
		if err := restoreBody(worldID, r); err != nil {
			physics2d.Destroy(worldID)
			return 0, err
		}
	}
	if err := physics2d.SetLatestBodyID(worldID, uint64(latest)); err != nil {
		physics2d.Destroy(worldID)
		return 0, err
	}
	return worldID, nil
}

func restoreBody(worldID uint64, v Value) error {
	fields, ok := v.([]Value)
	if !ok || len(fields) != 11 {
		return errors.New("body record must have 11 fields")
	}

	id, ok0 := fields[0].(float64)
	bodyTypeNum, ok1 := fields[1].(float64)
	px, ok2 := fields[2].(float64)
	py, ok3 := fields[3].(float64)
	vx, ok4 := fields[4].(float64)
	vy, ok5 := fields[5].(float64)
	rotation, ok6 := fields[6].(float64)
	angularVelocity, ok7 := fields[7].(float64)
	materialID, ok8 := fields[8].(float64)
	shapeTag, ok9 := fields[9].(float64)
	if !(ok0 && ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8 && ok9) {
		return errors.New("body record fields 0-9 must all be numbers")
	}

	s, err := decodeShapeData(shape.Kind(int(shapeTag)), fields[10])
	if err != nil {
		return err
	}

	if err := physics2d.RestoreBody(worldID, uint64(id), body.Type(int(bodyTypeNum))); err != nil {
		return err
	}
	if err := physics2d.SetPosition(worldID, uint64(id), vecmath.New(px, py)); err != nil {
		return err
	}
	if err := physics2d.SetVelocity(worldID, uint64(id), vecmath.New(vx, vy)); err != nil {
		return err
	}
	if err := physics2d.SetRotation(worldID, uint64(id), rotation); err != nil {
		return err
	}
	if err := physics2d.SetAngularVelocity(worldID, uint64(id), angularVelocity); err != nil {
		return err
	}
	if err := physics2d.SetMaterial(worldID, uint64(id), int(materialID)); err != nil {
		return err
	}
	if s.Kind != shape.None {
		if err := physics2d.SetShape(worldID, uint64(id), s); err != nil {
			return err
		}
	}
	return nil
}

func decodeShapeData(kind shape.Kind, data Value) (shape.Shape, error) {
	switch kind {
	case shape.None:
		return shape.Shape{}, nil
	case shape.Circle:
		r, ok := data.(float64)
		if !ok {
			return shape.Shape{}, errors.New("circle shapeData must be a number")
		}
		return shape.NewCircle(r)
	case shape.Rectangle:
		list, ok := data.([]Value)
		if !ok || len(list) != 2 {
			return shape.Shape{}, errors.New("rectangle shapeData must be {w,h}")
		}
		w, ok1 := list[0].(float64)
		h, ok2 := list[1].(float64)
		if !ok1 || !ok2 {
			return shape.Shape{}, errors.New("rectangle shapeData must contain numbers")
		}
		return shape.NewRectangle(w, h)
	case shape.Polygon:
		list, ok := data.([]Value)
		if !ok {
			return shape.Shape{}, errors.New("polygon shapeData must be a list of points")
		}
		vertices := make([]vecmath.Vec2, len(list))
		for i, item := range list {
			pt, ok := item.([]Value)
			if !ok || len(pt) != 2 {
				return shape.Shape{}, errors.New("polygon point must be {x,y}")
			}
			x, ok1 := pt[0].(float64)
			y, ok2 := pt[1].(float64)
			if !ok1 || !ok2 {
				return shape.Shape{}, errors.New("polygon point must contain numbers")
			}
			vertices[i] = vecmath.New(x, y)
		}
		return shape.NewPolygon(vertices)
	default:
		return shape.Shape{}, errors.Errorf("unknown shape tag %d", int(kind))
	}
}
