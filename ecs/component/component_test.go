package component

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/harvest"
)

func TestCameraRigForward(t *testing.T) {
	cases := []struct {
		name       string
		yaw, pitch float32
		want       mgl32.Vec3
	}{
		{"identity", 0, 0, mgl32.Vec3{0, 0, 1}},
		{"yaw_right", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"pitch_down", 0, 90, mgl32.Vec3{0, -1, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rig := CameraRig{Yaw: c.yaw, Pitch: c.pitch}
			if got := rig.Forward(); got.Sub(c.want).Len() > 1e-5 {
				t.Fatalf("Forward() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestCameraRigSetRotationRoundTrip(t *testing.T) {
	src := CameraRig{Yaw: 35, Pitch: -20}
	var dst CameraRig
	dst.SetRotation(src.Rotation())
	if !mgl32.FloatEqualThreshold(dst.Yaw, 35, 1e-3) || !mgl32.FloatEqualThreshold(dst.Pitch, -20, 1e-3) {
		t.Fatalf("restored yaw=%v pitch=%v", dst.Yaw, dst.Pitch)
	}
}

func TestResourceApply(t *testing.T) {
	cases := []struct {
		name    string
		res     Resource
		kind    harvest.Type
		tier    int
		applied bool
		health  float32
	}{
		{"matching_tool", Resource{Health: 10, Type: harvest.TypeWood, MinTier: 1}, harvest.TypeWood, 1, true, 6},
		{"wrong_type", Resource{Health: 10, Type: harvest.TypeWood}, harvest.TypeStone, 3, false, 10},
		{"tier_too_low", Resource{Health: 10, Type: harvest.TypeStone, MinTier: 2}, harvest.TypeStone, 1, false, 10},
		{"any_type", Resource{Health: 3}, harvest.TypeOre, 0, true, 0},
		{"already_depleted", Resource{Health: 0}, harvest.TypeNone, 0, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := c.res
			if got := res.Apply(4, c.kind, c.tier); got != c.applied {
				t.Fatalf("Apply = %v, want %v", got, c.applied)
			}
			if res.Health != c.health {
				t.Fatalf("health = %v, want %v", res.Health, c.health)
			}
		})
	}
}

func TestColliderCategoryDefault(t *testing.T) {
	if (&Collider{}).Category() != LayerDefault {
		t.Fatal("zero layer should fall back to LayerDefault")
	}
	if (&Collider{Layer: LayerTerrain}).Category() != LayerTerrain {
		t.Fatal("explicit layer should be kept")
	}
}

func TestComponentKindsAreDistinct(t *testing.T) {
	a := NewComponent[Transform]("a").Kind()
	b := NewComponent[Transform]("b").Kind()
	if a.ID() == b.ID() || !a.Valid() || !b.Valid() {
		t.Fatal("each NewComponent call must allocate a fresh kind id")
	}
}
