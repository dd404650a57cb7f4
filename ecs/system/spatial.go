package system

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/voxel"
)

// RaycastHit is the closest surface struck by a probe.
type RaycastHit struct {
	Entity   ecs.Entity
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Raycast probes from origin along dir for up to maxDist against collider
// boxes and voxel terrain whose layer is in mask. A zero mask matches every
// layer. ignore is skipped, typically the probing entity itself.
func Raycast(w *ecs.World, origin, dir mgl32.Vec3, maxDist float32, mask uint32, ignore ecs.Entity) (RaycastHit, bool) {
	if w == nil || maxDist <= 0 || dir.LenSqr() == 0 {
		return RaycastHit{}, false
	}
	mask = effectiveMask(mask)
	end := origin.Add(dir.Normalize().Mul(maxDist))

	var best RaycastHit
	found := false
	consider := func(hit RaycastHit) {
		if !found || hit.Distance < best.Distance {
			best, found = hit, true
		}
	}

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		if e == ignore || col.Category()&mask == 0 {
			return
		}
		for _, box := range col.Boxes {
			result, ok := trace.BBoxIntercept(box.Translate(t.Position), origin, end)
			if !ok {
				continue
			}
			point := result.Position()
			consider(RaycastHit{
				Entity:   e,
				Point:    point,
				Normal:   voxel.FaceNormal(result.Face()),
				Distance: point.Sub(origin).Len(),
			})
		}
	})

	if mask&component.LayerTerrain != 0 {
		ecs.ForEach(w, component.VoxelTerrainComponent.Kind(), func(e ecs.Entity, terrain *component.VoxelTerrain) {
			if e == ignore || terrain.Chunk == nil {
				return
			}
			if hit, ok := terrain.Chunk.Raycast(origin, end); ok {
				consider(RaycastHit{Entity: e, Point: hit.Point, Normal: hit.Normal, Distance: hit.Distance})
			}
		})
	}

	return best, found
}

// OverlapSphere returns the entities with a collider box or terrain chunk
// within radius of center. An entity is listed once per overlapping box.
func OverlapSphere(w *ecs.World, center mgl32.Vec3, radius float32, mask uint32) []ecs.Entity {
	if w == nil || radius < 0 {
		return nil
	}
	mask = effectiveMask(mask)

	var out []ecs.Entity
	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		if col.Category()&mask == 0 {
			return
		}
		for _, box := range col.Boxes {
			if boxPointDistance(box.Translate(t.Position), center) <= radius {
				out = append(out, e)
			}
		}
	})

	if mask&component.LayerTerrain != 0 {
		ecs.ForEach(w, component.VoxelTerrainComponent.Kind(), func(e ecs.Entity, terrain *component.VoxelTerrain) {
			if terrain.Chunk != nil && boxPointDistance(terrain.Chunk.Bounds(), center) <= radius {
				out = append(out, e)
			}
		})
	}
	return out
}

func effectiveMask(mask uint32) uint32 {
	if mask == 0 {
		return component.LayerAll
	}
	return mask
}

// boxPointDistance is the distance from v to the closest point of a, zero
// when v is inside.
func boxPointDistance(a cube.BBox, v mgl32.Vec3) float32 {
	x := math32.Max(a.Min().X()-v.X(), math32.Max(0, v.X()-a.Max().X()))
	y := math32.Max(a.Min().Y()-v.Y(), math32.Max(0, v.Y()-a.Max().Y()))
	z := math32.Max(a.Min().Z()-v.Z(), math32.Max(0, v.Z()-a.Max().Z()))
	return math32.Sqrt(x*x + y*y + z*z)
}
