package harvest

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// VoxelSurfaceOffset pulls the excavation point into the struck surface so
// the point does not sit exactly on a cell boundary.
const VoxelSurfaceOffset float32 = 0.01

// TargetID identifies a world entity. It is the entity handle including its
// generation, so an id captured before the entity was destroyed no longer
// resolves.
type TargetID uint64

// Hit is the primary hit of a swing's forward probe.
type Hit struct {
	Target TargetID
	Point  mgl32.Vec3
	// Normal is the outward surface normal at Point.
	Normal mgl32.Vec3
}

// SwingHit is the snapshot a swing hands to the resolver. A nil Hit means
// the swing missed.
type SwingHit struct {
	Hit  *Hit
	Tool Tool
}

// Harvestable receives tiered, typed damage.
type Harvestable interface {
	TakeDamage(amount float32, kind Type, tier int)
}

// VoxelHarvestable excavates terrain around a point.
type VoxelHarvestable interface {
	Harvest(point mgl32.Vec3, radius float32, kind Type, tier int)
}

// Capabilities is the set of harvest handles an entity exposes. Either
// field may be nil.
type Capabilities struct {
	Harvestable Harvestable
	Voxel       VoxelHarvestable
}

// World is the resolver's view of the scene.
type World interface {
	// Capabilities reports false when id no longer refers to a live entity.
	Capabilities(id TargetID) (Capabilities, bool)
	// OverlapSphere may return the same id more than once.
	OverlapSphere(center mgl32.Vec3, radius float32, mask uint32) []TargetID
}

// Result summarises what a resolve touched.
type Result struct {
	Damaged   []TargetID
	Excavated bool
	// Faults counts capability calls that panicked and were recovered.
	Faults int
}

type Resolver struct {
	world World
	log   *zap.Logger
}

func NewResolver(world World, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{world: world, log: log}
}

// Resolve applies one swing. Misses, missing capabilities, stale targets and
// empty overlaps are all silent no-ops.
func (r *Resolver) Resolve(swing SwingHit) Result {
	var res Result
	if r == nil || r.world == nil || swing.Hit == nil {
		return res
	}
	hit := *swing.Hit
	tool := swing.Tool

	if tool.AreaMode() {
		seen := make(map[TargetID]struct{})
		for _, id := range r.world.OverlapSphere(hit.Point, tool.HitRadius, tool.Mask) {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			r.damage(id, tool, &res)
		}
	} else {
		r.damage(hit.Target, tool, &res)
	}

	// Voxel excavation only ever targets the struck entity.
	if tool.HarvestVoxel {
		r.excavate(hit, tool, &res)
	}

	r.log.Debug("harvest resolved",
		zap.Uint64("target", uint64(hit.Target)),
		zap.Bool("area", tool.AreaMode()),
		zap.Int("damaged", len(res.Damaged)),
		zap.Bool("excavated", res.Excavated),
	)
	return res
}

func (r *Resolver) damage(id TargetID, tool Tool, res *Result) {
	caps, ok := r.world.Capabilities(id)
	if !ok || caps.Harvestable == nil {
		return
	}
	if r.guard(id, "take damage", func() { caps.Harvestable.TakeDamage(tool.Damage, tool.Type, tool.Tier) }) {
		res.Damaged = append(res.Damaged, id)
		return
	}
	res.Faults++
}

func (r *Resolver) excavate(hit Hit, tool Tool, res *Result) {
	caps, ok := r.world.Capabilities(hit.Target)
	if !ok || caps.Voxel == nil {
		return
	}
	point := hit.Point.Sub(hit.Normal.Mul(VoxelSurfaceOffset))
	if r.guard(hit.Target, "harvest voxel", func() { caps.Voxel.Harvest(point, tool.HitRadius, tool.Type, tool.Tier) }) {
		res.Excavated = true
		return
	}
	res.Faults++
}

// guard runs fn and keeps a panicking capability from escaping the resolver.
func (r *Resolver) guard(id TargetID, op string, fn func()) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warn("harvest capability panicked",
				zap.String("op", op),
				zap.Uint64("target", uint64(id)),
				zap.String("panic", fmt.Sprint(rec)),
			)
			ok = false
		}
	}()
	fn()
	return true
}
