package voxel

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/harvest"
)

// ChunkSize is the edge length of a chunk in cells.
const ChunkSize = 16

// Chunk is a ChunkSize³ block of cells anchored at a world-space origin.
// Cell p occupies the unit box [p, p+1).
type Chunk struct {
	origin cube.Pos
	cells  [ChunkSize * ChunkSize * ChunkSize]Material
	yield  map[Material]int
}

func NewChunk(origin cube.Pos) *Chunk {
	return &Chunk{origin: origin, yield: make(map[Material]int)}
}

func (c *Chunk) Origin() cube.Pos {
	return c.origin
}

// Bounds is the world-space box covering every cell.
func (c *Chunk) Bounds() cube.BBox {
	lo := c.origin.Vec3()
	return cube.Box(lo.X(), lo.Y(), lo.Z(), lo.X()+ChunkSize, lo.Y()+ChunkSize, lo.Z()+ChunkSize)
}

func (c *Chunk) index(p cube.Pos) (int, bool) {
	x, y, z := p[0]-c.origin[0], p[1]-c.origin[1], p[2]-c.origin[2]
	if x < 0 || y < 0 || z < 0 || x >= ChunkSize || y >= ChunkSize || z >= ChunkSize {
		return 0, false
	}
	return x + z*ChunkSize + y*ChunkSize*ChunkSize, true
}

// At returns the material at world cell p. Cells outside the chunk are air.
func (c *Chunk) At(p cube.Pos) Material {
	i, ok := c.index(p)
	if !ok {
		return Air
	}
	return c.cells[i]
}

// Set writes a cell. It reports false when p is outside the chunk.
func (c *Chunk) Set(p cube.Pos, m Material) bool {
	i, ok := c.index(p)
	if !ok {
		return false
	}
	c.cells[i] = m
	return true
}

// Fill sets every cell in the inclusive range [from, to] that lies inside
// the chunk.
func (c *Chunk) Fill(from, to cube.Pos, m Material) {
	for y := min(from[1], to[1]); y <= max(from[1], to[1]); y++ {
		for z := min(from[2], to[2]); z <= max(from[2], to[2]); z++ {
			for x := min(from[0], to[0]); x <= max(from[0], to[0]); x++ {
				c.Set(cube.Pos{x, y, z}, m)
			}
		}
	}
}

// FillLayer sets a full horizontal layer at world height y.
func (c *Chunk) FillLayer(y int, m Material) {
	c.Fill(
		cube.Pos{c.origin[0], y, c.origin[2]},
		cube.Pos{c.origin[0] + ChunkSize - 1, y, c.origin[2] + ChunkSize - 1},
		m,
	)
}

// Harvest removes the cells the tool can dig around point. See Excavate.
func (c *Chunk) Harvest(point mgl32.Vec3, radius float32, kind harvest.Type, tier int) {
	c.Excavate(point, radius, kind, tier)
}

// Excavate removes the cell containing point and, when radius > 0, every
// cell whose centre lies within radius of point. Cells the tool cannot dig
// are left in place. It returns the number of cells removed.
func (c *Chunk) Excavate(point mgl32.Vec3, radius float32, kind harvest.Type, tier int) int {
	removed := 0
	if c.dig(cube.PosFromVec3(point), kind, tier) {
		removed++
	}
	if radius <= 0 {
		return removed
	}

	from := cube.PosFromVec3(point.Sub(mgl32.Vec3{radius, radius, radius}))
	to := cube.PosFromVec3(point.Add(mgl32.Vec3{radius, radius, radius}))
	rr := radius * radius
	for y := from[1]; y <= to[1]; y++ {
		for z := from[2]; z <= to[2]; z++ {
			for x := from[0]; x <= to[0]; x++ {
				p := cube.Pos{x, y, z}
				if centre(p).Sub(point).LenSqr() > rr {
					continue
				}
				if c.dig(p, kind, tier) {
					removed++
				}
			}
		}
	}
	return removed
}

func (c *Chunk) dig(p cube.Pos, kind harvest.Type, tier int) bool {
	i, ok := c.index(p)
	if !ok {
		return false
	}
	m := c.cells[i]
	if !m.Harvestable(kind, tier) {
		return false
	}
	c.cells[i] = Air
	if c.yield == nil {
		c.yield = make(map[Material]int)
	}
	c.yield[m]++
	return true
}

// Yield returns how many cells of each material have been dug out.
func (c *Chunk) Yield() map[Material]int {
	out := make(map[Material]int, len(c.yield))
	for m, n := range c.yield {
		out[m] = n
	}
	return out
}

// Hit is the first solid cell struck by a ray.
type Hit struct {
	Cell     cube.Pos
	Material Material
	Point    mgl32.Vec3
	// Normal is the outward normal of the face the ray entered through.
	Normal   mgl32.Vec3
	Distance float32
}

// Raycast walks the cells between start and end and returns the first
// solid one.
func (c *Chunk) Raycast(start, end mgl32.Vec3) (Hit, bool) {
	for p := range cellsBetween(start, end) {
		m := c.At(p)
		if !m.Solid() {
			continue
		}
		lo := p.Vec3()
		box := cube.Box(lo.X(), lo.Y(), lo.Z(), lo.X()+1, lo.Y()+1, lo.Z()+1)
		result, ok := trace.BBoxIntercept(box, start, end)
		if !ok {
			continue
		}
		point := result.Position()
		return Hit{
			Cell:     p,
			Material: m,
			Point:    point,
			Normal:   FaceNormal(result.Face()),
			Distance: point.Sub(start).Len(),
		}, true
	}
	return Hit{}, false
}

func centre(p cube.Pos) mgl32.Vec3 {
	return p.Vec3().Add(mgl32.Vec3{0.5, 0.5, 0.5})
}

// SurfaceHeight returns the y of the top face of the highest solid cell in
// the column containing x, z, or the chunk floor when the column is empty.
func (c *Chunk) SurfaceHeight(x, z float32) float32 {
	cx, cz := int(math32.Floor(x)), int(math32.Floor(z))
	for y := c.origin[1] + ChunkSize - 1; y >= c.origin[1]; y-- {
		if c.At(cube.Pos{cx, y, cz}).Solid() {
			return float32(y + 1)
		}
	}
	return float32(c.origin[1])
}
