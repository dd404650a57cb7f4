package voxel

import (
	"iter"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// cellsBetween yields every cell a segment passes through, in order from
// start, using an Amanatides-Woo grid walk.
func cellsBetween(start, end mgl32.Vec3) iter.Seq[cube.Pos] {
	return func(yield func(cube.Pos) bool) {
		delta := end.Sub(start)
		length := delta.Len()
		if length <= 0 {
			yield(cube.PosFromVec3(start))
			return
		}
		dir := delta.Mul(1 / length)

		var step [3]int
		var tMax, tDelta [3]float32
		for axis := 0; axis < 3; axis++ {
			step[axis] = sign(dir[axis])
			tMax[axis] = distanceToBoundary(start[axis], dir[axis])
			if dir[axis] != 0 {
				tDelta[axis] = float32(step[axis]) / dir[axis]
			}
		}

		cell := cube.PosFromVec3(start)
		for {
			if !yield(cell) {
				return
			}

			axis := 2
			if tMax[0] < tMax[1] && tMax[0] < tMax[2] {
				axis = 0
			} else if tMax[1] < tMax[2] {
				axis = 1
			}
			if tMax[axis] > length {
				return
			}
			cell[axis] += step[axis]
			tMax[axis] += tDelta[axis]
		}
	}
}

// distanceToBoundary is the ray distance from s to the next integer
// boundary along direction component ds.
func distanceToBoundary(s, ds float32) float32 {
	if ds == 0 {
		return math32.MaxFloat32
	}
	if ds < 0 {
		s, ds = -s, -ds
		if math32.Floor(s) == s {
			return 0
		}
	}
	return (1 - (s - math32.Floor(s))) / ds
}

func sign(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// FaceNormal is the outward unit normal of a cell face.
func FaceNormal(face cube.Face) mgl32.Vec3 {
	switch face {
	case cube.FaceDown:
		return mgl32.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl32.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl32.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl32.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl32.Vec3{-1, 0, 0}
	case cube.FaceEast:
		return mgl32.Vec3{1, 0, 0}
	}
	return mgl32.Vec3{}
}
