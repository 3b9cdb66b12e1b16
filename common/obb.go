package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

// OBB is an oriented bounding box.
type OBB struct {
	Center mgl64.Vec3
	Half   mgl64.Vec3
	Rot    mgl64.Quat
}

func (b OBB) rot() mgl64.Quat {
	if b.Rot == (mgl64.Quat{}) {
		return mgl64.QuatIdent()
	}
	return b.Rot
}

// Axes returns the box's local X, Y and Z axes in world space.
func (b OBB) Axes() [3]mgl64.Vec3 {
	q := b.rot()
	return [3]mgl64.Vec3{
		q.Rotate(mgl64.Vec3{1, 0, 0}),
		q.Rotate(mgl64.Vec3{0, 1, 0}),
		q.Rotate(mgl64.Vec3{0, 0, 1}),
	}
}

// Corners returns the eight world-space corners. Bit 0 of the index selects
// +X, bit 1 +Y, bit 2 +Z.
func (b OBB) Corners() [8]mgl64.Vec3 {
	axes := b.Axes()
	var out [8]mgl64.Vec3
	for i := range out {
		p := b.Center
		for a := 0; a < 3; a++ {
			sign := -1.0
			if i&(1<<a) != 0 {
				sign = 1
			}
			p = p.Add(axes[a].Mul(sign * b.Half[a]))
		}
		out[i] = p
	}
	return out
}

// Bounds returns the world-space axis-aligned bounds.
func (b OBB) Bounds() (min, max mgl64.Vec3) {
	axes := b.Axes()
	for i := 0; i < 3; i++ {
		extent := 0.0
		for a := 0; a < 3; a++ {
			extent += math.Abs(axes[a][i]) * b.Half[a]
		}
		min[i] = b.Center[i] - extent
		max[i] = b.Center[i] + extent
	}
	return min, max
}

// Contains reports whether p lies inside or on the box.
func (b OBB) Contains(p mgl64.Vec3) bool {
	local := b.rot().Conjugate().Rotate(p.Sub(b.Center))
	for i := 0; i < 3; i++ {
		if math.Abs(local[i]) > b.Half[i]+epsilon {
			return false
		}
	}
	return true
}

// RayHit intersects the ray origin+t*dir (dir need not be unit length) with
// the box for t in [0, maxDist]. It returns the entry distance along the
// normalised direction.
func (b OBB) RayHit(origin, dir mgl64.Vec3, maxDist float64) (float64, bool) {
	length := dir.Len()
	if length < epsilon {
		return 0, false
	}
	dir = dir.Mul(1 / length)

	inv := b.rot().Conjugate()
	o := inv.Rotate(origin.Sub(b.Center))
	d := inv.Rotate(dir)

	tmin, tmax := 0.0, maxDist
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < epsilon {
			if o[i] < -b.Half[i] || o[i] > b.Half[i] {
				return 0, false
			}
			continue
		}
		t1 := (-b.Half[i] - o[i]) / d[i]
		t2 := (b.Half[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// Overlaps runs the separating axis test between two oriented boxes.
// Touching boxes overlap.
func Overlaps(a, b OBB) bool {
	aa := a.Axes()
	ba := b.Axes()
	delta := b.Center.Sub(a.Center)

	test := func(axis mgl64.Vec3) bool {
		if axis.Len() < epsilon {
			return true
		}
		axis = axis.Normalize()
		ra := 0.0
		rb := 0.0
		for i := 0; i < 3; i++ {
			ra += a.Half[i] * math.Abs(aa[i].Dot(axis))
			rb += b.Half[i] * math.Abs(ba[i].Dot(axis))
		}
		return math.Abs(delta.Dot(axis)) <= ra+rb+epsilon
	}

	for i := 0; i < 3; i++ {
		if !test(aa[i]) || !test(ba[i]) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(aa[i].Cross(ba[j])) {
				return false
			}
		}
	}
	return true
}
