package extrude

import "fmt"

// collinearEps is the cross-product magnitude under which three outline
// points are treated as collinear.
const collinearEps = 1e-7

// Triangulate splits a counterclockwise outline into triangles by ear
// clipping. Indices refer to outline points; each triangle keeps the
// outline's winding.
func Triangulate(o Outline) ([]uint32, error) {
	n := len(o)
	if n < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}
	tris := make([]uint32, 0, (n-2)*3)

	for len(remaining) > 3 {
		if i := findEar(o, remaining); i >= 0 {
			prev, cur, next := neighbours(remaining, i)
			tris = append(tris, uint32(prev), uint32(cur), uint32(next))
			remaining = append(remaining[:i], remaining[i+1:]...)
			continue
		}
		// Collinear runs never form ears; drop one point and carry on.
		if i := findCollinear(o, remaining); i >= 0 {
			remaining = append(remaining[:i], remaining[i+1:]...)
			continue
		}
		return nil, fmt.Errorf("%w: no ear among %d remaining points", ErrSelfIntersecting, len(remaining))
	}

	a, b, c := remaining[0], remaining[1], remaining[2]
	if turn(o, a, b, c) > collinearEps {
		tris = append(tris, uint32(a), uint32(b), uint32(c))
	}
	return tris, nil
}

func neighbours(remaining []int, i int) (prev, cur, next int) {
	n := len(remaining)
	return remaining[(i+n-1)%n], remaining[i], remaining[(i+1)%n]
}

// turn returns the cross product of (b-a) and (c-b).
func turn(o Outline, a, b, c int) float32 {
	return o[b].Sub(o[a]).Cross(o[c].Sub(o[b]))
}

func findEar(o Outline, remaining []int) int {
	for i := range remaining {
		prev, cur, next := neighbours(remaining, i)
		if turn(o, prev, cur, next) <= collinearEps {
			continue
		}
		if !containsOther(o, remaining, prev, cur, next) {
			return i
		}
	}
	return -1
}

func findCollinear(o Outline, remaining []int) int {
	for i := range remaining {
		prev, cur, next := neighbours(remaining, i)
		if abs32(turn(o, prev, cur, next)) <= collinearEps {
			return i
		}
	}
	return -1
}

// containsOther reports whether any remaining point other than the triangle's
// corners lies inside or on the triangle (a, b, c).
func containsOther(o Outline, remaining []int, a, b, c int) bool {
	pa, pb, pc := o[a], o[b], o[c]
	for _, idx := range remaining {
		if idx == a || idx == b || idx == c {
			continue
		}
		p := o[idx]
		if p == pa || p == pb || p == pc {
			continue
		}
		d1 := pb.Sub(pa).Cross(p.Sub(pa))
		d2 := pc.Sub(pb).Cross(p.Sub(pb))
		d3 := pa.Sub(pc).Cross(p.Sub(pc))
		if d1 >= 0 && d2 >= 0 && d3 >= 0 {
			return true
		}
	}
	return false
}
