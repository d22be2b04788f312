package kdtree

import (
	"math"
	"sort"

	"github.com/daoo/pathtracer-sub000/geometry"
)

// eventType orders same-position events END, PLANAR, START — the order
// the sweep in findBestSplit depends on to update (N_L, N_R, N_P) before
// scoring the candidate plane at that position.
type eventType int

const (
	eventEnd eventType = iota
	eventPlanar
	eventStart
)

type event struct {
	Plane geometry.Aap
	Type  eventType
}

func eventLess(a, b event) bool {
	if a.Plane.Axis != b.Plane.Axis {
		return a.Plane.Axis < b.Plane.Axis
	}
	if a.Plane.Distance != b.Plane.Distance {
		return a.Plane.Distance < b.Plane.Distance
	}
	return a.Type < b.Type
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func listPerfectSplitsAxis(boundary geometry.Aabb, tri *geometry.Triangle, axis geometry.Axis, out []event) []event {
	boundsMin := geometry.Component(boundary.Min(), axis)
	boundsMax := geometry.Component(boundary.Max(), axis)
	clampedMin := clamp(geometry.Component(tri.Min(), axis), boundsMin, boundsMax)
	clampedMax := clamp(geometry.Component(tri.Max(), axis), boundsMin, boundsMax)

	if clampedMin == clampedMax {
		return append(out, event{Plane: geometry.Aap{Axis: axis, Distance: clampedMin}, Type: eventPlanar})
	}
	out = append(out, event{Plane: geometry.Aap{Axis: axis, Distance: clampedMin}, Type: eventStart})
	out = append(out, event{Plane: geometry.Aap{Axis: axis, Distance: clampedMax}, Type: eventEnd})
	return out
}

// listPerfectSplits enumerates every perfect-split candidate for box: for
// each triangle and axis, a START/END pair clamped to the box, or a
// single PLANAR event when the triangle has no extent on that axis.
func listPerfectSplits(box Box) []event {
	events := make([]event, 0, len(box.Triangles)*6)
	for _, tri := range box.Triangles {
		events = listPerfectSplitsAxis(box.Boundary, tri, geometry.X, events)
		events = listPerfectSplitsAxis(box.Boundary, tri, geometry.Y, events)
		events = listPerfectSplitsAxis(box.Boundary, tri, geometry.Z, events)
	}
	sort.Slice(events, func(i, j int) bool { return eventLess(events[i], events[j]) })
	return events
}

type costSplit struct {
	Plane geometry.Aap
	Cost  Cost
}

// findBestSplit sweeps the sorted event list once per axis, maintaining
// running (N_L, N_R) counts, and returns the globally cheapest plane.
func findBestSplit(params Params, parent Box, events []event) (costSplit, bool) {
	best := costSplit{Cost: Cost{Value: math.MaxFloat32}}
	found := false

	for _, axis := range [3]geometry.Axis{geometry.X, geometry.Y, geometry.Z} {
		nl := 0
		nr := len(parent.Triangles)

		i := 0
		for i < len(events) {
			if events[i].Plane.Axis != axis {
				i++
				continue
			}
			distance := events[i].Plane.Distance

			j := i
			nend := 0
			for j < len(events) && events[j].Plane.Axis == axis && events[j].Plane.Distance == distance && events[j].Type == eventEnd {
				nend++
				j++
			}
			nplanar := 0
			for j < len(events) && events[j].Plane.Axis == axis && events[j].Plane.Distance == distance && events[j].Type == eventPlanar {
				nplanar++
				j++
			}
			nstart := 0
			for j < len(events) && events[j].Plane.Axis == axis && events[j].Plane.Distance == distance && events[j].Type == eventStart {
				nstart++
				j++
			}

			nr -= nend + nplanar

			plane := geometry.Aap{Axis: axis, Distance: distance}
			cost := params.costForPlane(parent.Boundary, plane, nl, nr, nplanar)
			if cost.Value < best.Cost.Value {
				best = costSplit{Plane: plane, Cost: cost}
				found = true
			}

			nl += nstart + nplanar
			i = j
		}
	}

	return best, found
}
