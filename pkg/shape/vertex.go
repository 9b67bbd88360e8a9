package shape

import "github.com/AureClai/scenecore/pkg/geom"

// UpdateVertices walks the curve list and builds the vertex graph: an
// endpoint within mergeTolerance of an existing vertex merges into it,
// recording which curves start and end there. A vertex with exactly four
// incident curves splits the shape's single enclosing region into two by
// excising the curves between its 2nd and 4th incidence (counting the
// vertex's StartCurves first, then its EndCurves) into their own region; a vertex
// with more than four incident curves is left unsplit and logged.
func (s *Shape) UpdateVertices() {
	s.vertices = nil

	findOrAdd := func(p geom.Point) int {
		for i := range s.vertices {
			if p.Dist(s.vertices[i].Point) < mergeTolerance {
				return i
			}
		}
		s.vertices = append(s.vertices, Vertex{Point: p})
		return len(s.vertices) - 1
	}

	for i, c := range s.Curves {
		startIdx := findOrAdd(c.P0)
		endIdx := findOrAdd(c.P3)
		s.vertices[startIdx].StartCurves = append(s.vertices[startIdx].StartCurves, i)
		s.vertices[endIdx].EndCurves = append(s.vertices[endIdx].EndCurves, i)
	}

	s.regions = s.computeRegions()

	for vi, v := range s.vertices {
		n := len(v.StartCurves) + len(v.EndCurves)
		if n == 4 {
			s.splitRegionAtVertex(vi)
		} else if n > 4 {
			s.log.Warn().Src("shape").Msgf(
				"vertex %d has %d incident curves (>4); leaving region unchanged", vi, n)
		}
	}
}

// computeRegions groups curve indices into subpaths: a new region starts
// whenever the next curve's start point isn't the previous curve's end
// vertex (i.e. the path is discontiguous there).
func (s *Shape) computeRegions() [][]int {
	if len(s.Curves) == 0 {
		return nil
	}
	var regions [][]int
	current := []int{0}
	for i := 1; i < len(s.Curves); i++ {
		prevEnd := s.Curves[i-1].P3
		curStart := s.Curves[i].P0
		if prevEnd.Dist(curStart) < mergeTolerance {
			current = append(current, i)
		} else {
			regions = append(regions, current)
			current = []int{i}
		}
	}
	regions = append(regions, current)
	return regions
}

// splitRegionAtVertex excises the curves between the 2nd and 4th incidence
// of vertex vi (in overall incident-curve order: StartCurves then
// EndCurves) into their own region, per spec §4.C.
func (s *Shape) splitRegionAtVertex(vi int) {
	v := s.vertices[vi]
	incident := append(append([]int{}, v.StartCurves...), v.EndCurves...)
	if len(incident) != 4 {
		return
	}
	lo, hi := incident[1], incident[3]
	if lo > hi {
		lo, hi = hi, lo
	}
	for ri, region := range s.regions {
		if !containsAll(region, incident) {
			continue
		}
		var inner, outer []int
		for _, idx := range region {
			if idx > lo && idx < hi {
				inner = append(inner, idx)
			} else {
				outer = append(outer, idx)
			}
		}
		if len(inner) == 0 {
			return
		}
		newRegions := make([][]int, 0, len(s.regions)+1)
		newRegions = append(newRegions, s.regions[:ri]...)
		newRegions = append(newRegions, outer, inner)
		newRegions = append(newRegions, s.regions[ri+1:]...)
		s.regions = newRegions
		return
	}
}

func containsAll(region []int, want []int) bool {
	set := make(map[int]bool, len(region))
	for _, r := range region {
		set[r] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}
