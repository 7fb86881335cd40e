package core

import (
	"sort"

	"github.com/elektrokombinacija/orca-pedestrians/internal/geom"
)

// AgentNeighborhood holds, for one focal agent, the up-to-MaxNeighbors
// nearest other agents ordered by ascending centre-to-centre distance.
type AgentNeighborhood struct {
	Count      int
	Positions  [MaxNeighbors]geom.Vec2
	Velocities [MaxNeighbors]geom.Vec2
	Radii      [MaxNeighbors]float64
	Distances  [MaxNeighbors]float64
}

type candidate struct {
	index    int
	position geom.Vec2
	velocity geom.Vec2
	radius   float64
	distance float64
}

// ComputeNeighborhoods returns one AgentNeighborhood per agent in s, each
// built by brute-force ranking over every other agent. Ties in distance are
// broken by source index (a stable sort preserves this, since candidates
// are generated in index order).
func ComputeNeighborhoods(s *AgentStore) []AgentNeighborhood {
	n := s.Len()
	result := make([]AgentNeighborhood, n)

	candidates := make([]candidate, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			candidates[j] = candidate{
				index:    j,
				position: s.Positions[j],
				velocity: s.Velocities[j],
				radius:   s.Radii[j],
				distance: s.Positions[j].Sub(s.Positions[i]).Norm(),
			}
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].distance < candidates[b].distance
		})

		nb := &result[i]
		// candidates[0] is the focal agent itself (distance 0); skip it.
		count := n - 1
		if count > MaxNeighbors {
			count = MaxNeighbors
		}
		if count < 0 {
			count = 0
		}
		nb.Count = count
		for k := 0; k < count; k++ {
			c := candidates[k+1]
			nb.Positions[k] = c.position
			nb.Velocities[k] = c.velocity
			nb.Radii[k] = c.radius
			nb.Distances[k] = c.distance
		}
	}
	return result
}
