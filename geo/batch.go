package geo

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hyperball/embedding"
	"github.com/hupe1980/hyperball/gyro"
)

// Projected is the result of projecting one embedding, with per-element
// diagnostics attached. Outputs are associated with inputs by ID and batch
// position; no ordering guarantee beyond position is provided.
type Projected struct {
	ID         uint64
	Coords     Geographic
	ClusterID  uint32
	Confidence float32
	// OriginDistance is the hyperbolic distance from the ball origin.
	OriginDistance float64
}

// Batch projects every embedding in the batch. Each element's projection is
// independent, so the work is spread over GOMAXPROCS workers; results land
// at the same position as their input. Embeddings must be two-dimensional.
func (p *Projector) Batch(embs []embedding.Embedding) ([]Projected, error) {
	out := make([]Projected, len(embs))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, e := range embs {
		g.Go(func() error {
			proj, err := p.project(e)
			if err != nil {
				return err
			}
			out[i] = proj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// BatchClusters projects only the embeddings assigned to the given clusters,
// selected via the batch's bitmap index. The index must have been built over
// embs.
func (p *Projector) BatchClusters(embs []embedding.Embedding, idx *embedding.Index, clusters ...uint32) ([]Projected, error) {
	selected := idx.Select(clusters...)
	out := make([]Projected, 0, selected.GetCardinality())

	positions := selected.ToArray()
	results := make([]Projected, len(positions))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, pos := range positions {
		g.Go(func() error {
			proj, err := p.project(embs[pos])
			if err != nil {
				return err
			}
			results[i] = proj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return append(out, results...), nil
}

func (p *Projector) project(e embedding.Embedding) (Projected, error) {
	coords, err := p.PoincareToGeographic(e.Vector)
	if err != nil {
		return Projected{}, err
	}
	origin, err := p.space.Distance(gyro.Zero(e.Vector.Dim()), e.Vector)
	if err != nil {
		return Projected{}, err
	}
	return Projected{
		ID:             e.ID,
		Coords:         coords,
		ClusterID:      e.Meta.ClusterID,
		Confidence:     e.Meta.Confidence,
		OriginDistance: origin,
	}, nil
}
