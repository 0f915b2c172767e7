package embedding

import (
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Index is a secondary index over a batch of embeddings, mapping cluster
// assignments to positions in the batch via roaring bitmaps. It is built
// once per batch and read-only afterwards, so concurrent readers need no
// locking.
type Index struct {
	clusters map[uint32]*roaring.Bitmap
	size     int
}

// NewIndex builds a cluster index over the given batch. Positions in the
// bitmaps refer to indexes into embs.
func NewIndex(embs []Embedding) *Index {
	idx := &Index{
		clusters: make(map[uint32]*roaring.Bitmap),
		size:     len(embs),
	}
	for i, e := range embs {
		rb, ok := idx.clusters[e.Meta.ClusterID]
		if !ok {
			rb = roaring.New()
			idx.clusters[e.Meta.ClusterID] = rb
		}
		rb.Add(uint32(i))
	}
	return idx
}

// Size returns the number of embeddings the index was built over.
func (x *Index) Size() int {
	return x.size
}

// Clusters returns the distinct cluster IDs present in the batch, sorted.
func (x *Index) Clusters() []uint32 {
	out := make([]uint32, 0, len(x.clusters))
	for id := range x.clusters {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Cardinality returns the number of embeddings assigned to the cluster.
func (x *Index) Cardinality(cluster uint32) uint64 {
	rb, ok := x.clusters[cluster]
	if !ok {
		return 0
	}
	return rb.GetCardinality()
}

// Select returns the union bitmap of batch positions for the given
// clusters. Unknown cluster IDs contribute nothing. The returned bitmap is
// owned by the caller.
func (x *Index) Select(clusters ...uint32) *roaring.Bitmap {
	out := roaring.New()
	for _, id := range clusters {
		if rb, ok := x.clusters[id]; ok {
			out.Or(rb)
		}
	}
	return out
}

// Positions iterates the batch positions for a single cluster in ascending
// order.
func (x *Index) Positions(cluster uint32) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		rb, ok := x.clusters[cluster]
		if !ok {
			return
		}
		it := rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
