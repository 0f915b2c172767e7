// Package embedding defines the strongly-typed embedding record consumed by
// the projector and the payload codec, plus a bitmap index over cluster
// assignments for filtered batch operations.
package embedding

import (
	"time"

	"github.com/hupe1980/hyperball/gyro"
)

// Metadata carries the semantic annotations attached to an embedding.
type Metadata struct {
	// Label is the human-readable name of the embedded entity.
	Label string
	// ClusterID is the cluster assignment produced by the training pipeline.
	ClusterID uint32
	// Confidence is the pipeline's confidence in the embedding, in [0,1].
	Confidence float32
	// Timestamp records when the embedding was produced.
	Timestamp time.Time
}

// Embedding is a single hyperbolic embedding record. The engine consumes
// it but does not own it: derived geographic coordinates are computed on
// demand and never cached here.
type Embedding struct {
	ID     uint64
	Vector gyro.Vector
	Meta   Metadata
}
