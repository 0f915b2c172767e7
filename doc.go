// Package hyperball provides geometric computation over the Poincaré-ball
// model of hyperbolic space.
//
// The engine has three parts:
//
//   - gyrovector arithmetic: Möbius addition and scalar multiplication,
//     hyperbolic distance, exponential/logarithmic maps, parallel transport
//     and boundary repair (package gyro, with the Lorentz hyperboloid model
//     in package lorentz for numerically stable boundary handling)
//   - a stereographic projector between ball coordinates and planar
//     longitude/latitude, with batch and diagnostic variants (package geo)
//   - a compact binary wire format for distributing embedding batches with
//     zero-copy decoding (package payload)
//
// # Quick Start
//
//	engine := hyperball.New()
//
//	// Gyrovector arithmetic
//	sum, _ := engine.MobiusAdd(gyro.Vector{0.1, 0.2}, gyro.Vector{0.3, -0.1})
//	d, _ := engine.Distance(gyro.Vector{0.3, 0.4}, gyro.Vector{0, 0})
//
//	// Map embeddings onto a planar map
//	g, _ := engine.PoincareToGeographic(gyro.Vector{0.5, 0})
//	back := engine.GeographicToPoincare(g)
//
//	// Ship a batch across a process boundary
//	p, _ := payload.New(-1.0, 2, floats, payload.Metadata{Epoch: 3})
//	buf, _ := payload.Encode(p)
//	decoded, _ := payload.Decode(buf) // zero-copy view over buf
//
// All computation is pure: the engine owns no mutable state, so any number
// of calls may run concurrently over independent inputs. There is no
// cancellation concept in this core; callers needing it wrap calls at a
// higher layer.
package hyperball
