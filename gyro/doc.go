// Package gyro implements gyrovector arithmetic on the Poincaré ball model
// of hyperbolic space.
//
// All operations are pure functions over immutable Vector values: nothing in
// this package holds mutable state, so any number of calls may run
// concurrently as long as callers do not mutate a Vector while a computation
// reads it.
//
// Möbius addition is a gyrogroup operation, not a vector-space operation.
// Only the identity law (u⊕0 = u) and the inverse law ((−u)⊕u = 0) hold
// universally; do not assume associativity or commutativity when composing
// calls.
//
// Numerical policy: inputs at or past the unit-ball boundary are repaired,
// never rejected. Every artanh evaluation clamps its argument away from ±1,
// and ProjectToBall rescales out-of-ball vectors back inside the boundary
// margin. Floating-point drift from long operation chains is legitimate and
// must not make the engine unusable.
package gyro
