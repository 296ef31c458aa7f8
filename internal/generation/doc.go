// Package generation assembles the instruction payloads handed to the
// external inference workers. It owns the per-domain prompt builders,
// the fixed README templates and the deterministic README renderer used
// by the synchronous path. The queue core treats everything produced
// here as an opaque blob.
package generation
