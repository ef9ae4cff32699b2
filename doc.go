// Package choreo builds pose-transition graphs from motion capture and
// resequences clips along a chaotic trajectory.
//
// Pipeline:
//
//	motion        - skeletons, frames, clips and YAML corpora
//	cspace        - per-bone quantized pose graphs and parent/child Bayes tables
//	core          - the weighted directed multigraph underneath every bone graph
//	chaos         - RK4 / adaptive RK4 and the Lorenz system
//	shuffle       - trajectory keying and frame reordering
//	search        - best-first, depth-limited and parallel graph search
//	combinatoric  - the lazy joint graph over all bones
//	interp        - bridging discontinuities with synthesized frames
//	store         - badger-backed persistence of graphs and trajectories
//	dot           - Graphviz output
//	pipeline      - end-to-end runs driven by a YAML Config
//
// The choreo command (cmd/choreo) exposes build, shuffle, integrate and dot.
package choreo
