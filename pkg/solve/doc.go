// Package solve implements the branch-and-reduce search for the minimum
// caterpillar-forest edge-deletion problem on top of package reduce: the
// branching rules (triangles, 2-claws, token vertices, degree-2 paths and the
// B-bridge split), branching-number computation, the FES and star-packing
// lower bounds with the greedy upper bound, the recursive driver with
// connected-component decomposition and budget pruning, and the independent
// solution verifier.
//
// The driver returns an optimal solution: sibling branches share knowledge
// through shrinking budgets and through permanent edge marks, which commit
// "this edge is kept" after a size-1 deletion branch was explored.
package solve
