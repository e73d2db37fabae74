// Package graph provides the mutable graph substrate of the caterpillar
// solver: arena-backed vertices and twin half-edges with intrusive adjacency
// lists, incremental bridge marking with split-off component weights, pendant
// classification records with their derived predicates, component operations,
// deep cloning with handle translation, edge-list I/O, and the budgeted
// Instance/Solution pair the reduction and branching layers operate on.
//
// Handles (VertexID, EdgeID) are opaque indices into the owning graph.
// Deleting elements during adjacency traversal is supported; DeleteEdge
// returns the follower of the removed half-edge in its tail's list.
//
// Two freshness flags gate derived state: BridgesFresh covers the bridge bits,
// incident-bridge counters and the component count, SubtreesFresh covers the
// pendant classification. Any structural change clears both; MarkBridges and
// the classifier in package reduce restore them.
package graph
