// Package reduce implements the reduction machinery of the solver: the
// bottom-up pendant classifier, the tree reduction rules TRR1-6, the path
// reduction rules PRR1-8 over degree-2 paths of the cyclic core, and the
// companion rules (split rule, double-P2 Y-graphification, Y-lookahead).
//
// Reductions operate destructively on a graph.Instance, charging the budget
// for every committed deletion and recording the deleted edges - or
// placeholders, where a rule commits to a count without naming the edge - in
// a graph.Solution. Rules keep the pendant classification incrementally
// up to date as they rewrite the graph, so a full reclassification is only
// needed after outside edits.
package reduce
