// Package seqdiff computes edit scripts between two character sequences.
//
// Representation: a sequence is a []string of grapheme clusters (see uni.Graphemes). An edit script is an ordered []Operation. Each Operation either inserts Element at Offset
// or removes the element at Offset. Operations are replayed strictly in list order, and each Offset refers to the sequence as it stands after all prior operations.
//
// Invariants (all strategies):
//   - Apply(old, Diff(old, new, s)) == new
//   - Diff(s, s, strategy) is empty
//   - Removals come first, in descending offset; insertions follow, in ascending offset. Removing from the tail first keeps the remaining removal offsets valid without
//     recomputation, and insertions address the post-removal sequence.
//
// Strategies differ only in the shape of the script:
//   - StrategyDefault pairs a removal with an insertion wherever the two sequences differ at the same index. Untouched characters keep their handles.
//   - StrategyGrouped replaces everything from the first mismatch to the end.
//   - StrategySystem uses a generic LCS-style diff (diffmatchpatch). Its tie-breaking on repeated characters is whatever that library does.
//
// Getting a script:
//
//	ops := seqdiff.DiffText("20.00", "21.00", seqdiff.StrategyDefault)
//	// [Remove(1,"0") Insert(1,"1")]
package seqdiff
