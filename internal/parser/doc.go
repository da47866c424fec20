// Package parser classifies a lesson page's block tree into typed sections.
//
// The entry point is Parser.Parse, a single left-to-right scan over root
// blocks with bounded lookahead. At each position the highest-priority
// matching rule wins and consumes its blocks; nothing is re-examined. Blocks
// that match no rule accumulate in a prose buffer that is flushed whenever a
// richer section is emitted or a divider is seen. Reorder re-buckets the
// resulting sections into delivery order.
//
// The package is total over well-typed input: heuristics that fail to match
// degrade to prose, malformed tables contribute nothing, and nothing panics
// or errors. The worst failure mode is under-classification.
package parser
