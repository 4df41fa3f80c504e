/*
Package persist implements immutable, persistent associative and sequential
containers.

A persistent container's "mutating" operations return a new logical value
that shares most of its internal structure with the value it was derived
from; the original value is left observationally unchanged. Two container
types are provided:

  - Map[K, V], a persistent map from arbitrary hashable keys to values,
    backed by a hash array-mapped trie (HAMT) once it outgrows a small
    linear-probe representation.
  - List[V], a persistent indexed sequence, backed by a 32-way branching
    radix trie with a small tail buffer for O(1) amortized appends.

Both types are ordinary Go values: copying a Map or a List copies only the
small fixed-size header that describes it, never the tree itself. There is no
hidden mutable state, so two goroutines may hold and read the same value
with no coordination. See internal/hamt and internal/vector for the trie
machinery that makes this cheap.
*/
package persist
