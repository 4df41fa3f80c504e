package persist

import (
	"github.com/benjamin-bader/persist/internal/keyhash"
)

// Hasher defines a hash function and an equivalence relation over values of
// type K. It is this module's equality/hashing contract: two keys that
// Equal reports equal MUST produce the same Hash. Callers whose key type
// needs equality other than == supply their own Hasher through
// NewMapWithHasher; everyone else uses ComparableHasher via the NewMap
// default. Map's key type must be comparable either way.
type Hasher[K any] = keyhash.Hasher[K]

// ComparableHasher is the default Hasher for any comparable key type. Its
// Equal method is consistent with the built-in == operator.
type ComparableHasher[K comparable] = keyhash.ComparableHasher[K]
