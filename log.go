package persist

import "github.com/benjamin-bader/persist/internal/hamt"

// Logger is where this package reports the one event worth a diagnostic
// line: two distinct keys whose full stored hash actually collided (see
// internal/hamt's collision node). It is silent by default; point
// Logger.SetOutput at os.Stderr to see it.
var Logger = hamt.Logger
