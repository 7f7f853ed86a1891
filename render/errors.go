package render

import "errors"

// ErrNaNCell is wrapped with the offending cell index when a cell's corner
// samples contain a non-finite value discovered mid-extraction (section 7,
// category (b): data pathologies detected mid-run). In normal use this
// cannot trigger, since field.New validates the whole field up front; it
// exists as a defense-in-depth check for Field values assembled by hand.
var ErrNaNCell = errors.New("tessel: non-finite value in cell")

// ErrIO is wrapped with the underlying OS/writer error by the serializers
// (section 7, category (c)).
var ErrIO = errors.New("tessel: serialization failed")
