package intent

import "errors"

// ErrInvalidPattern is returned by NewRouter when the pattern table is
// malformed: a bad expression, a duplicate or reserved name, or a required
// parameter with no matching named capture group.
var ErrInvalidPattern = errors.New("intent: invalid pattern")
