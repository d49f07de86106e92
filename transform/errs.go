package transform

import "errors"

// ErrTransform reports invalid rule construction parameters. It is
// never returned during traversal; see Apply.
var ErrTransform = errors.New("bad transform")
