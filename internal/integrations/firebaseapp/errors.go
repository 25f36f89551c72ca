package firebaseapp

import "errors"

var ErrInitApp = errors.New("firebaseapp: failed to initialize firebase app")
