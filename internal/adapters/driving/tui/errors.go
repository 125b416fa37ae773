package tui

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("tui: answer service is required")

// ErrMissingSession is returned when no session ID is given.
var ErrMissingSession = errors.New("tui: session id is required")
