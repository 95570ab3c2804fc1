package core

import (
	"errors"
)

var (
	ErrUnknownStage       = errors.New("unknown pipeline stage")
	ErrUnknownAccess      = errors.New("unknown access flag")
	ErrUnsupportedAccess  = errors.New("access not supported by any stage in the mask")
	ErrBrokenChain        = errors.New("operations do not form a dependency chain")
	ErrUnknownSemaphore   = errors.New("semaphore has no device handle")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrUnknownLogLevel    = errors.New("unknown log level")
	ErrWatcherClosed      = errors.New("config watcher already closed")
	ErrSwapchainOutOfDate = errors.New("swapchain out of date, recreate before presenting")
	ErrUnknown            = errors.New("unknown")
)
