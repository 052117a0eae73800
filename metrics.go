package lazybones

import (
	"time"
)

type DispatchHook func(phase Phase, receivers int, duration time.Duration, err error)

type InitHook func(duration time.Duration, err error)
