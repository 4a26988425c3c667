package application

import "time"

// nowMillis is swapped out in tests.
var nowMillis = func() int64 {
	return time.Now().UTC().UnixMilli()
}
