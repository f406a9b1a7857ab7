package build

import (
	"runtime"
	"strconv"
	"time"
)

var (
	GoVersion = runtime.Version()
	BuildTime time.Time
)

// SetBuildTime sets build time from unix seconds text
func SetBuildTime(seconds string) error {
	if seconds == "" {
		return nil
	}
	value, err := strconv.Atoi(seconds)
	if err != nil {
		return err
	}
	BuildTime = time.Unix(int64(value), 0)
	return nil
}
