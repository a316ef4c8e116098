package assert

import (
	"github.com/bloeys/nshade/logging"
)

// T panics with the formatted message if check is false.
// Used for programmer errors that should never happen at runtime.
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	logging.ErrLog.Panicf("Assert failed: "+msg, args...)
}
