package assert

import (
	"fmt"

	"github.com/bloeys/tessera/internal/consts"
)

// T panics with msg (formatted with args) if check is false and
// consts.ModeDebug is set. It is a no-op in release builds.
func T(check bool, msg string, args ...any) {
	if consts.ModeDebug && !check {
		// Sprintf is done inside the assert because putting it as the argument to 'msg' blocks
		// the function from getting fully optimized out on a release build (and slower in general)
		panic("Assert failed: " + fmt.Sprintf(msg, args...))
	}
}
