package parser

import (
	"github.com/gnana997/routejump/pkg/util"
)

// getDefaultPoolSize returns the default pool size based on CPU count.
//
// Delegates to util.GetOptimalPoolSize() so the parser pool and the
// locator's extraction workers agree. More workers than parsers would leave
// workers blocked on acquire.
func getDefaultPoolSize() int {
	return util.GetOptimalPoolSize()
}
