//go:build zscenedebug

package scene

// debug enables graph consistency checks that are too slow for
// regular builds.
const debug = true
