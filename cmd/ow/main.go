// Command ow is the ONE WAY interpreter: it runs a script given as its
// argument, or starts an interactive session with ow repl.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
