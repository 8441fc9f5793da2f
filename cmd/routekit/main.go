// Command routekit validates component manifests: field rules,
// cross-reference checks, and strong-dependency cycle detection.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
