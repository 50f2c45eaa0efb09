package main

import (
	"context"
	"fmt"
	"os"
)

// main hands control to the cobra command tree. Wiring lives in serve.go;
// business logic lives in internal packages.
func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
