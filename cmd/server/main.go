// Command server runs the MicroCourses API: a course publishing and
// learning-progress service with token authentication, role-gated routes,
// fixed-window rate limiting, and idempotent mutation replay.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app, err := newApplication()
	if err != nil {
		return err
	}
	defer app.close()

	return app.serve()
}
