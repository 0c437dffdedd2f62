// Command butterfly subdivides triangle meshes read from OBJ or PLY files.
//
// Usage:
//
//	butterfly subdivide mesh.obj -o fine.obj --iterations 2 --wireframe fine.png
//	butterfly info mesh.ply
//
// Settings can also come from a YAML file given with --config; flags
// override it.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
