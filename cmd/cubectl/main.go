// Command cubectl is the operator surface over the voxel octree core: it
// converts between CSM and BCF, dumps mesh geometry, probes raycasts, and
// previews world-cube frames for offline/headless use.
package main

import (
	"fmt"
	"os"

	"github.com/voxelcore/cube/cmd/cubectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
