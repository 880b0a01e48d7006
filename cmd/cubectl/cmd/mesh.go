package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/voxelcore/cube/internal/bcf"
	"github.com/voxelcore/cube/internal/csm"
	"github.com/voxelcore/cube/internal/cube"
	"github.com/voxelcore/cube/internal/mesh"
)

var meshIn []string

var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Extract a mesh from one or more cube files and write it as Wavefront OBJ",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(meshIn) == 0 {
			return fmt.Errorf("cubectl: at least one --in file is required")
		}
		if len(meshIn) == 1 {
			return meshOne(meshIn[0])
		}

		g := new(errgroup.Group)
		for _, path := range meshIn {
			path := path
			g.Go(func() error {
				return meshOne(path)
			})
		}
		return g.Wait()
	},
}

func init() {
	meshCmd.Flags().StringArrayVar(&meshIn, "in", nil, "input cube file (.csm or .bcf); repeatable for --all-style concurrent extraction")
}

func meshOne(path string) error {
	c, err := loadCube(path)
	if err != nil {
		return err
	}

	geo := mesh.Generate(c, mesh.Palette{})
	objPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".obj"
	if err := writeOBJ(objPath, geo); err != nil {
		return fmt.Errorf("cubectl: failed to write mesh for %s: %w", path, err)
	}
	if logger != nil {
		logger.Infow("extracted mesh", "in", path, "out", objPath, "triangles", len(geo.Indices)/3)
	}
	return nil
}

func loadCube(path string) (*cube.Cube, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cubectl: failed to read %s: %w", path, err)
	}
	switch filepath.Ext(path) {
	case ".bcf":
		return bcf.Decode(raw)
	default:
		return csm.Parse(string(raw))
	}
}

func writeOBJ(path string, geo mesh.GeometryData) error {
	var b strings.Builder
	vertexCount := len(geo.Vertices) / 3
	for i := 0; i < vertexCount; i++ {
		fmt.Fprintf(&b, "v %f %f %f\n", geo.Vertices[i*3], geo.Vertices[i*3+1], geo.Vertices[i*3+2])
	}
	for i := 0; i < vertexCount; i++ {
		fmt.Fprintf(&b, "vn %f %f %f\n", geo.Normals[i*3], geo.Normals[i*3+1], geo.Normals[i*3+2])
	}
	for tri := 0; tri < len(geo.Indices)/3; tri++ {
		i0 := geo.Indices[tri*3] + 1
		i1 := geo.Indices[tri*3+1] + 1
		i2 := geo.Indices[tri*3+2] + 1
		fmt.Fprintf(&b, "f %d//%d %d//%d %d//%d\n", i0, i0, i1, i1, i2, i2)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
