package cmd

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"github.com/voxelcore/cube/internal/raycast"
)

var (
	raycastIn       string
	raycastOrigin   []float32
	raycastDir      []float32
	raycastMaxDepth uint32
)

var raycastCmd = &cobra.Command{
	Use:   "raycast",
	Short: "Cast a ray against a cube file and print the hit, if any",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(raycastOrigin) != 3 || len(raycastDir) != 3 {
			return fmt.Errorf("cubectl: --origin and --dir each require exactly 3 components")
		}

		c, err := loadCube(raycastIn)
		if err != nil {
			return err
		}

		origin := mgl32.Vec3{raycastOrigin[0], raycastOrigin[1], raycastOrigin[2]}
		dir := mgl32.Vec3{raycastDir[0], raycastDir[1], raycastDir[2]}

		hit, ok := raycast.Cast(c, origin, dir, raycastMaxDepth)
		if !ok {
			fmt.Println("miss")
			return nil
		}
		fmt.Printf("hit coord=%+v point=%v normal=%v\n", hit.Coord, hit.Point, hit.Normal)
		return nil
	},
}

func init() {
	raycastCmd.Flags().StringVar(&raycastIn, "in", "", "input cube file (.csm or .bcf)")
	raycastCmd.Flags().Float32SliceVar(&raycastOrigin, "origin", nil, "ray origin, e.g. 0,0.5,0.5")
	raycastCmd.Flags().Float32SliceVar(&raycastDir, "dir", nil, "ray direction, e.g. 1,0,0")
	raycastCmd.Flags().Uint32Var(&raycastMaxDepth, "max-depth", 8, "maximum octree depth to descend")
	_ = raycastCmd.MarkFlagRequired("in")
	_ = raycastCmd.MarkFlagRequired("origin")
	_ = raycastCmd.MarkFlagRequired("dir")
}
