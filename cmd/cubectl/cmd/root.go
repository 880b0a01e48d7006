package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "cubectl",
	Short: "Operator CLI for the voxel octree core",
	Long: `cubectl converts between the CSM and BCF cube formats, dumps mesh
geometry, probes raycasts against a cube, and previews world-cube frames.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		z, err := zap.NewProduction()
		if err != nil {
			return err
		}
		logger = z.Sugar()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		return nil
	},
}

// Execute runs the cubectl root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(meshCmd)
	rootCmd.AddCommand(raycastCmd)
	rootCmd.AddCommand(worldCmd)
}
