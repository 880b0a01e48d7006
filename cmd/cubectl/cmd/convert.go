package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxelcore/cube/internal/bcf"
	"github.com/voxelcore/cube/internal/csm"
	"github.com/voxelcore/cube/internal/cube"
)

var (
	convertIn   string
	convertOut  string
	convertFrom string
	convertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a Cube between the CSM text format and the BCF binary format",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(convertIn)
		if err != nil {
			return fmt.Errorf("cubectl: failed to read input: %w", err)
		}

		var c *cube.Cube
		switch convertFrom {
		case "csm":
			c, err = csm.Parse(string(raw))
		case "bcf":
			c, err = bcf.Decode(raw)
		default:
			return fmt.Errorf("cubectl: unknown --from format %q", convertFrom)
		}
		if err != nil {
			return fmt.Errorf("cubectl: failed to parse input: %w", err)
		}

		var out []byte
		switch convertTo {
		case "csm":
			out = []byte(csm.Print(c))
		case "bcf":
			out = bcf.Encode(c)
		default:
			return fmt.Errorf("cubectl: unknown --to format %q", convertTo)
		}

		if err := os.WriteFile(convertOut, out, 0o644); err != nil {
			return fmt.Errorf("cubectl: failed to write output: %w", err)
		}
		if logger != nil {
			logger.Infow("converted cube", "from", convertFrom, "to", convertTo, "in", convertIn, "out", convertOut)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertIn, "in", "", "input file path")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output file path")
	convertCmd.Flags().StringVar(&convertFrom, "from", "csm", "input format: csm|bcf")
	convertCmd.Flags().StringVar(&convertTo, "to", "bcf", "output format: csm|bcf")
	_ = convertCmd.MarkFlagRequired("in")
	_ = convertCmd.MarkFlagRequired("out")
}
