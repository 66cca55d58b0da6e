package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/route"
)

// routeCommand prints connector geometry for two points.
func (c *CLI) routeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Compute connector path data",
	}
	cmd.AddCommand(c.routeStraightCommand())
	cmd.AddCommand(c.routeCurveCommand())
	return cmd
}

func (c *CLI) routeStraightCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "straight x1 y1 x2 y2",
		Short: "Straight segment with a midpoint arrowhead",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoints(args)
			if err != nil {
				return err
			}
			s := route.Straight(p[0], p[1], p[2], p[3])
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "d:        "+s.D())
			fmt.Fprintln(w, "points:   "+s.Points())
			fmt.Fprintln(w, "rotation: "+strconv.FormatFloat(s.Rotation, 'f', -1, 64))
			return nil
		},
	}
}

func (c *CLI) routeCurveCommand() *cobra.Command {
	var r1, r2 string
	var vertical1, vertical2 bool
	var scale float64

	cmd := &cobra.Command{
		Use:   "curve x1 y1 x2 y2",
		Short: "Direction-aware cubic curve",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoints(args)
			if err != nil {
				return err
			}
			conn := route.Connect{
				X1: p[0], Y1: p[1], X2: p[2], Y2: p[3],
				R1: route.ParseRole(r1), R2: route.ParseRole(r2),
				D1: axis(vertical1), D2: axis(vertical2),
			}
			fmt.Fprintln(cmd.OutOrStdout(), route.Curve(conn, scale).D())
			return nil
		},
	}

	cmd.Flags().StringVar(&r1, "r1", string(route.RoleAll), "role of the start point: up, down, left, right, all")
	cmd.Flags().StringVar(&r2, "r2", string(route.RoleAll), "role of the end point: up, down, left, right, all")
	cmd.Flags().BoolVar(&vertical1, "v1", false, "prefer vertical departure at the start point")
	cmd.Flags().BoolVar(&vertical2, "v2", false, "prefer vertical departure at the end point")
	cmd.Flags().Float64Var(&scale, "scale", 1, "zoom factor, scales the minimum clearance")
	return cmd
}

func axis(vertical bool) route.Axis {
	if vertical {
		return route.Vertical
	}
	return route.Horizontal
}

func parsePoints(args []string) ([4]float64, error) {
	var p [4]float64
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return p, errors.Wrap(errors.ErrCodeInvalidInput, err, "coordinate %d", i+1)
		}
		p[i] = v
	}
	return p, nil
}
