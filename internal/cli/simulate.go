package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/webforce/webforce/pkg/layout"
	"github.com/webforce/webforce/pkg/topology"
)

// simulateCommand creates the simulate command for headless layout runs.
func (c *CLI) simulateCommand() *cobra.Command {
	var (
		configPath string
		output     string
		steps      int
		width      float64
		height     float64
		viewHeight float64
		overrides  configOverrides
	)

	cmd := &cobra.Command{
		Use:   "simulate [events.json]",
		Short: "Compute a layout from a recorded topology stream",
		Long: `Compute a layout from a recorded topology stream.

The simulate command reads a JSON array of {"id", "parent"} events, feeds
them into the layout engine, advances the simulation a fixed number of
frames and writes the final display-space coordinates as JSON.

Physics constants come from webforce.toml (or --config) and can be
tuned per run; see the config file documentation for the full set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadEngineConfig(configPath)
			if err != nil {
				return err
			}
			overrides.apply(cmd, &cfg)
			return c.runSimulate(cmd.Context(), args[0], cfg, output, steps, width, height, viewHeight)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ./webforce.toml if present)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVarP(&steps, "steps", "n", 500, "number of frames to simulate")
	cmd.Flags().Float64Var(&width, "width", 800, "viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", 600, "viewport height in pixels")
	cmd.Flags().Float64Var(&viewHeight, "view-height", 15, "vertical extent of the viewport in simulation units")
	overrides.register(cmd)

	return cmd
}

// configOverrides holds per-run physics flags layered over the config
// file. Only flags the user actually set override the file values.
type configOverrides struct {
	mass           float64
	charge         float64
	springConstant float64
	restLength     float64
	dampingRatio   float64
	attract        bool
	seed           int64
}

func (o *configOverrides) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&o.mass, "mass", 0, "node mass (overrides config file)")
	cmd.Flags().Float64Var(&o.charge, "charge", 0, "node charge (overrides config file)")
	cmd.Flags().Float64Var(&o.springConstant, "spring-constant", 0, "spring constant (overrides config file)")
	cmd.Flags().Float64Var(&o.restLength, "rest-length", 0, "spring rest length (overrides config file)")
	cmd.Flags().Float64Var(&o.dampingRatio, "damping-ratio", 0, "spring damping ratio (overrides config file)")
	cmd.Flags().BoolVar(&o.attract, "attract", false, "invert the charge force so nodes attract")
	cmd.Flags().Int64Var(&o.seed, "seed", 0, "tie-break random seed (0 = time-based)")
}

func (o *configOverrides) apply(cmd *cobra.Command, cfg *layout.Config) {
	f := cmd.Flags()
	if f.Changed("mass") {
		cfg.NodeMass = o.mass
	}
	if f.Changed("charge") {
		cfg.NodeCharge = o.charge
	}
	if f.Changed("spring-constant") {
		cfg.SpringConstant = o.springConstant
	}
	if f.Changed("rest-length") {
		cfg.RestLength = o.restLength
	}
	if f.Changed("damping-ratio") {
		cfg.DampingRatio = o.dampingRatio
	}
	if f.Changed("attract") {
		cfg.Attract = o.attract
	}
	if f.Changed("seed") {
		cfg.Seed = o.seed
	}
}

// runSimulate loads the event stream, grows and settles the layout, and
// writes the resulting coordinates.
func (c *CLI) runSimulate(ctx context.Context, input string, cfg layout.Config, output string, steps int, width, height, viewHeight float64) error {
	logger := loggerFromContext(ctx)

	events, err := topology.ReadEventsFile(input)
	if err != nil {
		return fmt.Errorf("load events %s: %w", input, err)
	}
	logger.Debug("loaded topology", "events", len(events))

	engine := layout.New(cfg)
	engine.SetDisplayScale(width, height, viewHeight)
	for _, ev := range events {
		engine.AddNode(ev.ID, ev.Parent)
	}

	prog := newProgress(logger)
	dt := cfg.FramePeriod.Seconds()
	for i := 0; i < steps; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		engine.Step(dt)
	}
	prog.done(fmt.Sprintf("Simulated %d frames for %d nodes", steps, engine.Len()))

	coords := engine.AllCoordinates()

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(coords); err != nil {
		return fmt.Errorf("encode coordinates: %w", err)
	}
	if output != "" {
		logger.Info("wrote layout", "path", output, "nodes", len(coords))
	}
	return nil
}
