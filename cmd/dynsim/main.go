package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/halvard-os/rkcore/internal/analysis"
	"github.com/halvard-os/rkcore/internal/config"
	"github.com/halvard-os/rkcore/internal/control"
	"github.com/halvard-os/rkcore/internal/dynamo"
	"github.com/halvard-os/rkcore/internal/expo"
	"github.com/halvard-os/rkcore/internal/export"
	"github.com/halvard-os/rkcore/internal/gui"
	"github.com/halvard-os/rkcore/internal/integrators"
	"github.com/halvard-os/rkcore/internal/metrics"
	"github.com/halvard-os/rkcore/internal/optim"
	"github.com/halvard-os/rkcore/internal/physics"
	"github.com/halvard-os/rkcore/internal/storage"
	"github.com/halvard-os/rkcore/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	theta      float64
	omega      float64
	pos        float64
	vel        float64
	seed       int64
	integrator string
	controller string
	kp         float64
	ki         float64
	kd         float64
	target     float64
	numBodies  int
	// New model parameters
	theta2  float64 // double pendulum second angle
	omega2  float64 // double pendulum second angular velocity
	thrustL float64 // drone left thrust
	thrustR float64 // drone right thrust
	// Phase plot axes
	xAxis int
	yAxis int
	// Config file
	configFile string
	// Frame rate for live view
	frameRate int
	// Preset name
	preset string
	// SVG export path for the phase plot
	svgPath string
)

// main is the entry point for the dynsim CLI; it registers commands and flags, launches the interactive GUI when no subcommand is provided, and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "dynsim",
		Short: "physics and control simulation lab",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to interactive GUI mode when no command given
			gui.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynsim", "data directory")

	expoCmd := &cobra.Command{
		Use:   "expo",
		Short: "run the exponential-Euler demo against a fixed linear system",
		RunE:  runExpo,
	}
	expoCmd.Flags().Float64Var(&dt, "dt", 0.05, "timestep")
	expoCmd.Flags().Float64Var(&duration, "time", 1.0, "duration")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search a pendulum's damping coefficient against average energy",
		RunE:  runTune,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	phaseCmd.Flags().StringVar(&svgPath, "svg", "", "also render the phase trajectory to this SVG file")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "legacy terminal TUI mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	compareCmd.Flags().Float64Var(&theta, "theta", 0.5, "initial angle")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [model]",
		Short: "run simulation with high-performance GUI",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			model := "fluid"
			if len(args) > 0 {
				model = args[0]
			}
			gui.Run(model)
		},
	}

	rootCmd.AddCommand(expoCmd, tuneCmd, listCmd, plotCmd, exportCmd, analyzeCmd, phaseCmd, exportCSVCmd, tuiCmd, compareCmd, presetsCmd, exportJSONCmd, guiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runExpo drives the exponential-Euler integrator against a fixed
// rotation-generator linear system so its output can be checked by eye
// against the analytic solution (a unit circle traced at unit angular
// rate) without needing a registry of pluggable models.
func runExpo(cmd *cobra.Command, args []string) error {
	lin := expo.NewLinear([][]float64{{0, 1}, {-1, 0}})
	integ := expo.ExponentialEuler{}

	x := dynamo.State{1, 0}
	steps := int(duration / dt)

	fmt.Println("exponential-Euler demo: dx/dt = [[0,1],[-1,0]] x")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tX0\tX1")
	fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\n", 0.0, x[0], x[1])

	start := time.Now()
	for i := 0; i < steps; i++ {
		t := float64(i) * dt
		x = integ.Step(lin, x, nil, t, dt)
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\n", t+dt, x[0], x[1])
	}
	elapsed := time.Since(start)

	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d steps in %v\n", steps, elapsed)
	return nil
}

// runTune grid-searches a damped pendulum's damping coefficient, picking
// the candidate that minimizes average mechanical energy over a fixed
// run. It exists to give internal/optim a real caller: the grid it
// sweeps and the metric it minimizes are deliberately small enough to
// finish instantly from the CLI.
func runTune(cmd *cobra.Command, args []string) error {
	g := optim.NewGridSearch([]string{"damping"}, [][]float64{{0.05, 0.2, 0.5, 1.0, 2.0}})

	build := func(params map[string]float64) (*dynamo.Simulator, dynamo.State, dynamo.Config, error) {
		p := physics.NewPendulum()
		if err := p.SetParam("damping", params["damping"]); err != nil {
			return nil, nil, dynamo.Config{}, err
		}

		sim := dynamo.New(p, integrators.NewRK4(), control.NewNone(0))
		sim.AddMetric(metrics.NewEnergy(p.Mass, p.Length, p.Gravity))

		cfg := dynamo.Config{Dt: 0.01, Duration: 5.0, ValidateState: true}
		return sim, dynamo.State{1.0, 0.0}, cfg, nil
	}

	best, val, err := g.Search(cmd.Context(), build, "energy")
	if err != nil {
		return err
	}

	fmt.Printf("best damping: %.3f (average energy %.6f)\n", best["damping"], val)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tINTEG\tCTRL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Controller,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	maxPlots := 6
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		caption := fmt.Sprintf("x%d vs time", varIdx)
		if meta.Model == "pendulum" {
			if varIdx == 0 {
				caption = "theta (angle)"
			} else if varIdx == 1 {
				caption = "omega (angular velocity)"
			}
		} else if meta.Model == "cartpole" {
			if varIdx == 0 {
				caption = "cart position"
			} else if varIdx == 1 {
				caption = "cart velocity"
			} else if varIdx == 2 {
				caption = "pole angle"
			} else if varIdx == 3 {
				caption = "pole angular velocity"
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	_ = times

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 || len(states[0]) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][0]
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	ps := analysis.PowerSpectrum(padded)

	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(plotData); i++ {
		if plotData[i] > maxPower {
			maxPower = plotData[i]
			maxIdx = i
		}
	}

	freq := float64(maxIdx) / (meta.Duration)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("x-axis: x%d, y-axis: x%d\n\n", xAxis, yAxis)

	// Extract data for phase plot
	xData := make([]float64, len(states))
	yData := make([]float64, len(states))
	for i := range states {
		xData[i] = states[i][xAxis]
		yData[i] = states[i][yAxis]
	}

	// Find bounds
	xMin, xMax := xData[0], xData[0]
	yMin, yMax := yData[0], yData[0]
	for i := range xData {
		if xData[i] < xMin {
			xMin = xData[i]
		}
		if xData[i] > xMax {
			xMax = xData[i]
		}
		if yData[i] < yMin {
			yMin = yData[i]
		}
		if yData[i] > yMax {
			yMax = yData[i]
		}
	}

	// Add padding
	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	// Create ASCII scatter plot
	width := 70
	height := 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Plot points
	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := int(float64(height-1) * (yData[i] - yMin) / yRange)
		py = height - 1 - py // Flip y-axis
		if px >= 0 && px < width && py >= 0 && py < height {
			// Use different characters based on density/time
			if i < len(xData)/3 {
				canvas[py][px] = '.'
			} else if i < 2*len(xData)/3 {
				canvas[py][px] = 'o'
			} else {
				canvas[py][px] = '●'
			}
		}
	}

	// Draw frame
	fmt.Printf("  %.2f ┌", yMax)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┐")

	for i := range canvas {
		if i == height/2 {
			fmt.Printf("  %.2f │", (yMax+yMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}

	fmt.Printf("  %.2f └", yMin)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┘")

	fmt.Printf("       %.2f", xMin)
	padding := width - 20
	for i := 0; i < padding; i++ {
		fmt.Print(" ")
	}
	fmt.Printf("%.2f\n", xMax)

	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")

	if svgPath != "" {
		if err := writePhaseSVG(svgPath, xData, yData, xMin, xMax, yMin, yMax); err != nil {
			return fmt.Errorf("svg export: %w", err)
		}
		fmt.Printf("\nphase trajectory written to %s\n", svgPath)
	}

	return nil
}

// writePhaseSVG renders a phase trajectory onto a braille sub-pixel canvas
// and writes it out as SVG, reusing the same canvas/export pair
// internal/viz's interactive TUI draws with instead of building a second,
// SVG-specific scatter renderer.
func writePhaseSVG(path string, xData, yData []float64, xMin, xMax, yMin, yMax float64) error {
	const cols, rows = 140, 40
	canvas := viz.NewCanvas(cols, rows)

	xRange, yRange := xMax-xMin, yMax-yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	subW, subH := cols*2, rows*4
	prevX, prevY := -1, -1
	for i := range xData {
		px := int(float64(subW-1) * (xData[i] - xMin) / xRange)
		py := subH - 1 - int(float64(subH-1)*(yData[i]-yMin)/yRange)
		if prevX >= 0 {
			canvas.DrawLine(prevX, prevY, px, py)
		} else {
			canvas.Set(px, py)
		}
		prevX, prevY = px, py
	}

	svg := export.CanvasToSVG(canvas, 4.0)
	return os.WriteFile(path, []byte(svg), 0o644)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	// Header
	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	// Data rows
	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func lookupPhysicsModel(model string) (dynamo.System, error) {
	switch model {
	case "pendulum":
		return physics.NewPendulum(), nil
	case "double_pendulum":
		return physics.NewDoublePendulum(), nil
	case "cartpole":
		return physics.NewCartPole(), nil
	case "spring_mass":
		return physics.NewSpringMass(), nil
	case "drone":
		return physics.NewDrone(), nil
	case "nbody":
		return physics.NewNBody(3), nil
	default:
		return nil, fmt.Errorf("unknown model: %s", model)
	}
}

func lookupIntegrator(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "midpoint":
		return integrators.NewMidpoint(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	case "rk45":
		return integrators.NewRK45(), nil
	case "bs3":
		return integrators.NewBS3(), nil
	case "tsit5":
		return integrators.NewTsit5(), nil
	case "bs5":
		return integrators.NewBS5(), nil
	case "verlet":
		return integrators.NewVerlet(), nil
	case "leapfrog":
		return integrators.NewLeapfrog(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	model := args[0]
	integratorNames := args[1:]

	dyn, err := lookupPhysicsModel(model)
	if err != nil {
		return err
	}

	initState := []float64{theta, 0}
	switch model {
	case "double_pendulum":
		initState = []float64{theta, theta, 0, 0}
	case "cartpole":
		initState = []float64{0, 0, theta, 0}
	case "nbody":
		n := 3
		initState = make([]float64, n*4)
		for i := 0; i < n; i++ {
			angle := float64(i) * 2.0 * 3.14159 / float64(n)
			initState[i*4] = 2.0 * float64(i+1) * 0.5
			initState[i*4+1] = 0
			initState[i*4+2] = 0
			initState[i*4+3] = 0.5 * float64(i+1) * 0.3 * angle
		}
	case "drone":
		initState = []float64{0, 5, theta, 0, 0, 0}
	case "spring_mass":
		initState = []float64{1.0, 0}
	}

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", model, dt, duration)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "final_x0", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 52))

	for _, intName := range integratorNames {
		integ, err := lookupIntegrator(intName)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		ctrl := control.NewNone(dyn.ControlDim())
		s := dynamo.New(dyn, integ, ctrl)

		cfg := dynamo.Config{Dt: dt, Duration: duration}

		start := time.Now()
		result, err := s.Run(context.Background(), initState, cfg)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		finalX0 := 0.0
		if len(result.States) > 0 && len(result.States[len(result.States)-1]) > 0 {
			finalX0 = result.States[len(result.States)-1][0]
		}

		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n", intName, finalX0, result.EnergyDrift, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &dynamo.Result{
		States:  make([]dynamo.State, len(states)),
		Times:   times,
		Metrics: meta.Metrics,
	}
	for i, s := range states {
		result.States[i] = s
	}

	return storage.ExportJSONStdout(meta.Model, meta.Integrator, meta.Controller, meta.Dt, meta.Duration, result)
}