package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"glprimer/config"
	"glprimer/core"
	"glprimer/internal/opengl"
	"glprimer/io"
	"glprimer/renderer"
	"glprimer/scene"
)

func main() {
	if err := run(); err != nil {
		slog.Error("glprimer failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML configuration file")
	verbose := flag.Bool("v", false, "Enable debug logging")
	shape := flag.String("shape", "", "Mesh to draw: triangle, cube, box, sphere or file")
	model := flag.String("model", "", "Model file (.obj, .gltf, .glb) for the file shape")
	drawPath := flag.String("path", "", "Draw path: buffers or shape")
	wireframe := flag.Bool("wireframe", false, "Draw in wireframe mode")
	vsync := flag.Bool("vsync", false, "Wait for vertical sync between frames")
	maxFrames := flag.Int("max-frames", 0, "Stop after this many frames (0 runs until closed)")
	exportPath := flag.String("export", "", "Write the mesh to a .obj, .gltf or .glb file and exit")
	printMatrices := flag.Float64("print-matrices", -1, "Print the transforms at this time in seconds and exit")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "shape":
			cfg.Scene.Shape = *shape
		case "model":
			cfg.Scene.Model = *model
		case "path":
			cfg.Scene.Path = *drawPath
		case "wireframe":
			cfg.Scene.Wireframe = *wireframe
		case "vsync":
			cfg.Window.VSync = *vsync
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if *printMatrices >= 0 {
		printFrame(cfg.Animation.Frame(float32(*printMatrices), 1))
		return nil
	}

	mesh, err := cfg.Scene.Mesh(io.LoadMesh)
	if err != nil {
		return fmt.Errorf("build mesh: %w", err)
	}
	slog.Debug("mesh ready", "name", mesh.Name, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	if *exportPath != "" {
		if err := io.ExportMesh(*exportPath, mesh); err != nil {
			return fmt.Errorf("export mesh: %w", err)
		}
		slog.Info("mesh exported", "path", *exportPath)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loop, err := setup(cfg, mesh)
	if err != nil {
		return err
	}
	loop.MaxFrames = *maxFrames
	return loop.Run(ctx)
}

// setup opens the window, links the shaders and uploads the mesh. Anything
// acquired before a failure is released again.
func setup(cfg config.Config, mesh *scene.Mesh) (*renderer.Loop, error) {
	window, err := core.NewWindow(cfg.Window)
	if err != nil {
		return nil, err
	}

	var glctx opengl.GL
	if err := glctx.Init(); err != nil {
		window.Destroy()
		return nil, err
	}
	vendor, device, version := glctx.Info()
	slog.Info("OpenGL context ready",
		"vendor", vendor,
		"renderer", device,
		"version", version,
		"desktop", fmt.Sprintf("%dx%d", window.Desktop.Width, window.Desktop.Height))

	program, err := opengl.LoadProgram(glctx, cfg.Shaders.Vertex, cfg.Shaders.Fragment)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	r := opengl.NewRenderer(glctx, program)
	r.SetClearColor(cfg.Scene.ClearColor)
	r.SetWireframe(cfg.Scene.Wireframe)
	r.SetCulling(cfg.Scene.Cull)

	loop := renderer.NewLoop(window, r, cfg.Animation)
	loop.Title = cfg.Window.Title

	switch cfg.Scene.Path {
	case config.PathShape:
		loop.Shape = opengl.NewShape(glctx, mesh)
	default:
		if err := r.Setup(mesh); err != nil {
			r.Destroy()
			window.Destroy()
			return nil, err
		}
	}
	return loop, nil
}

func printFrame(f scene.Frame) {
	fmt.Printf("t = %.3f\n", f.Time)
	fmt.Printf("R:\n%s", f.R)
	fmt.Printf("P:\n%s", f.P)
	fmt.Printf("MV:\n%s", f.MV)
}
