// Package main runs a graph through the force layout headlessly and writes
// the settled result as SVG. Useful for batch rendering and for eyeballing
// layout tuning changes without a frontend.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"graphcanvas/application/commands"
	"graphcanvas/infrastructure/config"
	"graphcanvas/infrastructure/di"
	"graphcanvas/interfaces/render"
)

// graphFile is the on-disk YAML description of a graph
type graphFile struct {
	Nodes []struct {
		ID         string                 `yaml:"id"`
		Label      string                 `yaml:"label"`
		Type       string                 `yaml:"type"`
		X          *float64               `yaml:"x"`
		Y          *float64               `yaml:"y"`
		Properties map[string]interface{} `yaml:"properties"`
	} `yaml:"nodes"`
	Edges []struct {
		ID         string                 `yaml:"id"`
		Source     string                 `yaml:"source"`
		Target     string                 `yaml:"target"`
		Type       string                 `yaml:"type"`
		Label      string                 `yaml:"label"`
		Properties map[string]interface{} `yaml:"properties"`
	} `yaml:"edges"`
}

func main() {
	var (
		inputPath  = flag.String("input", "graph.yaml", "graph description file")
		outputPath = flag.String("output", "graph.svg", "SVG output file")
		width      = flag.Float64("width", 1200, "canvas width")
		height     = flag.Float64("height", 900, "canvas height")
		maxTicks   = flag.Int("max-ticks", 2000, "maximum ticks before giving up on equilibrium")
		fit        = flag.Bool("fit", true, "fit the viewport to the settled content")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Logger.Sync()
	logger := container.Logger

	cmd, err := readGraphFile(*inputPath)
	if err != nil {
		logger.Fatal("Failed to read graph file", zap.String("path", *inputPath), zap.Error(err))
	}

	ed := container.Editor
	if err := ed.SetDimensions(*width, *height); err != nil {
		logger.Fatal("Invalid canvas dimensions", zap.Error(err))
	}
	if err := ed.Execute(context.Background(), cmd); err != nil {
		logger.Fatal("Failed to load graph", zap.Error(err))
	}
	if err := ed.StartLayout(); err != nil {
		logger.Fatal("Failed to start layout", zap.Error(err))
	}

	ticks := ed.RunToEquilibrium(*maxTicks)
	logger.Info("layout settled",
		zap.Int("ticks", ticks),
		zap.Int("nodes", len(cmd.Nodes)),
		zap.Int("edges", len(cmd.Edges)))

	if *fit {
		if err := ed.FitToContent(); err != nil {
			logger.Warn("fit to content failed", zap.Error(err))
		}
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		logger.Fatal("Failed to create output file", zap.String("path", *outputPath), zap.Error(err))
	}
	defer out.Close()

	if err := render.WriteSVG(out, ed.Frame()); err != nil {
		logger.Fatal("Failed to write SVG", zap.Error(err))
	}
	logger.Info("wrote svg", zap.String("path", *outputPath))
}

// readGraphFile parses the YAML graph description into a load command
func readGraphFile(path string) (commands.LoadGraphCommand, error) {
	var cmd commands.LoadGraphCommand

	data, err := os.ReadFile(path)
	if err != nil {
		return cmd, err
	}

	var file graphFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cmd, err
	}

	for _, n := range file.Nodes {
		cmd.Nodes = append(cmd.Nodes, commands.NodeInput{
			ID:         n.ID,
			Label:      n.Label,
			Type:       n.Type,
			Properties: n.Properties,
			X:          n.X,
			Y:          n.Y,
		})
	}
	for _, e := range file.Edges {
		cmd.Edges = append(cmd.Edges, commands.EdgeInput{
			ID:         e.ID,
			SourceID:   e.Source,
			TargetID:   e.Target,
			Type:       e.Type,
			Label:      e.Label,
			Properties: e.Properties,
		})
	}
	return cmd, nil
}
