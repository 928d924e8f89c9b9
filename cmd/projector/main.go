package main

import (
	"io"
	"os"

	"github.com/jfenwick/budget-forecast/internal/config"
	"github.com/jfenwick/budget-forecast/internal/output"
	"github.com/jfenwick/budget-forecast/internal/planfile"
	"github.com/jfenwick/budget-forecast/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Load the plan document
	doc, err := planfile.Load(cfg.PlanFile)
	if err != nil {
		logger.Fatalf("Failed to load plan: %v", err)
	}
	logger.Infof("Loaded plan %q with %d events", doc.Plan.Name, len(doc.Events))

	// Project
	svc := service.NewService(logger)
	points, err := svc.ProjectPlan(doc.Plan, doc.Events, cfg.RangeYears)
	if err != nil {
		logger.Fatalf("Projection failed: %v", err)
	}

	// Render
	var out io.Writer = os.Stdout
	if cfg.OutputFile != "" {
		f, err := os.Create(cfg.OutputFile)
		if err != nil {
			logger.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	switch cfg.OutputFormat {
	case config.FormatJSON:
		err = output.WriteJSON(out, points)
	default:
		err = output.WriteCSV(out, points)
	}
	if err != nil {
		logger.Fatalf("Failed to write output: %v", err)
	}
}
