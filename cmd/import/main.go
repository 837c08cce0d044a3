// Package main loads a spreadsheet of ingredients into the catalog
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nutrino/kitchen/internal/infrastructure/container"
	"github.com/nutrino/kitchen/internal/infrastructure/importer"
	"go.uber.org/fx"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	file := flag.String("file", "", "catalog spreadsheet (.csv or .xlsx)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: import -file catalog.xlsx [-config config.yaml]")
		os.Exit(2)
	}

	if err := run(*configPath, *file); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
}

func run(configPath, file string) error {
	var im *importer.Importer
	app := fx.New(
		fx.NopLogger,
		fx.Supply(container.ConfigPath(configPath)),
		container.CoreModule,
		fx.Populate(&im),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	report, err := im.ImportFile(ctx, file)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d of %d rows\n", report.Imported, report.Rows)
	for _, s := range report.Skipped {
		fmt.Printf("  line %d (%s): %s\n", s.Line, s.Name, s.Reason)
	}
	return nil
}
