package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/stickerpack/internal/config"
	"github.com/handiism/stickerpack/internal/pipeline"
)

func main() {
	// Command line flags
	var (
		collectionFlag = flag.String("collection", "", "Collection folder containing one subfolder per sticker pack")
		folderFlag     = flag.String("folder", "", "Process a single sticker folder instead of a collection")
		outputFlag     = flag.String("output", "", "Output directory (overrides config)")
		configFlag     = flag.String("config", "", "Path to config file (.json, .yaml or .yml)")
		minImagesFlag  = flag.Int("min-images", 0, "Minimum images per folder (overrides config)")
		workersFlag    = flag.Int("workers", 0, "Folders processed concurrently (overrides config)")
		noPackageFlag  = flag.Bool("no-package", false, "Skip zip packaging")
		dryRunFlag     = flag.Bool("dry-run", false, "Scan folders without rendering")
		verboseFlag    = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *collectionFlag != "" {
		settings.CollectionFolder = *collectionFlag
	} else if flag.NArg() > 0 {
		settings.CollectionFolder = flag.Arg(0)
	}
	if *outputFlag != "" {
		settings.OutputFolder = *outputFlag
	}
	if *minImagesFlag > 0 {
		settings.MinImages = *minImagesFlag
	}
	if *workersFlag > 0 {
		settings.MaxConcurrentFolders = *workersFlag
	}
	if *noPackageFlag {
		settings.CreatePackages = false
	}

	if settings.CollectionFolder == "" && *folderFlag == "" {
		fmt.Println("Sticker Pack - Render preview sheets for sticker collections")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  stickerpack -collection <dir> [options]")
		fmt.Println("  stickerpack <dir> [options]")
		fmt.Println("  stickerpack -folder <sticker folder> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: stickerpack-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := pipeline.NewManager(settings, func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case pipeline.LevelError:
			prefix = "❌ "
		case pipeline.LevelWarning:
			prefix = "⚠️  "
		case pipeline.LevelSuccess:
			prefix = "✅ "
		case pipeline.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("🎨 Sticker Pack")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	var err error
	if *folderFlag != "" {
		err = manager.InitializeFolder(ctx, *folderFlag)
	} else {
		err = manager.Initialize(ctx, settings.CollectionFolder)
	}
	if err != nil {
		if errors.Is(err, pipeline.ErrNoFolders) {
			fmt.Fprintf(os.Stderr, "Error: %v (need at least %d images per folder)\n", err, settings.MinImages)
		} else {
			fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		}
		os.Exit(1)
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not rendering]")
		for i, name := range manager.GetFolderNames() {
			fmt.Printf("  %d. %s\n", i+1, name)
		}
		return
	}

	fmt.Println("\n🖼️  Rendering templates...")
	fmt.Println()

	if err := manager.StartProcessing(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nProcessing cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during processing: %v\n", err)
		os.Exit(1)
	}

	done, total := manager.GetProgress()
	succeeded := 0
	results := manager.Results()
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Rendered %d/%d templates, %d/%d folders succeeded\n", done, total, succeeded, len(results))
	fmt.Printf("   Output: %s\n", settings.OutputFolder)
	if master := manager.MasterPackage(); master != "" {
		fmt.Printf("   Package: %s\n", master)
	}
}
