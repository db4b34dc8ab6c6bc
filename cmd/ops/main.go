package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"taskboard/internal/config"
	"taskboard/internal/ops"
	"taskboard/internal/task"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "export":
		if err := cmdExport(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "export failed:", err)
			os.Exit(1)
		}
	case "import":
		if err := cmdImport(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "import failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func dialStore(ctx context.Context) (*task.MongoRepo, error) {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required; the in-memory store has nothing to snapshot")
	}
	return task.DialMongo(ctx, cfg.MongoURI, cfg.Database)
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", "", "output snapshot path (.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		*out = ops.DefaultSnapshotPath("backups")
	}

	ctx := context.Background()
	store, err := dialStore(ctx)
	if err != nil {
		return err
	}

	n, err := ops.Export(ctx, store, *out)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d tasks)\n", *out, n)
	return nil
}

func cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	in := fs.String("in", "", "input snapshot path (.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("in is required")
	}

	ctx := context.Background()
	store, err := dialStore(ctx)
	if err != nil {
		return err
	}

	n, err := ops.Import(ctx, store, *in)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d tasks\n", n)
	return nil
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  taskboard-ops export --out backups/tasks.json")
	fmt.Println("  taskboard-ops import --in backups/tasks.json")
}
