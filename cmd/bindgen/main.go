package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/toyz/bindgen/internal/annotations"
	"github.com/toyz/bindgen/internal/cli"
	"github.com/toyz/bindgen/internal/models"
	"github.com/toyz/bindgen/internal/resolver"
	"github.com/toyz/bindgen/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[0], os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args and executes one bindgen invocation, returning the exit code
func run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		layerFlag   = flags.String("layer", "", "Generate the wrapper for one layer component, e.g. retry")
		serviceFlag = flags.String("service", "", "Generate the wrapper for one service component, e.g. s3")
		prefixFlag  = flags.String("prefix", resolver.DefaultPrefix, "Dependency name prefix")
		outFlag     = flags.String("out", "", "Output file for -layer/-service (defaults to <component>_gen.go)")
		pkgFlag     = flags.String("package", "", "Package name of the generated file (defaults to the target directory's package)")
		graphFlag   = flags.String("graph", annotations.GraphModfile, "Module graph backend: modfile or packages")
		stubFlag    = flags.String("stub-cmd", "", "Command to run in the workspace after each generated file")
		cleanFlag   = flags.Bool("clean", false, "Delete generated *_gen.go files from the specified directories")
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flags.Bool("quiet", false, "Only show errors")
		helpFlag    = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [options] <directory-paths...>\n", name)
		fmt.Fprintf(stderr, "       %s -layer <name> | -service <name> [options] [workspace]\n\n", name)
		fmt.Fprintf(stderr, "Binding Code Generator\n")
		fmt.Fprintf(stderr, "Generates host-runtime wrappers for builder-style layer and service types of Go dependencies.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    Directories to scan for //bindgen: directives\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "  workspace          Target directory for -layer/-service (defaults to .)\n")
		fmt.Fprintf(stderr, "\nDirectives:\n")
		fmt.Fprintf(stderr, "  //bindgen:layer retry\n")
		fmt.Fprintf(stderr, "  //bindgen:service s3 -prefix=opendal -out=s3_gen.go -graph=packages\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  %s ./...                          # Generate every directive recursively\n", name)
		fmt.Fprintf(stderr, "  %s -layer retry .                 # Generate retry_gen.go from opendal-layer-retry\n", name)
		fmt.Fprintf(stderr, "  %s -service s3 -out=s3_gen.go .   # Choose the output file\n", name)
		fmt.Fprintf(stderr, "  %s -clean ./...                   # Delete generated wrappers\n", name)
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if stdout != os.Stdout || stderr != os.Stderr {
		diagnostics.SetOutput(stdout, stderr)
	}

	rest := flags.Args()

	if *layerFlag != "" && *serviceFlag != "" {
		fmt.Fprintf(stderr, "Error: -layer and -service are mutually exclusive\n\n")
		flags.Usage()
		return 2
	}

	if *cleanFlag {
		if len(rest) == 0 {
			fmt.Fprintf(stderr, "Error: At least one directory path is required\n\n")
			flags.Usage()
			return 2
		}
		removed, err := cli.NewCleaner().CleanGeneratedFiles(rest)
		for _, path := range removed {
			diagnostics.Verbose("Removed %s", path)
		}
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			return 1
		}
		diagnostics.Success("Removed %d generated file(s)", len(removed))
		return 0
	}

	config := cli.Config{
		Directories: rest,
		Prefix:      *prefixFlag,
		Graph:       *graphFlag,
		StubCommand: *stubFlag,
		Verbose:     *verboseFlag,
	}
	generator := cli.NewGenerator(config, diagnostics)

	if *layerFlag != "" || *serviceFlag != "" {
		if len(rest) > 1 {
			fmt.Fprintf(stderr, "Error: -layer and -service take at most one workspace directory\n\n")
			flags.Usage()
			return 2
		}
		req := cli.Request{
			Dir:         ".",
			Kind:        models.KindLayer,
			Component:   *layerFlag,
			Output:      *outFlag,
			PackageName: *pkgFlag,
		}
		if *serviceFlag != "" {
			req.Kind = models.KindService
			req.Component = *serviceFlag
		}
		if len(rest) == 1 {
			req.Dir = rest[0]
		}

		result, err := generator.Run(ctx, req)
		if err != nil {
			diagnostics.Error("Generation failed: %v", err)
			return 1
		}
		diagnostics.Success("Wrote %s (%s)", result.Path, strings.Join(result.Artifact.Parameters, ", "))
		return 0
	}

	if len(rest) == 0 {
		fmt.Fprintf(stderr, "Error: At least one directory path is required\n\n")
		flags.Usage()
		return 2
	}
	if *outFlag != "" || *pkgFlag != "" {
		fmt.Fprintf(stderr, "Error: -out and -package need -layer or -service; use directive options instead\n\n")
		return 2
	}

	diagnostics.Header("Generating bindings")
	if *verboseFlag {
		diagnostics.List("Target directories: %s", strings.Join(rest, ", "))
		diagnostics.List("Dependency prefix: %s", *prefixFlag)
		diagnostics.List("Module graph: %s", *graphFlag)
	}

	if err := generator.Generate(ctx); err != nil {
		diagnostics.Error("Generation failed: %v", err)
		return 1
	}

	if diagnostics.Level() >= utils.DiagnosticVerbose {
		for _, file := range generator.GetSummary().GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}
	return 0
}
