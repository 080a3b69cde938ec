package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/bindgen/internal/annotations"
	"github.com/toyz/bindgen/internal/errors"
	"github.com/toyz/bindgen/internal/generator"
	"github.com/toyz/bindgen/internal/models"
	"github.com/toyz/bindgen/internal/parser"
	"github.com/toyz/bindgen/internal/resolver"
	"github.com/toyz/bindgen/internal/typemap"
	"github.com/toyz/bindgen/internal/utils"
)

// Environment passed to the stub command
const (
	EnvOutput = "BINDGEN_OUTPUT"
	EnvRunID  = "BINDGEN_RUN_ID"
)

// Generator coordinates one or more pipeline runs. Run is safe for
// concurrent use; Generate runs its directives one after another.
type Generator struct {
	config        Config
	scanner       *DirectiveScanner
	targets       *TargetBuilder
	codeGenerator generator.CodeGenerator
	diagnostics   *utils.DiagnosticSystem
	graph         resolver.Graph // overrides Config.Graph when set

	mu      sync.Mutex
	summary GenerationSummary
}

// GenerationSummary collects what a Generate call produced
type GenerationSummary struct {
	GeneratedFiles []string
	Skipped        int
	Warnings       int
	Duration       time.Duration
}

// NewGenerator creates a generator reporting through diagnostics
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if config.Prefix == "" {
		config.Prefix = resolver.DefaultPrefix
	}
	return &Generator{
		config:        config,
		scanner:       NewDirectiveScanner(),
		targets:       NewTargetBuilder(),
		codeGenerator: generator.NewAssembler(),
		diagnostics:   diagnostics,
	}
}

// WithGraph pins the module graph backend, ignoring the graph option
func (g *Generator) WithGraph(graph resolver.Graph) *Generator {
	g.graph = graph
	return g
}

// GetSummary returns the summary of the last Generate call
func (g *Generator) GetSummary() GenerationSummary {
	g.mu.Lock()
	defer g.mu.Unlock()
	summary := g.summary
	summary.GeneratedFiles = append([]string(nil), g.summary.GeneratedFiles...)
	return summary
}

// Run executes the pipeline for a single component
func (g *Generator) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	diagnostics := g.diagnostics.WithRunID(runID)

	if err := utils.ValidateComponentName("component")(req.Component); err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "invalid component name", err).
			WithContext("component", req.Component)
	}
	if req.PackageName != "" {
		check := utils.NewValidatorChain(utils.NotEmpty("package")).Add(utils.IsValidGoIdentifier("package"))
		if err := check.Validate(req.PackageName); err != nil {
			return nil, errors.Wrap(errors.ConfigurationErrorCode, "invalid package name", err).
				WithContext("package", req.PackageName)
		}
	}
	if req.Dir == "" {
		req.Dir = "."
	}
	dir, err := filepath.Abs(req.Dir)
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", req.Dir, err)
	}

	workspace, modulePath, err := g.targets.Workspace(dir)
	if err != nil {
		return nil, errors.WrapResolutionError(req.Component, dir, err).
			WithSuggestion("Run bindgen inside a Go module")
	}
	diagnostics.Debug("Workspace %s (module %s)", workspace, modulePath)

	prefix := firstNonEmpty(req.Prefix, g.config.Prefix, resolver.DefaultPrefix)
	depName := resolver.DependencyName(prefix, req.Kind, req.Component)

	graph, err := g.graphFor(firstNonEmpty(req.Graph, g.config.Graph))
	if err != nil {
		return nil, err
	}
	dep, err := resolver.New(graph).Resolve(ctx, workspace, depName)
	if err != nil {
		return nil, err
	}
	diagnostics.Verbose("Resolved %s to %s@%s", depName, dep.Path, dep.Version)

	variant := models.VariantFor(req.Kind)
	sourceFile, err := sourceFileFor(dep.Dir, req.Component, variant)
	if err != nil {
		return nil, err
	}
	diagnostics.Debug("Reading %s", sourceFile)

	desc, err := parser.NewExtractor(variant).ExtractFile(sourceFile, req.Component)
	if err != nil {
		return nil, err
	}
	for _, ex := range desc.Excluded {
		diagnostics.Debug("Excluded %s (line %d): %s", ex.Name, ex.Line, ex.Reason)
	}
	if !desc.TypeFound {
		return nil, errors.Newf(errors.GenerationErrorCode, "type %s not declared", desc.TypeName).
			WithLocation(errors.SourceLocation{File: sourceFile}).
			WithContext("dependency", depName).
			WithSuggestion(fmt.Sprintf("Check that %s declares %s", filepath.Base(sourceFile), desc.TypeName))
	}

	target, err := g.targets.Build(dir, req.PackageName, workspace, modulePath, dep, sourceFile)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigurationErrorCode, "failed to build generation target", err)
	}

	artifact, err := g.codeGenerator.Assemble(desc, typemap.For(req.Kind), target)
	if err != nil {
		return nil, err
	}
	g.report(diagnostics, artifact)

	artifact.Path = outputPath(dir, req.Output, req.Component)
	if err := utils.WriteFileAtomic(artifact.Path, artifact.Content); err != nil {
		return nil, errors.WrapFileSystemError("write", artifact.Path, err)
	}

	result := &Result{
		RunID:      runID,
		Dependency: depName,
		Module:     target.SourceModule,
		SourceFile: sourceFile,
		Path:       artifact.Path,
		Artifact:   artifact,
	}

	if command := firstNonEmpty(req.StubCommand, g.config.StubCommand); command != "" {
		if err := g.runStubCommand(ctx, diagnostics, command, workspace, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// Generate scans the configured directories for directives and runs the
// pipeline once per directive, in discovery order
func (g *Generator) Generate(ctx context.Context) error {
	start := time.Now()
	g.mu.Lock()
	g.summary = GenerationSummary{}
	g.mu.Unlock()

	g.diagnostics.PhaseHeader("Scanning for directives")
	directives, err := g.scanner.Scan(g.config.Directories)
	if err != nil {
		return err
	}
	if len(directives) == 0 {
		g.diagnostics.Warn("No //bindgen: directives found in %s", strings.Join(g.config.Directories, ", "))
		return nil
	}
	g.diagnostics.Info("Found %d directive(s)", len(directives))
	g.diagnostics.Indent()
	for _, d := range directives {
		g.diagnostics.PhaseItem(fmt.Sprintf("%s %s (%s)", d.Kind, d.Component, d.Location))
	}
	g.diagnostics.Unindent()

	g.diagnostics.PhaseHeader("Generating wrappers")
	for _, d := range directives {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := g.Run(ctx, RequestFromDirective(d))
		if err != nil {
			return errors.Wrapf(errors.CodeOf(err), err, "%s %s", d.Kind, d.Component).
				WithLocation(d.Location)
		}
		g.mu.Lock()
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, result.Path)
		g.mu.Unlock()
		g.diagnostics.PhaseProgress(fmt.Sprintf("Writing %s (%d parameters)", relPath(result.Path), len(result.Artifact.Parameters)))
	}

	g.mu.Lock()
	g.summary.Duration = time.Since(start)
	summary := g.summary
	g.mu.Unlock()
	g.diagnostics.Summary("Summary", map[string]interface{}{
		"Generated": len(summary.GeneratedFiles),
		"Skipped":   summary.Skipped,
		"Warnings":  summary.Warnings,
		"Duration":  summary.Duration.Round(time.Millisecond).String(),
	})
	g.diagnostics.GenerationComplete()
	return nil
}

// RequestFromDirective turns a scanned directive into a pipeline request
func RequestFromDirective(d annotations.Directive) Request {
	return Request{
		Dir:         filepath.Dir(d.Location.File),
		Kind:        d.Kind,
		Component:   d.Component,
		Prefix:      d.Prefix,
		Output:      d.Output,
		Graph:       d.Graph,
		PackageName: d.Package,
	}
}

func (g *Generator) graphFor(name string) (resolver.Graph, error) {
	if g.graph != nil {
		return g.graph, nil
	}
	switch name {
	case "", annotations.GraphModfile:
		return resolver.NewModfileGraph(), nil
	case annotations.GraphPackages:
		return resolver.NewPackagesGraph(), nil
	default:
		return nil, errors.ConfigurationError("graph", fmt.Sprintf("unknown module graph '%s'", name)).
			WithSuggestion("Use modfile or packages")
	}
}

func (g *Generator) report(diagnostics *utils.DiagnosticSystem, artifact *models.GeneratedArtifact) {
	for _, d := range artifact.Diagnostics {
		switch d.Severity {
		case models.SeverityWarning:
			diagnostics.Warn("%s: %s", d.Type, d.Message)
		default:
			diagnostics.Verbose("%s: %s", d.Type, d.Message)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, d := range artifact.Diagnostics {
		if d.Severity == models.SeverityWarning {
			g.summary.Warnings++
		}
		g.summary.Skipped++
	}
}

func (g *Generator) runStubCommand(ctx context.Context, diagnostics *utils.DiagnosticSystem, command, workspace string, result *Result) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = workspace
	cmd.Env = append(os.Environ(),
		EnvOutput+"="+result.Path,
		EnvRunID+"="+result.RunID,
	)

	diagnostics.Verbose("Running stub command: %s", command)
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		diagnostics.Debug("%s", strings.TrimSpace(string(out)))
	}
	if err != nil {
		return errors.WrapHookError(command, err).
			WithContext("output", strings.TrimSpace(string(out)))
	}
	return nil
}

// sourceFileFor picks the component-named file, then the variant fallback
func sourceFileFor(depDir, component string, variant models.Variant) (string, error) {
	candidates := []string{filepath.Join(depDir, utils.SnakeCase(component)+".go")}
	if variant.FallbackFile != "" {
		candidates = append(candidates, filepath.Join(depDir, variant.FallbackFile))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", errors.SourceNotFound(component, candidates)
}

func outputPath(dir, output, component string) string {
	if output == "" {
		return filepath.Join(dir, utils.SnakeCase(component)+"_gen.go")
	}
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(dir, output)
}

func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
