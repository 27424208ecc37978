// Command tszemit drives the core end to end: load an arena fixture
// (encoding/json, in the absence of a parser this repository never
// implements — see §1), run the Lowering Pass, the Emission Engine, and
// optionally the Declaration Emitter, and write the results alongside the
// input file. Flags set most config.Options fields (§6); there is no flag
// for EmitPublicAPIOnly or UseDefineForClassFields. --declaration and
// --verbose are driver switches, and --config loads options from a JSON
// file first.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mohsen1/tsz-sub019/internal/ast"
	"github.com/mohsen1/tsz-sub019/internal/config"
	"github.com/mohsen1/tsz-sub019/internal/declaration"
	"github.com/mohsen1/tsz-sub019/internal/directive"
	"github.com/mohsen1/tsz-sub019/internal/emitter"
	"github.com/mohsen1/tsz-sub019/internal/lowering"
	"github.com/mohsen1/tsz-sub019/internal/obslog"
)

type emitFlags struct {
	configPath string
	target     string
	module     string
	jsx        string
	newLine    string
	indent     string

	removeComments        bool
	singleQuote           bool
	omitTrailingSemicolon bool
	downlevelIteration    bool
	legacyDecorators      bool
	declaration           bool
	sourceMap             bool
	verbose               bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tszemit",
		Short: "Emit JavaScript (and optionally .d.ts) from arena fixtures",
	}
	root.AddCommand(newEmitCmd())
	return root
}

func newEmitCmd() *cobra.Command {
	flags := &emitFlags{}
	cmd := &cobra.Command{
		Use:   "emit <fixture.json>...",
		Short: "Lower and emit each fixture file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, flags, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "path to a JSON options file, applied before the flags below")
	f.StringVar(&flags.target, "target", "", "ES3 | ES5 | ES2015 | ... | ESNext")
	f.StringVar(&flags.module, "module", "", "None | CommonJS | AMD | UMD | System | ES2015 | ES2020 | ES2022 | ESNext | Node16 | NodeNext")
	f.StringVar(&flags.jsx, "jsx", "", "Preserve | React | ReactJSX | ReactJSXDev")
	f.StringVar(&flags.newLine, "new-line", "", "lf | crlf")
	f.StringVar(&flags.indent, "indent", "", "indentation string, e.g. \"  \" or \"\\t\"")
	f.BoolVar(&flags.removeComments, "remove-comments", false, "strip comments from emitted output")
	f.BoolVar(&flags.singleQuote, "single-quote", false, "prefer single-quoted string literals")
	f.BoolVar(&flags.omitTrailingSemicolon, "omit-trailing-semicolon", false, "omit the final statement's trailing semicolon")
	f.BoolVar(&flags.downlevelIteration, "downlevel-iteration", false, "use the full iterator protocol when lowering for-of below ES2015")
	f.BoolVar(&flags.legacyDecorators, "legacy-decorators", false, "emit experimental (legacy) decorator calls instead of ES proposal shape")
	f.BoolVar(&flags.declaration, "declaration", false, "also emit a .d.ts file per input")
	f.BoolVar(&flags.sourceMap, "source-map", false, "emit a V3 source map per file")
	f.BoolVar(&flags.verbose, "verbose", false, "log at debug level")
	return cmd
}

func runEmit(cmd *cobra.Command, flags *emitFlags, paths []string) error {
	opts, err := resolveOptions(cmd, flags)
	if err != nil {
		return err
	}
	log := obslog.New(flags.verbose)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				if err := emitOne(log, opts, flags.declaration, path); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}
	for _, p := range paths {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	return firstErr
}

// resolveOptions layers --config (if given) under individually-changed
// flags: a config file supplies the base Options, and only flags the user
// actually passed (per cobra's Changed) overwrite fields on top of it. This
// keeps "tszemit emit --config tsconfig.tszemit.json --declaration x.json"
// from silently resetting every other config-file setting back to
// DefaultOptions, which a fo-from-scratch-then-Resolve approach would do.
func resolveOptions(cmd *cobra.Command, flags *emitFlags) (config.Options, error) {
	opts := config.DefaultOptions()
	if flags.configPath != "" {
		var err error
		opts, err = config.LoadFile(flags.configPath)
		if err != nil {
			return config.Options{}, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("target") {
		t, err := config.ParseTarget(flags.target)
		if err != nil {
			return config.Options{}, err
		}
		opts.Target = config.Target{Value: t}
	}
	if changed("module") {
		m, err := config.ParseModule(flags.module)
		if err != nil {
			return config.Options{}, err
		}
		opts.Module = m
	}
	if changed("jsx") {
		j, err := config.ParseJSX(flags.jsx)
		if err != nil {
			return config.Options{}, err
		}
		opts.JSX = j
	}
	if changed("new-line") {
		switch flags.newLine {
		case "lf", "LF":
			opts.NewLine = config.NewLineLF
		case "crlf", "CRLF":
			opts.NewLine = config.NewLineCRLF
		default:
			return config.Options{}, errors.Errorf("invalid --new-line %q: want \"lf\" or \"crlf\"", flags.newLine)
		}
	}
	if changed("indent") {
		opts.Indent = flags.indent
	}
	if changed("remove-comments") {
		opts.RemoveComments = flags.removeComments
	}
	if changed("single-quote") {
		opts.SingleQuote = flags.singleQuote
		opts.HasSingleQuote = true
	}
	if changed("omit-trailing-semicolon") {
		opts.OmitTrailingSemicolon = flags.omitTrailingSemicolon
	}
	if changed("downlevel-iteration") {
		opts.DownlevelIteration = flags.downlevelIteration
	}
	if changed("legacy-decorators") {
		opts.LegacyDecorators = flags.legacyDecorators
	}
	if changed("source-map") {
		opts.SourceMap = flags.sourceMap
	}
	return opts, nil
}

func emitOne(log hclog.Logger, opts config.Options, withDeclaration bool, path string) error {
	start := time.Now()

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading fixture %q", path)
	}
	arena, root, err := ast.LoadFixture(raw)
	if err != nil {
		return errors.Wrapf(err, "decoding fixture %q", path)
	}
	if !root.IsValid() {
		return errors.Errorf("%s: no source file node in fixture", path)
	}

	pass := lowering.New(arena, opts, map[string]bool{})
	directives, helpers := pass.Run(root)

	eng := emitter.New(arena, directives, helpers, opts)
	result := eng.EmitFile(root, path)

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".js"
	if err := os.WriteFile(outPath, []byte(result.Code), 0o644); err != nil {
		return errors.Wrapf(err, "writing %q", outPath)
	}
	if result.HasSourceMap {
		if err := os.WriteFile(outPath+".map", []byte(result.SourceMap), 0o644); err != nil {
			return errors.Wrapf(err, "writing source map for %q", outPath)
		}
	}

	if withDeclaration {
		decl := declaration.New(arena, nil, nil, nil, opts)
		dtsPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".d.ts"
		if err := os.WriteFile(dtsPath, []byte(decl.EmitFile(root)), 0o644); err != nil {
			return errors.Wrapf(err, "writing %q", dtsPath)
		}
	}

	obslog.LogFileResult(log, obslog.FileResult{
		Path:           path,
		DurationMillis: float64(time.Since(start).Microseconds()) / 1000,
		HelperCount:    helperCount(helpers),
	})
	return nil
}

func helperCount(h directive.HelpersNeeded) int {
	count := 0
	h.Each(func(directive.Helper) { count++ })
	return count
}
