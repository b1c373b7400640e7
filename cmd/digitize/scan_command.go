package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"digitize/internal/deps"
	"digitize/internal/history"
	"digitize/internal/ocr"
	"digitize/internal/profile"
	"digitize/internal/scan"
	"digitize/internal/workflow"
)

type scanFlags struct {
	profilePath string
	name        string
	output      string
	keywords    []string
	ocr         bool
	pages       int
	noWait      bool
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a document using a profile and optional overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, ctx, flags)
		},
	}

	registerScanFlags(cmd.Flags(), &flags)

	return cmd
}

func registerScanFlags(flagSet *pflag.FlagSet, flags *scanFlags) {
	flagSet.StringVarP(&flags.profilePath, "profile", "p", "", "Dotted profile path, e.g. bill.dentist")
	flagSet.StringVarP(&flags.name, "name", "n", "", "Document name used for the output filename")
	flagSet.StringVarP(&flags.output, "output", "o", "", "Output directory")
	flagSet.StringArrayVarP(&flags.keywords, "keyword", "k", nil, "Metadata keyword (repeatable, replaces profile keywords)")
	flagSet.BoolVar(&flags.ocr, "ocr", false, "Run the straighten/cleanup/OCR step (--ocr=false disables it)")
	flagSet.IntVarP(&flags.pages, "pages", "c", 0, "Number of pages to scan (default: all pages from the feeder)")
	flagSet.BoolVar(&flags.noWait, "no-wait", false, "Start scanning without waiting for confirmation")
}

// overridesFromFlags builds the override record from the flags the user
// actually set; untouched flags leave the profile-resolved value alone.
func overridesFromFlags(flagSet *pflag.FlagSet, flags scanFlags) profile.Overrides {
	overrides := profile.Overrides{
		Pages:  flags.pages,
		NoWait: flags.noWait,
	}
	if flagSet.Changed("name") {
		overrides.Name = &flags.name
	}
	if flagSet.Changed("output") {
		overrides.Path = &flags.output
	}
	if flagSet.Changed("ocr") {
		overrides.OCR = &flags.ocr
	}
	if flagSet.Changed("keyword") {
		overrides.Keywords = append([]string(nil), flags.keywords...)
	}
	return overrides
}

func runScan(cmd *cobra.Command, ctx *commandContext, flags scanFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	store, err := profile.Load(cfg.Paths.Profiles)
	if err != nil {
		return err
	}

	resolution, err := store.Resolve(flags.profilePath)
	if err != nil {
		return err
	}
	// The configured output directory is the weakest layer; any profile or
	// flag value outranks it.
	base := profile.Resolution{Path: &cfg.Paths.OutputDir}
	resolution = profile.Merge(base, resolution)

	resolved, err := resolution.Apply(overridesFromFlags(cmd.Flags(), flags))
	if err != nil {
		return err
	}

	if err := checkTooling(resolved.OCR); err != nil {
		return err
	}

	scanner, err := scan.New(cfg.Scanner.Device, cfg.Scanner.Resolution)
	if err != nil {
		return err
	}
	converter := ocr.NewCLI(cfg.OCR.Language)

	var recorder workflow.Recorder
	store2, err := history.Open(cfg.Paths.HistoryPath)
	if err != nil {
		logger.Warn("open history store", "error", err)
	} else {
		defer store2.Close()
		recorder = store2
	}

	runner, err := workflow.NewRunner(cfg, logger, scanner, converter, recorder)
	if err != nil {
		return err
	}

	destination, err := runner.Run(cmd.Context(), resolved, workflow.Options{
		ProfilePath: flags.profilePath,
		Pages:       flags.pages,
		NoWait:      flags.noWait,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", destination)
	return nil
}

func checkTooling(withOCR bool) error {
	statuses := deps.CheckBinaries(deps.Default())
	var missing []string
	for _, status := range statuses {
		if status.Available {
			continue
		}
		if status.Optional && !withOCR {
			continue
		}
		missing = append(missing, status.Command)
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s (see 'digitize deps')", strings.Join(missing, ", "))
}
