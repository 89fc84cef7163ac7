package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/milsym"
	"github.com/esimov/milsym/utils"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const helpBanner = `
┌┬┐┬┬  ┌─┐┬ ┬┌┬┐
│││││  └─┐└┬┘│││
┴ ┴┴┴─┘└─┘ ┴ ┴ ┴

Military symbol renderer.
    Version: %s
`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version = "dev"

// flags holds the command line options.
type flags struct {
	assets     string
	basePath   string
	set        string
	out        string
	format     string
	noIcon     bool
	noFrame    bool
	noFill     bool
	fillColor  string
	iconColor  string
	frameColor string
	size       int
	cache      int
	workers    int
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "milsym [flags] SIDC...",
		Short:         "Render military map symbols as raster images",
		Long:          fmt.Sprintf(helpBanner, Version),
		Version:       Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(f, args, cmd.OutOrStdout())
			if err != nil {
				fmt.Fprintln(os.Stderr, utils.DecorateText(
					fmt.Sprintf("\nError rendering the symbols: %v", err), utils.ErrorMessage))
			}
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.assets, "assets", "a", os.Getenv("MILSYM_ASSETS"), "Symbol repository: directory, zip archive or URL")
	fl.StringVar(&f.basePath, "base", milsym.DefaultBasePath, "Path of the symbols inside the repository")
	fl.StringVarP(&f.set, "set", "s", "2525", "Symbol set (2525, icon)")
	fl.StringVarP(&f.out, "out", "o", ".", "Destination file, directory, or - for stdout")
	fl.StringVarP(&f.format, "format", "f", "png", "Image format used for directory and stdout output")
	fl.BoolVar(&f.noIcon, "no-icon", false, "Hide the icon layer")
	fl.BoolVar(&f.noFrame, "no-frame", false, "Hide the frame layer")
	fl.BoolVar(&f.noFill, "no-fill", false, "Hide the fill layer")
	fl.StringVar(&f.fillColor, "fill-color", "", "Fill color as hex value (#rrggbb[aa])")
	fl.StringVar(&f.iconColor, "icon-color", "", "Icon color as hex value (#rrggbb[aa])")
	fl.StringVar(&f.frameColor, "frame-color", "", "Frame color as hex value (#rrggbb[aa])")
	fl.IntVar(&f.size, "size", 0, "Size in pixels of the longest side of the symbols (0 keeps the native size)")
	fl.IntVar(&f.cache, "cache", 0, "Number of rendered symbols kept in memory")
	fl.IntVarP(&f.workers, "conc", "c", runtime.NumCPU(), "Number of symbols rendered concurrently")
	fl.StringVar(&f.logLevel, "log-level", utils.GetLogLevel(), "Log level (trace, debug, info, warn, error)")

	return cmd
}

// run renders the symbols identified by ids according to the command line options.
func run(f *flags, ids []string, stdout io.Writer) error {
	if hclog.LevelFromString(f.logLevel) == hclog.NoLevel {
		return fmt.Errorf("invalid log level %q", f.logLevel)
	}
	logger := utils.NewLogger("milsym", f.logLevel, os.Stderr)

	if f.assets == "" {
		return errors.New("please provide the symbol repository with the --assets flag")
	}
	store, closer, err := milsym.NewStore(f.assets)
	if err != nil {
		return err
	}
	defer closer.Close()

	set, err := milsym.NewSymbolSet(f.set)
	if err != nil {
		return err
	}

	format, err := imaging.FormatFromExtension(f.format)
	if err != nil {
		return err
	}

	renderer := milsym.NewRenderer(
		milsym.NewLoader(store, f.basePath),
		set,
		milsym.WithLogger(logger.Named("renderer")),
	)
	svc := milsym.NewService(renderer,
		milsym.WithCache(f.cache),
		milsym.WithServiceLogger(logger),
	).
		WithShowIcon(!f.noIcon).
		WithShowFrame(!f.noFrame).
		WithShowFill(!f.noFill).
		WithSize(f.size)

	for _, c := range []struct {
		value string
		apply func(color.Color) *milsym.Service
	}{
		{f.fillColor, svc.WithFillColor},
		{f.iconColor, svc.WithIconColor},
		{f.frameColor, svc.WithFrameColor},
	} {
		if c.value == "" {
			continue
		}
		col, err := utils.HexToNRGBA(c.value)
		if err != nil {
			return err
		}
		c.apply(col)
	}

	now := time.Now()
	defer func() {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}()

	switch {
	case f.out == pipeName:
		if len(ids) > 1 {
			return errors.New("only a single symbol can be written to stdout")
		}
		if file, ok := stdout.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return svc.Encode(stdout, ids[0], format)
	case len(ids) == 1 && isFilePath(f.out):
		if err := svc.WriteFile(ids[0], f.out); err != nil {
			return err
		}
		printStatus(ids[0], f.out, nil)
		return nil
	}

	results, err := svc.Execute(&milsym.Ops{
		Dst:     f.out,
		Format:  format,
		Workers: f.workers,
	}, ids)
	if err != nil {
		return err
	}

	var failed int
	for _, res := range results {
		printStatus(res.ID, res.Path, res.Err)
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		logger.Warn("some symbols could not be rendered", "failed", failed, "total", len(results))
		return fmt.Errorf("%d of %d symbols failed", failed, len(results))
	}
	return nil
}

// printStatus displays the relevant information about the rendering of a symbol.
func printStatus(id, path string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n",
			utils.DecorateText("✘ "+id, utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("Reason: %v", err), utils.DefaultMessage),
		)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n",
		utils.DecorateText("✔ "+id, utils.SuccessMessage),
		utils.DecorateText("saved as "+path, utils.StatusMessage),
	)
}

// isFilePath reports whether out names an image file rather than a directory.
func isFilePath(out string) bool {
	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		return false
	}
	return len(filepath.Ext(out)) > 1
}
