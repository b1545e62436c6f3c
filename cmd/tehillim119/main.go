// Command tehillim119 generates Psalm 119 documents for Hebrew names.
// Each letter of a name selects the psalm's matching eight-verse stanza;
// the selected stanzas are rendered to DOCX or PDF, singly or in batch
// from a spreadsheet.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/Tehillim119/core/psalm"
	"github.com/FocuswithJustin/Tehillim119/core/resolve"
	"github.com/FocuswithJustin/Tehillim119/internal/batch"
	"github.com/FocuswithJustin/Tehillim119/internal/logging"
	"github.com/FocuswithJustin/Tehillim119/internal/names"
	"github.com/FocuswithJustin/Tehillim119/internal/render"
	"github.com/FocuswithJustin/Tehillim119/internal/sefaria"
	"github.com/FocuswithJustin/Tehillim119/internal/versecache"
	"github.com/FocuswithJustin/Tehillim119/internal/web"

	// Import the format registry to register all document renderers
	_ "github.com/FocuswithJustin/Tehillim119/internal/render/all"
)

const version = "1.0.0"

// CLI defines the command-line interface for tehillim119.
var CLI struct {
	// Global flags
	LogLevel  string `help:"Log level (debug, info, warn, error)" default:"info" env:"TEHILLIM119_LOG_LEVEL"`
	LogFormat string `help:"Log format (text, json)" default:"text" env:"TEHILLIM119_LOG_FORMAT"`
	CacheDir  string `help:"Verse cache directory (default: user cache dir)" env:"TEHILLIM119_CACHE_DIR" type:"path"`
	Font      string `help:"Unicode TTF font for PDF output" env:"TEHILLIM119_FONT" type:"path"`

	Generate GenerateCmd `cmd:"" help:"Generate a document for a single name"`
	Batch    BatchCmd    `cmd:"" help:"Generate documents for every name in a spreadsheet"`
	Web      WebCmd      `cmd:"" help:"Start the web UI server"`
	Fetch    FetchCmd    `cmd:"" help:"Fetch the psalm text and warm the verse cache"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// loadPsalm fetches or restores the psalm text using the global cache flags.
func loadPsalm(ctx context.Context) (*psalm.Psalm, error) {
	cacheDir := CLI.CacheDir
	if cacheDir == "" {
		cacheDir = versecache.DefaultCacheDir()
	}
	return versecache.NewLoader(sefaria.NewClient(), cacheDir).Load(ctx)
}

func newRenderer(format string) (render.Renderer, error) {
	return render.New(format, render.Options{FontPath: CLI.Font})
}

// GenerateCmd generates one document for one name.
type GenerateCmd struct {
	Name   string `arg:"" help:"Hebrew name"`
	Format string `help:"Output format (docx, pdf)" default:"docx" enum:"docx,pdf"`
	Out    string `help:"Output file path (default: derived from the name)" type:"path"`
}

func (c *GenerateCmd) Run(ctx context.Context) error {
	renderer, err := newRenderer(c.Format)
	if err != nil {
		return err
	}

	p, err := loadPsalm(ctx)
	if err != nil {
		return err
	}

	resolved, err := resolve.Resolve(c.Name, p)
	if err != nil {
		return err
	}

	data, err := renderer.Render(render.Document{
		Name:     resolved.Name,
		Sections: resolved.Sections,
	})
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		out = batch.Filename(resolved.Name, renderer.Ext())
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (%d sections)\n", out, len(resolved.Sections))
	return nil
}

// BatchCmd generates documents for every name in a spreadsheet and packs
// them into an archive.
type BatchCmd struct {
	Spreadsheet string `arg:"" help:"Spreadsheet with a 'Name' column (.xlsx or .csv)" type:"existingfile"`
	Format      string `help:"Output format (docx, pdf)" default:"docx" enum:"docx,pdf"`
	Archive     string `help:"Archive type" default:"zip" enum:"zip,tar.xz"`
	Out         string `help:"Output archive path (default: Tehillim119.<archive>)" type:"path"`
	Workers     int    `help:"Render parallelism (default: one per CPU)"`
}

func (c *BatchCmd) Run(ctx context.Context) error {
	renderer, err := newRenderer(c.Format)
	if err != nil {
		return err
	}

	nameList, err := names.ReadFile(c.Spreadsheet)
	if err != nil {
		return err
	}

	p, err := loadPsalm(ctx)
	if err != nil {
		return err
	}

	report, err := batch.Run(ctx, nameList, p, renderer, batch.Options{Workers: c.Workers})
	if err != nil {
		return err
	}

	for _, f := range report.Failures {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", f.Name, f.Err)
	}
	if report.Succeeded() == 0 {
		return fmt.Errorf("no names could be processed")
	}

	out := c.Out
	if out == "" {
		out = "Tehillim119." + c.Archive
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer file.Close()

	switch c.Archive {
	case "tar.xz":
		err = batch.WriteTarXz(file, report.Files)
	default:
		err = batch.WriteZip(file, report.Files)
	}
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (%d of %d names)\n", out, report.Succeeded(), report.Total())
	return nil
}

// WebCmd starts the web UI server.
type WebCmd struct {
	Port    int `help:"HTTP server port" default:"8080"`
	Workers int `help:"Batch render parallelism (default: one per CPU)"`
}

func (c *WebCmd) Run(ctx context.Context) error {
	return web.Start(ctx, web.Config{
		Port:     c.Port,
		FontPath: CLI.Font,
		CacheDir: CLI.CacheDir,
		Workers:  c.Workers,
	})
}

// FetchCmd fetches the psalm text and warms the verse cache.
type FetchCmd struct{}

func (c *FetchCmd) Run(ctx context.Context) error {
	p, err := loadPsalm(ctx)
	if err != nil {
		return err
	}

	letters := make([]string, 0, psalm.StanzaCount)
	for _, s := range p.Stanzas() {
		letters = append(letters, string(s.Letter))
	}
	fmt.Printf("Psalm 119 loaded: %d verses, %d stanzas (%s)\n",
		psalm.VerseCount, psalm.StanzaCount, strings.Join(letters, " "))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(ctx context.Context) error {
	fmt.Printf("tehillim119 version %s\n", version)
	return nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("tehillim119"),
		kong.Description("Psalm 119 document generator for Hebrew names"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
