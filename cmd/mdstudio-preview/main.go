// Command mdstudio-preview renders one Markdown file the way the editor's
// preview pane does and prints the result.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-mdstudio/cmd/internal/bootstrap"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("mdstudio-preview: %v", err)
	}
}

func runPreview(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("mdstudio-preview", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		filePath   = flags.String("file", "", "Markdown file to preview")
		extensions = flags.String("extensions", "", "Comma separated goldmark extensions (defaults to gfm,linkify,tasklist)")
		hardWraps  = flags.Bool("hard-wraps", false, "Render soft line breaks as <br>")
		safeMode   = flags.Bool("safe", false, "Drop raw HTML from the output")
		asJSON     = flags.Bool("json", false, "Print the preview as JSON")
		logLevel   = flags.String("log-level", "error", "Minimum log level written to stderr")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return errors.New("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		LogWriter: stderr,
		LogLevel:  *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	source, err := module.ReadMarkdownFile(ctx, *filePath)
	if err != nil {
		return fmt.Errorf("read markdown file: %w", err)
	}

	preview, err := module.RenderMarkdown(ctx, source, interfaces.ParseOptions{
		Extensions: bootstrap.SplitList(*extensions),
		HardWraps:  *hardWraps,
		SafeMode:   *safeMode,
	})
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	if *asJSON {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(preview)
	}

	fmt.Fprintf(stdout, "Path: %s\nTitle: %s\n\n", *filePath, preview.Title)
	if len(preview.FrontMatter.Raw) > 0 {
		frontmatter, err := json.MarshalIndent(preview.FrontMatter.Raw, "", "  ")
		if err == nil {
			fmt.Fprintf(stdout, "Frontmatter:\n%s\n\n", frontmatter)
		}
	}
	fmt.Fprintf(stdout, "Rendered HTML:\n%s\n", preview.HTML)
	return nil
}
