package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kirillkom/doctype-classifier/internal/bootstrap"
	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
)

type textSource interface {
	ExtractBytes(fileName, mimeType string, raw []byte) (string, error)
}

type fileResult struct {
	Path     string          `json:"path"`
	Category domain.Category `json:"category"`
}

func newClassifyCmd(factory classifierFactory) *cobra.Command {
	var (
		concurrency int
		nameOnly    bool
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "classify [files...]",
		Short: "Classify local files by name and extracted text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("concurrency") {
				concurrency = cfg.CLIConcurrency
			}

			classifier, closeFn, err := factory(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			var text textSource
			if !nameOnly {
				text = bootstrap.NewExtractorRegistry(nil, cfg)
			}
			results, err := classifyFiles(cmd.Context(), classifier, text, args, concurrency)
			if err != nil {
				return err
			}
			return writeResults(cmd.OutOrStdout(), results, asJSON)
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 4, "files classified in parallel")
	cmd.Flags().BoolVar(&nameOnly, "name-only", false, "classify by file name without reading content")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON object per file")
	return cmd
}

// classifyFiles keeps results in input order. The first failure cancels the rest.
func classifyFiles(ctx context.Context, classifier ports.DocumentClassifier, text textSource, paths []string, concurrency int) ([]fileResult, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	results := make([]fileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			content, err := readContent(text, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			category, err := classifier.Classify(gctx, filepath.Base(path), content)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = fileResult{Path: path, Category: category}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// readContent returns "" for unsupported formats so they are classified by name.
func readContent(text textSource, path string) (string, error) {
	if text == nil {
		return "", nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content, err := text.ExtractBytes(filepath.Base(path), "", raw)
	if domain.IsKind(err, domain.ErrUnsupportedFormat) {
		return "", nil
	}
	return content, err
}

func writeResults(w io.Writer, results []fileResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Path, r.Category); err != nil {
			return err
		}
	}
	return nil
}
