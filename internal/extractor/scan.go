package extractor

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/newechoes/necmp/internal/indexmodel"
)

// ScanResult summarizes a directory scan: the extracted articles plus
// counters for the CLI's status line.
type ScanResult struct {
	Articles     []indexmodel.ArticleMetadata
	TotalFiles   int
	ArticleFiles int
}

// ScanDir walks root on srcFs for *.html files and extracts ArticleMetadata
// from each, skipping anything Extract rejects. Per-file parse errors are
// logged and skipped rather than aborting the whole scan, matching the
// original indexer's "skip and keep going" behavior.
func ScanDir(srcFs afero.Fs, root string, opts Options, logger *slog.Logger) (ScanResult, error) {
	var result ScanResult

	err := afero.Walk(srcFs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}
		result.TotalFiles++

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		f, err := srcFs.Open(path)
		if err != nil {
			logger.Warn("open article file failed", "path", path, "error", err)
			return nil
		}
		article, err := Extract(f, rel, opts)
		closeErr := f.Close()
		if err != nil {
			logger.Warn("parse article file failed", "path", path, "error", err)
			return nil
		}
		if closeErr != nil {
			logger.Warn("close article file failed", "path", path, "error", closeErr)
		}
		if article == nil {
			return nil
		}
		result.Articles = append(result.Articles, *article)
		result.ArticleFiles++
		return nil
	})
	if err != nil {
		return result, err
	}
	return result, nil
}
