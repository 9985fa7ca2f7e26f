// Command indexer walks a directory of rendered HTML pages and emits the
// two NECMP index artifacts consumed by the online search/filter engines.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/newechoes/necmp/internal/codec"
	"github.com/newechoes/necmp/internal/extractor"
	"github.com/newechoes/necmp/internal/filterindex"
	"github.com/newechoes/necmp/internal/indexmodel"
	"github.com/newechoes/necmp/internal/searchindex"
)

func main() {
	cfg := loadConfig(os.Args[1:])

	logLevel := slog.LevelInfo
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if cfg.Source == "" || cfg.Output == "" {
		fmt.Println("❌ --source and --output are required")
		os.Exit(1)
	}

	osFs := afero.NewOsFs()

	info, err := osFs.Stat(cfg.Source)
	if err != nil || !info.IsDir() {
		fmt.Printf("❌ 错误: 源目录不存在或不是有效目录 '%s'\n", cfg.Source)
		os.Exit(1)
	}

	if err := osFs.MkdirAll(cfg.Output, 0o755); err != nil {
		fmt.Printf("❌ 错误: 无法创建输出目录 '%s': %v\n", cfg.Output, err)
		os.Exit(1)
	}

	fmt.Println("开始生成索引...")
	fmt.Printf("源目录: %s\n", cfg.Source)
	fmt.Printf("输出目录: %s\n", cfg.Output)

	start := time.Now()
	if err := generateIndex(osFs, cfg, logger); err != nil {
		fmt.Printf("❌ 错误: 索引生成失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("索引生成完成！耗时: %.2f秒\n", time.Since(start).Seconds())
	fmt.Println("✅ 索引生成成功！")
}

func generateIndex(fs afero.Fs, cfg *Config, logger *slog.Logger) error {
	fmt.Println("扫描HTML文件...")

	scan, err := extractor.ScanDir(fs, cfg.Source, extractor.Options{IndexAll: cfg.All, Now: time.Now().UTC()}, logger)
	if err != nil {
		return fmt.Errorf("walk source directory: %w", err)
	}

	skipped := scan.TotalFiles - scan.ArticleFiles
	fmt.Printf("扫描完成。找到 %d 篇有效文章，跳过 %d 个文件。\n", len(scan.Articles), skipped)

	if len(scan.Articles) == 0 {
		return fmt.Errorf("generate index: %w", indexmodel.ErrEmptyInput)
	}

	filterBuilder := filterindex.NewBuilder(logger)
	searchBuilder := searchindex.NewBuilder(logger)
	for _, article := range scan.Articles {
		filterBuilder.Add(article)
		searchBuilder.Add(article)
	}

	fmt.Println("正在生成和保存索引...")

	filterIdx, err := filterBuilder.Build()
	if err != nil {
		return fmt.Errorf("build filter index: %w", err)
	}
	searchIdx, err := searchBuilder.Build()
	if err != nil {
		return fmt.Errorf("build search index: %w", err)
	}

	if err := writeArtifact(fs, cfg.Output+"/filter_index.bin", filterIdx, codec.FilterVersion); err != nil {
		return err
	}
	if err := writeArtifact(fs, cfg.Output+"/search_index.bin", searchIdx, codec.SearchVersion); err != nil {
		return err
	}

	fstats := filterindex.Stats(filterIdx)
	sstats := searchindex.Stats(searchIdx)
	fmt.Println("索引构建统计:")
	fmt.Printf("- 文章数量: %d\n", sstats.ArticleCount)
	fmt.Printf("- 标签数量: %d\n", fstats.TagCount)
	fmt.Printf("- 标题词汇: %d\n", sstats.TitleTerms)
	fmt.Printf("- 标题结构: %d\n", sstats.HeadingCount)
	fmt.Printf("- 内容词汇: %d\n", sstats.ContentTerms)
	fmt.Printf("- 常用词汇: %d\n", sstats.CommonTerms)

	return nil
}

func writeArtifact(fs afero.Fs, path string, obj any, version codec.Version) error {
	data, err := codec.Encode(obj, version)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Printf("📦 %s 已写入，大小: %d 字节\n", path, len(data))
	return nil
}
