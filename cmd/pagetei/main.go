// pagetei is a command-line tool for converting PAGE layout-analysis XML
// documents into one TEI drama document.
//
// Each input file describes one scanned page: its text regions, their
// polygons, and per-line transcription alternatives, with each region
// pre-classified by the upstream OCR/layout tool. pagetei recovers the
// per-page reading order from the declared ordered region group, folds the
// resulting region stream into nested act/scene/speech structure, and streams
// the TEI document to the output file. Wherever the structure cannot be
// inferred confidently, a literal WARNING! placeholder is emitted instead;
// search the output for it.
//
// Configuration:
//
// An optional YAML configuration file adjusts the document envelope and
// logging:
//
//	document:
//	  id: "ger000"
//	  language: "de"
//	  stylesheet: "../css/tei.css"
//	  schema: "https://dracor.org/schema.rng"
//	logging:
//	  level: "info"
//	  format: "text"
//	  file: ""
//
// Usage:
//
//	pagetei -pages input-dir -out drama.xml [options]
//
// Required flags:
//
//	-pages string  Directory containing PAGE XML files, converted in
//	               lexicographic file-name order (required if -files is not defined)
//	-files string  Comma separated list of PAGE XML files (required if -pages is not defined)
//	-out string    Path of the TEI document to write
//
// Options:
//
//	-config string  Path to the YAML configuration file
//	-proof string   Path to save a reading-order proof PDF
//
// Example:
//
//	pagetei -pages scans/page-xml -out output/drama.xml -proof output/proof.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kmajora/pagetei/internal/log"
	"github.com/kmajora/pagetei/pkg/drama"
	"github.com/kmajora/pagetei/pkg/pagexml"
	"github.com/kmajora/pagetei/pkg/proofsheet"
	"github.com/kmajora/pagetei/pkg/tei"
)

type yamlConfig struct {
	Document struct {
		ID         string `yaml:"id"`
		Language   string `yaml:"language"`
		Stylesheet string `yaml:"stylesheet"`
		Schema     string `yaml:"schema"`
	} `yaml:"document"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		File   string `yaml:"file"`
	} `yaml:"logging"`
}

// loadConfig reads a YAML file and maps it onto the document meta and
// logging options, starting from defaults.
func loadConfig(path string) (tei.DocumentMeta, log.Options, error) {
	meta := tei.DefaultMeta()
	opts := log.FromEnv()
	if path == "" {
		return meta, opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, opts, err
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return meta, opts, err
	}
	if yc.Document.ID != "" {
		meta.ID = yc.Document.ID
	}
	if yc.Document.Language != "" {
		meta.Language = yc.Document.Language
	}
	if yc.Document.Stylesheet != "" {
		meta.Stylesheet = yc.Document.Stylesheet
	}
	if yc.Document.Schema != "" {
		meta.Schema = yc.Document.Schema
	}
	if yc.Logging.Level != "" {
		opts.Level = yc.Logging.Level
	}
	if yc.Logging.Format != "" {
		opts.Format = yc.Logging.Format
	}
	if yc.Logging.File != "" {
		opts.File = yc.Logging.File
	}
	return meta, opts, nil
}

func main() {
	pagesDir := flag.String("pages", "", "Directory containing PAGE XML files (required if -files not specified)")
	filesList := flag.String("files", "", "Comma-separated list of PAGE XML files (required if -pages not specified)")
	outPath := flag.String("out", "", "Path of the TEI document to write (required)")
	configPath := flag.String("config", "", "Path to the config YAML file")
	proofPath := flag.String("proof", "", "Path to save a reading-order proof PDF")

	flag.Parse()

	// Create a map of provided flags to validate
	providedFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		providedFlags[f.Name] = true
	})

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -out flag is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate that either pages or files flag is provided (but not both)
	if (*pagesDir == "" && *filesList == "") || (*pagesDir != "" && *filesList != "") {
		fmt.Fprintln(os.Stderr, "Error: Either -pages or -files flag must be provided (but not both)")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	hasError := false
	validateFlag := func(name string, value string) {
		if providedFlags[name] && value == "" {
			fmt.Fprintf(os.Stderr, "Error: -%s flag requires a value\n", name)
			hasError = true
		}
	}
	validateFlag("config", *configPath)
	validateFlag("proof", *proofPath)
	if hasError {
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	meta, logOpts, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log.Init(logOpts)
	logger := log.L()

	paths, err := collectPages(*pagesDir, *filesList)
	if err != nil {
		logger.Error("failed to collect input pages", "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Error("no PAGE XML files found")
		os.Exit(1)
	}
	sort.Strings(paths)
	logger.Info("converting pages", "count", len(paths), "out", *outPath)

	out, err := os.Create(*outPath)
	if err != nil {
		logger.Error("failed to create output file", "error", err)
		os.Exit(1)
	}

	conv := drama.New(out, meta, logger)
	if err := conv.Run(context.Background(), drama.NewFilePageSource(paths)); err != nil {
		logger.Error("conversion failed", "error", err)
		out.Close()
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		logger.Error("failed to close output file", "error", err)
		os.Exit(1)
	}
	logger.Info("TEI document written", "path", *outPath)

	if *proofPath != "" {
		if err := writeProof(paths, *proofPath); err != nil {
			logger.Error("failed to write proof sheet", "error", err)
			os.Exit(1)
		}
		logger.Info("proof sheet written", "path", *proofPath)
	}
}

// collectPages returns the input file paths in lexicographic order.
func collectPages(dir, list string) ([]string, error) {
	if list != "" {
		var paths []string
		for _, p := range strings.Split(list, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				paths = append(paths, p)
			}
		}
		return paths, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// writeProof parses the pages a second time and renders the proof PDF.
func writeProof(paths []string, path string) error {
	var pages []pagexml.Page
	for _, p := range paths {
		page, err := pagexml.ParseFile(p)
		if err != nil {
			return err
		}
		pages = append(pages, page)
	}
	pdfBytes, err := proofsheet.Render(pages, proofsheet.DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, pdfBytes, 0644)
}
