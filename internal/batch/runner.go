package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/docsift/pdf-report-extractor/internal/export"
	"github.com/docsift/pdf-report-extractor/internal/extract"
	"github.com/docsift/pdf-report-extractor/internal/logging"
	"github.com/docsift/pdf-report-extractor/internal/report"
)

// Runner extracts every report PDF in a directory through a bounded worker
// pool and writes one JSON document per file plus a run summary.
type Runner struct {
	service  *report.Service
	exporter *export.Exporter
	opts     Options
	logger   arbor.ILogger
}

// NewRunner creates a batch runner over the given service. Zero worker and
// timeout options fall back to the package defaults, and an empty output
// directory falls back to the scanned directory.
func NewRunner(service *report.Service, opts Options) (*Runner, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if opts.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	if opts.SpecPath == "" {
		return nil, fmt.Errorf("spec path cannot be empty")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = opts.Directory
	}
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.FileTimeout <= 0 {
		opts.FileTimeout = DefaultFileTimeout
	}

	return &Runner{
		service:  service,
		exporter: export.NewExporter(),
		opts:     opts,
		logger:   logging.Get(),
	}, nil
}

// Run extracts every report PDF found in the configured directory and
// returns the run summary. Individual file failures are recorded in the
// summary without aborting the run; only an unusable spec file, an empty
// directory, or an unwritable output location fails the run itself.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	specs, err := extract.LoadSpecFile(r.opts.SpecPath)
	if err != nil {
		return nil, err
	}

	files, err := r.service.FindInDirectory(r.opts.Directory)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no report PDFs found in %s", r.opts.Directory)
	}

	if err := os.MkdirAll(r.opts.OutputDir, 0o750); err != nil {
		return nil, fmt.Errorf("cannot create output directory %s: %w", r.opts.OutputDir, err)
	}

	runID := uuid.New().String()
	started := time.Now()

	r.logger.Info().
		Str("run_id", runID).
		Str("directory", r.opts.Directory).
		Int("files", len(files)).
		Int("workers", r.opts.Workers).
		Msg("Starting batch run")

	type fileResult struct {
		index  int
		report FileReport
		doc    *extract.Document
	}

	results := make(chan fileResult, len(files))
	sem := make(chan struct{}, r.opts.Workers)

	for i, f := range files {
		sem <- struct{}{}
		go func(index int, file report.FileInfo) {
			defer func() { <-sem }()

			fileCtx, cancel := context.WithTimeout(ctx, r.opts.FileTimeout)
			defer cancel()

			rep, doc := r.processFile(fileCtx, file, specs)
			results <- fileResult{index: index, report: rep, doc: doc}
		}(i, f)
	}

	reports := make([]FileReport, len(files))
	docs := make([]*extract.Document, len(files))
	for range files {
		res := <-results
		reports[res.index] = res.report
		docs[res.index] = res.doc
	}

	summary := &Summary{
		RunID:      runID,
		Directory:  r.opts.Directory,
		SpecFile:   r.opts.SpecPath,
		StartedAt:  started.Format("2006-01-02 15:04:05"),
		Workers:    r.opts.Workers,
		TotalFiles: len(files),
		Files:      reports,
	}
	for _, rep := range reports {
		if rep.Status == StatusOK {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	if r.opts.Combine {
		combined, err := r.writeCombined(files, docs)
		if err != nil {
			return nil, err
		}
		summary.CombinedOutput = combined
	}

	if r.opts.ExportXLSX {
		workbook, err := r.writeWorkbook(files, docs)
		if err != nil {
			return nil, err
		}
		summary.WorkbookOutput = workbook
	}

	if stats, err := r.service.StatsDirectory(report.StatsDirectoryRequest{Directory: r.opts.Directory}); err != nil {
		r.logger.Warn().Err(err).Msg("Directory statistics unavailable")
	} else {
		summary.DirectoryStats = stats
	}

	summary.DurationMS = time.Since(started).Milliseconds()

	if err := r.writeSummary(summary); err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("run_id", runID).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("Batch run complete")

	return summary, nil
}

// processFile extracts one report PDF and writes its document JSON. Failures
// come back as a failed report with the document absent.
func (r *Runner) processFile(ctx context.Context, file report.FileInfo, specs []extract.FieldSpec) (FileReport, *extract.Document) {
	started := time.Now()
	rep := FileReport{Path: file.Path, Name: file.Name}

	res, err := r.service.ExtractFile(ctx, report.ExtractFileRequest{Path: file.Path, Specs: specs})
	if err != nil {
		rep.Status = StatusFailed
		rep.Error = err.Error()
		rep.DurationMS = time.Since(started).Milliseconds()
		r.logger.Warn().Err(err).Str("file", file.Name).Msg("Extraction failed")
		return rep, nil
	}

	outPath := filepath.Join(r.opts.OutputDir, jsonName(file.Name))
	if err := writeDocumentJSON(outPath, res.Document); err != nil {
		rep.Status = StatusFailed
		rep.Error = err.Error()
		rep.DurationMS = time.Since(started).Milliseconds()
		r.logger.Warn().Err(err).Str("file", file.Name).Msg("Document write failed")
		return rep, nil
	}

	rep.Status = StatusOK
	rep.Fields = res.Fields
	rep.Diagnostics = res.Diagnostics
	rep.OutputPath = outPath
	rep.DurationMS = time.Since(started).Milliseconds()
	r.logger.Info().
		Str("file", file.Name).
		Int("fields", res.Fields).
		Int("diagnostics", len(res.Diagnostics)).
		Msg("Extracted report")
	return rep, res.Document
}

// writeCombined merges the successfully extracted documents in input order
// and writes them under a name derived from the input files. With nothing to
// combine it returns an empty path.
func (r *Runner) writeCombined(files []report.FileInfo, docs []*extract.Document) (string, error) {
	kept := make([]*extract.Document, 0, len(docs))
	names := make([]string, 0, len(docs))
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		kept = append(kept, doc)
		names = append(names, files[i].Name)
	}
	if len(kept) == 0 {
		r.logger.Warn().Msg("No documents to combine")
		return "", nil
	}

	merged := extract.MergeDocuments(kept)
	path := filepath.Join(r.opts.OutputDir, CommonName(names)+"_combined.json")
	if err := writeDocumentJSON(path, merged); err != nil {
		return "", err
	}

	r.logger.Info().
		Str("path", path).
		Int("documents", len(kept)).
		Msg("Wrote combined document")
	return path, nil
}

// writeWorkbook renders the successfully extracted documents as one xlsx
// workbook, one sheet per file. With nothing to render it returns an empty
// path.
func (r *Runner) writeWorkbook(files []report.FileInfo, docs []*extract.Document) (string, error) {
	named := make([]export.NamedDocument, 0, len(docs))
	names := make([]string, 0, len(docs))
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		named = append(named, export.NamedDocument{Name: files[i].Name, Document: doc})
		names = append(names, files[i].Name)
	}
	if len(named) == 0 {
		r.logger.Warn().Msg("No documents to export")
		return "", nil
	}

	path := filepath.Join(r.opts.OutputDir, CommonName(names)+".xlsx")
	if err := r.exporter.WriteWorkbook(named, path); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Runner) writeSummary(summary *Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode summary: %w", err)
	}

	path := filepath.Join(r.opts.OutputDir, SummaryFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write summary %s: %w", path, err)
	}

	r.logger.Info().Str("path", path).Msg("Wrote batch summary")
	return nil
}

func writeDocumentJSON(path string, doc *extract.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

// jsonName maps a report file name to its document output name.
func jsonName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
}
