// Package pipeline wires workbook decoding, institution detection and
// extraction into the operations the command layer consumes.
package pipeline

import (
	"errors"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chan22222/budget/internal/categorizer"
	"github.com/chan22222/budget/internal/models"
	"github.com/chan22222/budget/internal/parser"
	"github.com/chan22222/budget/internal/parsererror"
	"github.com/chan22222/budget/internal/workbook"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileStatus reports the per-file outcome of a batch run.
type FileStatus string

const (
	StatusOK             FileStatus = "success"
	StatusNeedPassphrase FileStatus = "need_passphrase"
	StatusError          FileStatus = "error"
)

// FileResult is one file's outcome inside a batch. Err is set for the
// need_passphrase and error statuses.
type FileResult struct {
	Name   string
	Status FileStatus
	Count  int
	Err    error
}

// BatchResult aggregates a multi-file run: every file's outcome plus the
// merged transactions sorted by date.
type BatchResult struct {
	Transactions []models.Transaction
	Files        []FileResult
}

// NeedPassphrase lists the files that failed only for want of a passphrase.
func (r BatchResult) NeedPassphrase() []string {
	var names []string
	for _, f := range r.Files {
		if f.Status == StatusNeedPassphrase {
			names = append(names, f.Name)
		}
	}
	return names
}

// Pipeline runs detect → extract over export files.
type Pipeline struct {
	opener *workbook.Opener
	cat    *categorizer.Categorizer
}

// New creates a Pipeline using the given workbook opener and categorizer.
func New(opener *workbook.Opener, cat *categorizer.Categorizer) *Pipeline {
	return &Pipeline{opener: opener, cat: cat}
}

// DetectAndExtract opens one export file, detects its institution and runs
// the matching extractor. Transactions come back in source row order.
func (p *Pipeline) DetectAndExtract(path, passphrase string) ([]models.Transaction, error) {
	wb, err := p.opener.Open(path, passphrase)
	if err != nil {
		return nil, err
	}

	rows := wb.FirstSheetRows()
	source, err := parser.Detect(rows, path)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"file":   filepath.Base(path),
		"source": source,
	}).Info("Detected institution")

	extractor, err := parser.New(source, p.cat)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(rows)
}

// ProcessFiles runs DetectAndExtract over several files concurrently. Each
// file is independent, so a failure (including a missing passphrase) is
// recorded in that file's result and never aborts the batch. The merged
// output is re-sorted by date because per-file goroutines complete out of
// order.
func (p *Pipeline) ProcessFiles(paths []string, passphrase string) BatchResult {
	results := make([]FileResult, len(paths))
	perFile := make([][]models.Transaction, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			name := filepath.Base(path)
			transactions, err := p.DetectAndExtract(path, passphrase)
			if err != nil {
				var passErr *parsererror.PassphraseError
				if errors.As(err, &passErr) {
					results[i] = FileResult{Name: name, Status: StatusNeedPassphrase, Err: err}
				} else {
					results[i] = FileResult{Name: name, Status: StatusError, Err: err}
				}
				log.WithError(err).WithField("file", name).Warn("Failed to parse file")
				return
			}

			perFile[i] = transactions
			results[i] = FileResult{Name: name, Status: StatusOK, Count: len(transactions)}
		}(i, path)
	}
	wg.Wait()

	var all []models.Transaction
	for _, transactions := range perFile {
		all = append(all, transactions...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date < all[j].Date
	})

	return BatchResult{Transactions: all, Files: results}
}
