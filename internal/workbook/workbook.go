// Package workbook provides password-aware access to spreadsheet export
// files. Opening a protected file walks an ordered list of (decoder,
// passphrase) attempts and short-circuits on the first success.
package workbook

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/chan22222/budget/internal/parsererror"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Workbook holds the decoded cell grid of an export file. Only the first
// sheet carries transaction data in every supported export.
type Workbook struct {
	sheetName string
	rows      [][]string
}

// SheetName returns the name of the first sheet.
func (w *Workbook) SheetName() string {
	return w.sheetName
}

// FirstSheetRows returns the first sheet as rows of cell strings.
func (w *Workbook) FirstSheetRows() [][]string {
	return w.rows
}

// Decoder decodes one workbook format with an optional passphrase.
type Decoder interface {
	Name() string
	Open(path, passphrase string) (*Workbook, error)
}

// ExcelizeDecoder decodes xlsx workbooks, including ECMA-376 encrypted ones.
type ExcelizeDecoder struct{}

// Name returns the decoder name for logging.
func (ExcelizeDecoder) Name() string { return "excelize" }

// Open decodes the workbook at path, decrypting with the passphrase when one
// is given.
func (ExcelizeDecoder) Open(path, passphrase string) (*Workbook, error) {
	opts := excelize.Options{}
	if passphrase != "" {
		opts.Password = passphrase
	}

	f, err := excelize.OpenFile(path, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %s", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}

	return &Workbook{sheetName: sheets[0], rows: rows}, nil
}

// Opener opens workbooks by trying an explicit passphrase, no passphrase,
// and then a configured fallback list, in that order, against each decoder.
type Opener struct {
	decoders  []Decoder
	fallbacks []string
}

// NewOpener creates an Opener with the default decoder set and the given
// fallback passphrase list.
func NewOpener(fallbacks []string) *Opener {
	return &Opener{
		decoders:  []Decoder{ExcelizeDecoder{}},
		fallbacks: fallbacks,
	}
}

// Open decodes the workbook at path. The explicit passphrase (if any) is
// tried first, then the empty passphrase, then the fallback list. Failures
// that look passphrase-related move on to the next candidate; anything else
// aborts immediately. When every candidate fails, the returned
// PassphraseError keeps the last decode error for diagnostics.
func (o *Opener) Open(path, passphrase string) (*Workbook, error) {
	candidates := o.candidates(passphrase)

	var lastErr error
	attempts := 0
	for _, d := range o.decoders {
		for _, pw := range candidates {
			wb, err := d.Open(path, pw)
			if err == nil {
				if pw != "" {
					log.WithFields(logrus.Fields{
						"file":    filepath.Base(path),
						"decoder": d.Name(),
					}).Debug("Workbook opened with passphrase")
				}
				return wb, nil
			}

			attempts++
			lastErr = err
			if !isPassphraseRelated(err) {
				return nil, err
			}
			log.WithError(err).WithField("file", filepath.Base(path)).
				Debug("Passphrase candidate failed")
		}
	}

	return nil, &parsererror.PassphraseError{
		Filename: filepath.Base(path),
		Attempts: attempts,
		Err:      lastErr,
	}
}

func (o *Opener) candidates(passphrase string) []string {
	candidates := make([]string, 0, len(o.fallbacks)+2)
	if passphrase != "" {
		candidates = append(candidates, passphrase)
	}
	candidates = append(candidates, "")
	candidates = append(candidates, o.fallbacks...)
	return candidates
}

// isPassphraseRelated reports whether a decode error plausibly means "wrong
// or missing passphrase" rather than a broken file. The substring list
// mirrors the error surface of the underlying decoders.
func isPassphraseRelated(err error) bool {
	if errors.Is(err, excelize.ErrWorkbookPassword) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"password", "encrypt", "cfb", "unsupported", "corrupt"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
