package annotation

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/ssnmovie/pkg/errors"
)

// Required column names of a normalized table.
const (
	HitIDColumn = "Hit_Id"
	GeneColumn  = "Gene"
)

// Unannotated is the eggNOG placeholder for a hit without a gene name.
const Unannotated = "-"

// Record links a sequence identifier to a gene label.
type Record struct {
	HitID string
	Gene  string
}

// Kind identifies an annotation table flavor.
type Kind int

const (
	Kofam Kind = iota
	EggNOG
	Custom
)

// String returns the lowercase flag name of the kind.
func (k Kind) String() string {
	switch k {
	case Kofam:
		return "kofam"
	case EggNOG:
		return "eggnog"
	case Custom:
		return "annotation"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Dir returns the output subdirectory for frames colored by this kind.
func (k Kind) Dir() string {
	switch k {
	case Kofam:
		return "KOFAM"
	case EggNOG:
		return "EGGNOG"
	}
	return "ANNOTATION"
}

// columns returns the raw header names mapped to Hit_Id and Gene.
func (k Kind) columns() (hit, gene string) {
	if k == EggNOG {
		return "query", "Preferred_name"
	}
	return HitIDColumn, GeneColumn
}

// ParseKind maps a flag name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kofam":
		return Kofam, nil
	case "eggnog":
		return EggNOG, nil
	case "annotation", "custom":
		return Custom, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown annotation kind %q (must be kofam, eggnog or annotation)", s)
}

// Source is one annotation table to sweep with.
type Source struct {
	Kind Kind
	Path string
}

// Name returns the output directory name of the source.
func (s Source) Name() string { return s.Kind.Dir() }

// Read opens and parses the table of the source.
func (s Source) Read() ([]Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s table %s", s.Kind, s.Path)
		}
		return nil, errors.Wrap(errors.ErrCodeInputFormat, err, "open %s", s.Path)
	}
	defer f.Close()

	recs, err := Parse(f, s.Kind)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) {
			return nil, &errors.Error{Code: e.Code, Message: s.Path + ": " + e.Message, Cause: e.Cause}
		}
		return nil, errors.Wrap(errors.ErrCodeInputFormat, err, "read %s", s.Path)
	}
	return recs, nil
}

// Parse reads a tab-separated annotation table of the given kind from r.
// Records keep table order. Rows with an empty Hit_Id or gene are dropped,
// as are eggNOG rows whose gene is "-".
func Parse(r io.Reader, kind Kind) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	hitName, geneName := kind.columns()
	hitCol, geneCol := -1, -1
	var records []Record

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInputFormat, err, "parse %s table", kind)
		}
		if len(row) == 0 {
			continue
		}

		if hitCol < 0 {
			if isComment(row) && !isHeader(row, hitName) {
				continue
			}
			hitCol, geneCol = headerIndex(row, hitName, geneName)
			if hitCol < 0 || geneCol < 0 {
				return nil, schemaError(kind, hitName, geneName)
			}
			continue
		}

		if isComment(row) {
			continue
		}
		rec := Record{HitID: field(row, hitCol), Gene: field(row, geneCol)}
		if rec.HitID == "" || rec.Gene == "" {
			continue
		}
		if kind == EggNOG && rec.Gene == Unannotated {
			continue
		}
		records = append(records, rec)
	}

	if hitCol < 0 {
		return nil, schemaError(kind, hitName, geneName)
	}
	return records, nil
}

func schemaError(kind Kind, hitName, geneName string) error {
	if kind == EggNOG {
		return errors.New(errors.ErrCodeSchema,
			"eggnog table must have %q and %q columns (mapped to %s and %s)", hitName, geneName, HitIDColumn, GeneColumn)
	}
	return errors.New(errors.ErrCodeSchema,
		"%s table must have %s and %s columns", kind, HitIDColumn, GeneColumn)
}

func isComment(row []string) bool {
	return strings.HasPrefix(row[0], "#")
}

func isHeader(row []string, hitName string) bool {
	return strings.TrimSpace(strings.TrimLeft(row[0], "#")) == hitName
}

func headerIndex(row []string, hitName, geneName string) (hit, gene int) {
	hit, gene = -1, -1
	for i, name := range row {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimSpace(strings.TrimLeft(name, "#"))
		}
		switch name {
		case hitName:
			if hit < 0 {
				hit = i
			}
		case geneName:
			if gene < 0 {
				gene = i
			}
		}
	}
	return hit, gene
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
