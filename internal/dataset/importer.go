package dataset

import (
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// DefaultInputDir is resolved against the working directory of the process.
	DefaultInputDir = "../data/PFS_predictions/"
	// CoxPHFile holds the Cox proportional-hazards test results.
	CoxPHFile = "cox_ph_test.csv"

	// FigureColumn tags each combination with the figure it belongs to.
	FigureColumn = "Figure"
	// SupplementaryTag marks rows that belong to supplementary material.
	SupplementaryTag = "suppl"
)

// ImportInputData imports the Cox PH test results excluding supplementary
// combinations. It returns the input directory and the renumbered table.
func ImportInputData() (string, *Table, error) {
	return ImportInputDataFrom(DefaultInputDir)
}

// ImportInputDataIncludeSuppl imports the Cox PH test results including
// supplementary combinations.
func ImportInputDataIncludeSuppl() (string, *Table, error) {
	return ImportInputDataIncludeSupplFrom(DefaultInputDir)
}

// ImportInputDataFrom is ImportInputData reading from dir.
func ImportInputDataFrom(dir string) (string, *Table, error) {
	indir, coxDF, err := ImportInputDataIncludeSupplFrom(dir)
	if err != nil {
		return indir, nil, err
	}
	if !coxDF.HasColumn(FigureColumn) {
		return indir, nil, errors.Wrapf(ErrColumnNotFound, "%q in %s", FigureColumn, CoxPHFile)
	}
	return indir, ExcludeSupplementary(coxDF), nil
}

// ImportInputDataIncludeSupplFrom is ImportInputDataIncludeSuppl reading from dir.
func ImportInputDataIncludeSupplFrom(dir string) (string, *Table, error) {
	coxDF, err := ReadCSV(filepath.Join(dir, CoxPHFile))
	if err != nil {
		return dir, nil, err
	}
	return dir, coxDF, nil
}

// ExcludeSupplementary drops rows tagged as supplementary and renumbers the rest.
func ExcludeSupplementary(t *Table) *Table {
	return t.Filter(func(r Row) bool {
		return r.Get(FigureColumn) != SupplementaryTag
	})
}

// CountBy returns the number of rows per distinct value of column, and the
// values in order of first appearance.
func CountBy(t *Table, column string) (map[string]int, []string, error) {
	values, err := t.Column(column)
	if err != nil {
		return nil, nil, err
	}
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	return counts, order, nil
}
