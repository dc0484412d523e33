package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

const coxCSV = `Combination,Figure,Time,Survival
A+B,1,0,1.0
C+D,suppl,1,0.8
E+F,2,2,0.6
G+H,suppl,3,0.5
I+J,2,4,
`

func writeCoxFile(t *testing.T, content string) string {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CoxPHFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestParseCSV(t *testing.T) {
	Convey("When parsing a header-first CSV", t, func() {
		table, err := ParseCSV(strings.NewReader(coxCSV))
		So(err, ShouldBeNil)

		Convey("It should keep header order and row count", func() {
			So(table.Columns(), ShouldResemble, []string{"Combination", "Figure", "Time", "Survival"})
			So(table.Len(), ShouldEqual, 5)
			So(table.Index, ShouldResemble, []int{0, 1, 2, 3, 4})
		})

		Convey("It should convert numeric columns and load empty cells as NaN", func() {
			values, err := table.Float64s("Survival")
			So(err, ShouldBeNil)
			So(values[:4], ShouldResemble, []float64{1.0, 0.8, 0.6, 0.5})
			So(math.IsNaN(values[4]), ShouldBeTrue)
		})

		Convey("It should report absent columns as key errors", func() {
			_, err := table.Column("Hazard")
			So(errors.Cause(err), ShouldEqual, ErrColumnNotFound)
			So(table.Row(0).Get("Hazard"), ShouldEqual, "")
		})

		Convey("It should fail on non-numeric values", func() {
			_, err := table.Float64s("Combination")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `column "Combination", row 0`)
		})
	})

	Convey("When the CSV is malformed", t, func() {
		_, err := ParseCSV(strings.NewReader("a,b\n1,2,3\n"))
		So(err, ShouldNotBeNil)
	})

	Convey("When the CSV is empty", t, func() {
		_, err := ParseCSV(strings.NewReader(""))
		So(err, ShouldNotBeNil)
	})
}

func TestFilter(t *testing.T) {
	Convey("When filtering a table", t, func() {
		table, err := ParseCSV(strings.NewReader(coxCSV))
		So(err, ShouldBeNil)
		filtered := table.Filter(func(r Row) bool { return r.Get("Figure") == "2" })

		Convey("It should renumber rows and keep the previous labels", func() {
			So(filtered.Len(), ShouldEqual, 2)
			So(filtered.Index, ShouldResemble, []int{0, 1})
			previous, err := filtered.Column(IndexColumn)
			So(err, ShouldBeNil)
			So(previous, ShouldResemble, []string{"2", "4"})
			So(filtered.Columns()[0], ShouldEqual, IndexColumn)
		})

		Convey("It should leave the source table untouched", func() {
			So(table.Len(), ShouldEqual, 5)
			So(table.HasColumn(IndexColumn), ShouldBeFalse)
		})

		Convey("Filtering again should not add a second index column", func() {
			again := filtered.Filter(func(r Row) bool { return r.Get("Combination") == "I+J" })
			So(again.Columns(), ShouldResemble, []string{IndexColumn, "Combination", "Figure", "Time", "Survival"})
			So(again.Index, ShouldResemble, []int{0})
			previous, err := again.Column(IndexColumn)
			So(err, ShouldBeNil)
			So(previous, ShouldResemble, []string{"4"})
			So(filtered.Len(), ShouldEqual, 2)
		})
	})
}

func TestImporters(t *testing.T) {
	Convey("When importing the Cox PH results", t, func() {
		dir := writeCoxFile(t, coxCSV)

		indir, all, err := ImportInputDataIncludeSupplFrom(dir)
		So(err, ShouldBeNil)
		So(indir, ShouldEqual, dir)
		_, primary, err := ImportInputDataFrom(dir)
		So(err, ShouldBeNil)

		Convey("The filtered import should be the inclusive one without suppl rows", func() {
			So(primary.Len(), ShouldBeLessThanOrEqualTo, all.Len())
			So(primary.Len(), ShouldEqual, 3)

			combos, _ := primary.Column("Combination")
			So(combos, ShouldResemble, []string{"A+B", "E+F", "I+J"})
			for i := 0; i < primary.Len(); i++ {
				So(primary.Row(i).Get(FigureColumn), ShouldNotEqual, SupplementaryTag)
			}

			allCombos, _ := all.Column("Combination")
			suppl := 0
			for i := 0; i < all.Len(); i++ {
				if all.Row(i).Get(FigureColumn) == SupplementaryTag {
					suppl++
				}
			}
			So(len(allCombos)-suppl, ShouldEqual, primary.Len())
		})

		Convey("Each call should reread the file", func() {
			So(os.WriteFile(filepath.Join(dir, CoxPHFile), []byte("Figure\n1\n"), 0o644), ShouldBeNil)
			_, again, err := ImportInputDataIncludeSupplFrom(dir)
			So(err, ShouldBeNil)
			So(again.Len(), ShouldEqual, 1)
		})
	})

	Convey("When the file is missing", t, func() {
		_, _, err := ImportInputDataFrom(t.TempDir())
		So(err, ShouldNotBeNil)
		So(os.IsNotExist(errors.Cause(err)), ShouldBeTrue)
	})

	Convey("When the Figure column is missing", t, func() {
		dir := writeCoxFile(t, "Time,Survival\n0,1\n")
		_, _, err := ImportInputDataFrom(dir)
		So(errors.Cause(err), ShouldEqual, ErrColumnNotFound)
	})

	Convey("The fixed-path importers should read relative to the working directory", t, func() {
		root := t.TempDir()
		work := filepath.Join(root, "work")
		data := filepath.Join(root, "data", "PFS_predictions")
		So(os.MkdirAll(work, 0o755), ShouldBeNil)
		So(os.MkdirAll(data, 0o755), ShouldBeNil)
		So(os.WriteFile(filepath.Join(data, CoxPHFile), []byte(coxCSV), 0o644), ShouldBeNil)

		wd, err := os.Getwd()
		So(err, ShouldBeNil)
		So(os.Chdir(work), ShouldBeNil)
		defer os.Chdir(wd)

		indir, primary, err := ImportInputData()
		So(err, ShouldBeNil)
		So(indir, ShouldEqual, DefaultInputDir)
		So(primary.Len(), ShouldEqual, 3)

		_, all, err := ImportInputDataIncludeSuppl()
		So(err, ShouldBeNil)
		So(all.Len(), ShouldEqual, 5)
	})
}

func TestCountBy(t *testing.T) {
	Convey("When counting rows per Figure tag", t, func() {
		table, _ := ParseCSV(strings.NewReader(coxCSV))
		counts, order, err := CountBy(table, FigureColumn)
		So(err, ShouldBeNil)
		So(order, ShouldResemble, []string{"1", "suppl", "2"})
		So(counts, ShouldResemble, map[string]int{"1": 1, "suppl": 2, "2": 2})
	})
}
