package palette

import (
	"image/color"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModelColors(t *testing.T) {
	Convey("When asking for the model colors", t, func() {
		colors := ModelColors()

		Convey("It should define exactly the five trial arms", func() {
			So(len(colors), ShouldEqual, 5)
			So(Labels(), ShouldResemble, []string{"HSA", "additive", "combo", "control", "experimental"})
		})

		Convey("HSA and additive should be normalized RGB triples", func() {
			So(colors[HSA].RGB, ShouldResemble, [3]float64{0.0, 0.5019607843137255, 1.0})
			So(colors[HSA].Name, ShouldBeEmpty)
			So(colors[Additive].RGB, ShouldResemble, [3]float64{200.0 / 255, 0, 50.0 / 255})
		})

		Convey("The remaining arms should be named colors", func() {
			So(colors[Control].Name, ShouldEqual, "orange")
			So(colors[Experimental].Name, ShouldEqual, "green")
			So(colors[Combo].Name, ShouldEqual, "black")
		})

		Convey("Every call should return the same values in a fresh map", func() {
			colors[HSA] = Color{Name: "pink"}
			So(ModelColors()[HSA].RGB, ShouldResemble, [3]float64{0.0, 0.5019607843137255, 1.0})
		})
	})

	Convey("When used as image colors", t, func() {
		So(color.RGBAModel.Convert(Lookup(HSA)), ShouldResemble, color.RGBA{R: 0, G: 128, B: 255, A: 255})
		So(color.RGBAModel.Convert(Lookup(Additive)), ShouldResemble, color.RGBA{R: 200, G: 0, B: 50, A: 255})
		So(color.RGBAModel.Convert(Lookup(Experimental)), ShouldResemble, color.RGBA{R: 0, G: 128, B: 0, A: 255})
		So(color.RGBAModel.Convert(Lookup(Combo)), ShouldResemble, color.RGBA{A: 255})
		So(Lookup("placebo"), ShouldResemble, Unknown)
		So(Lookup(Control).String(), ShouldEqual, "orange")
	})
}
