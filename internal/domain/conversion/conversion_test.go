package conversion_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/skillrate/internal/domain/conversion"
	"github.com/okian/skillrate/internal/domain/model"
	"github.com/okian/skillrate/pkg/rating"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultRegistry(t *testing.T) {
	Convey("Given the default registry", t, func() {
		reg := conversion.DefaultRegistry()
		ctx := context.Background()

		Convey("Then it should list exactly the three built-in pairs", func() {
			So(reg.Supported(), ShouldResemble, []conversion.Pair{
				{From: model.Elo, To: model.DWZ},
				{From: model.Elo, To: model.Ingo},
				{From: model.Ingo, To: model.Elo},
			})
		})

		Convey("When converting Elo 1000 to Ingo", func() {
			out, err := reg.Convert(ctx, model.FromElo(rating.EloRating{Rating: 1000}), model.Ingo)

			Convey("Then it should yield Ingo 230 with age 26", func() {
				So(err, ShouldBeNil)
				i, err := out.AsIngo()
				So(err, ShouldBeNil)
				So(i.Equal(rating.IngoRating{Rating: 230, Age: 26}), ShouldBeTrue)
			})
		})

		Convey("When converting Ingo 230 to Elo", func() {
			out, err := reg.Convert(ctx, model.FromIngo(rating.NewIngoRating()), model.Elo)

			Convey("Then it should yield Elo 1000", func() {
				So(err, ShouldBeNil)
				So(out.System, ShouldEqual, model.Elo)
				So(out.Rating, ShouldEqual, 1000.0)
				So(out.Age, ShouldBeNil)
			})
		})

		Convey("When converting Elo 1800 to DWZ", func() {
			out, err := reg.Convert(ctx, model.FromElo(rating.EloRating{Rating: 1800}), model.DWZ)

			Convey("Then it should yield DWZ 1800 with index 6 and age 26", func() {
				So(err, ShouldBeNil)
				d, err := out.AsDWZ()
				So(err, ShouldBeNil)
				So(d.Equal(rating.DWZRating{Rating: 1800, Index: 6, Age: 26}), ShouldBeTrue)
			})
		})

		Convey("When converting to the same system", func() {
			in := model.FromGlicko(rating.GlickoRating{Rating: 1620, Deviation: 80})
			out, err := reg.Convert(ctx, in, model.Glicko)

			Convey("Then the input should come back unchanged", func() {
				So(err, ShouldBeNil)
				So(out, ShouldResemble, in)
			})
		})

		Convey("When converting a pair without a formula", func() {
			unsupported := []struct {
				in model.Rating
				to model.System
			}{
				{model.FromGlicko(rating.NewGlickoRating()), model.Elo},
				{model.FromTrueSkill(rating.NewTrueSkillRating()), model.Elo},
				{model.FromElo(rating.NewEloRating()), model.Glicko2},
				{model.FromDWZ(rating.DWZRating{Rating: 1500, Index: 6, Age: 26}), model.Elo},
				{model.FromIngo(rating.NewIngoRating()), model.DWZ},
			}

			Convey("Then it should fail with ErrUnsupportedConversion instead of chaining formulas", func() {
				for _, c := range unsupported {
					_, err := reg.Convert(ctx, c.in, c.to)
					So(errors.Is(err, conversion.ErrUnsupportedConversion), ShouldBeTrue)
				}
			})
		})

		Convey("When the input breaks an invariant", func() {
			dev := -5.0
			_, err := reg.Convert(ctx, model.Rating{System: model.Glicko, Rating: 1500, Deviation: &dev}, model.Glicko)

			Convey("Then it should fail with ErrInvalidInput", func() {
				So(errors.Is(err, conversion.ErrInvalidInput), ShouldBeTrue)
				So(errors.Is(err, model.ErrInvalidRating), ShouldBeTrue)
			})
		})

		Convey("When a finite Ingo overflows the Elo range", func() {
			_, low := reg.Convert(ctx, model.Rating{System: model.Ingo, Rating: -1e308}, model.Elo)
			_, high := reg.Convert(ctx, model.Rating{System: model.Ingo, Rating: 1e308}, model.Elo)

			Convey("Then it should fail with ErrOutOfRange", func() {
				So(errors.Is(low, conversion.ErrOutOfRange), ShouldBeTrue)
				So(errors.Is(high, conversion.ErrOutOfRange), ShouldBeTrue)
				So(errors.Is(low, conversion.ErrInvalidInput), ShouldBeFalse)
			})
		})

		Convey("When the target is unknown", func() {
			_, err := reg.Convert(ctx, model.FromElo(rating.NewEloRating()), "fide")

			Convey("Then it should fail with ErrUnknownSystem", func() {
				So(errors.Is(err, model.ErrUnknownSystem), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := reg.Convert(cctx, model.FromElo(rating.NewEloRating()), model.Ingo)

			Convey("Then it should fail with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestCustomRegistry(t *testing.T) {
	Convey("Given an empty registry", t, func() {
		reg := conversion.NewRegistry()

		Convey("Then it should support nothing", func() {
			So(reg.Supported(), ShouldBeEmpty)
			So(reg.Supports(conversion.Pair{From: model.Elo, To: model.Ingo}), ShouldBeFalse)
		})
	})

	Convey("Given a registry with a custom formula", t, func() {
		p := conversion.Pair{From: model.Glicko, To: model.Elo}
		reg := conversion.NewRegistry(
			conversion.WithDefaultConversions(),
			conversion.WithConversion(p, func(in model.Rating) (model.Rating, error) {
				return model.Rating{System: model.Elo, Rating: in.Rating}, nil
			}),
			conversion.WithConversion(conversion.Pair{From: model.Elo, To: model.Elo}, func(in model.Rating) (model.Rating, error) {
				return in, nil
			}),
		)

		Convey("Then the custom pair should be supported alongside the built-ins", func() {
			So(reg.Supports(p), ShouldBeTrue)
			So(len(reg.Supported()), ShouldEqual, 4)
		})

		Convey("When converting with it", func() {
			out, err := reg.Convert(context.Background(), model.FromGlicko(rating.NewGlickoRating()), model.Elo)

			Convey("Then it should use the custom formula", func() {
				So(err, ShouldBeNil)
				So(out.Rating, ShouldEqual, 1500.0)
			})
		})
	})
}
