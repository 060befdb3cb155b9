package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	service "github.com/okian/ringside/internal/app"
	"github.com/okian/ringside/internal/domain/booking"
	"github.com/okian/ringside/internal/domain/catalog"
	"github.com/okian/ringside/internal/domain/engine"
	"github.com/okian/ringside/internal/domain/model"
	"github.com/okian/ringside/internal/domain/roster"
	"github.com/okian/ringside/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func started(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithRoster(roster.Defaults()),
		service.WithCatalog(catalog.Defaults()),
	}
	svc := service.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func competitor(svc *service.Service, id string) model.Competitor {
	for _, c := range svc.Roster() {
		if c.ID == id {
			return c
		}
	}
	panic("missing competitor " + id)
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()

		Convey("When it has not been started", func() {
			_, err := svc.Book(context.Background(), "asha", "rohan", "singles")

			Convey("Then booking fails", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})

		Convey("When started without data files", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			defer svc.Stop()

			Convey("Then it falls back to the built-in roster and catalog", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["rosterSource"], ShouldEqual, roster.SourceDefaults)
				So(stats["catalogSource"], ShouldEqual, catalog.SourceDefaults)
				So(len(svc.Roster()), ShouldEqual, 8)
				So(len(svc.Categories()), ShouldEqual, 10)
				So(svc.Seed(), ShouldEqual, 1)
			})

			Convey("And started twice", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
				So(svc.GetStats()["started"], ShouldEqual, true)
			})
		})

		Convey("When started then stopped", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			svc.Stop()
			svc.Stop()

			Convey("Then it reports stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Validate(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()

		Convey("Then a well formed booking passes", func() {
			So(svc.Validate(ctx, "asha", "rohan", "singles"), ShouldBeNil)
		})

		Convey("Then validator failures are reported by name", func() {
			So(errors.Is(svc.Validate(ctx, "", "rohan", "singles"), booking.ErrMissingCompetitor), ShouldBeTrue)
			So(errors.Is(svc.Validate(ctx, "asha", "asha", "singles"), booking.ErrSameCompetitor), ShouldBeTrue)
			So(errors.Is(svc.Validate(ctx, "asha", "rohan", ""), booking.ErrMissingCategory), ShouldBeTrue)
			So(errors.Is(svc.Validate(ctx, "asha", "rohan", "sumo"), booking.ErrUnknownCategory), ShouldBeTrue)
		})

		Convey("Then a competitor missing from the roster is a lookup failure", func() {
			err := svc.Validate(ctx, "asha", "ghost", "singles")
			So(errors.Is(err, engine.ErrLookup), ShouldBeTrue)
		})

		Convey("Then rejected bookings do not advance the seed", func() {
			_, err := svc.Book(ctx, "asha", "asha", "singles")
			So(err, ShouldNotBeNil)
			So(svc.Seed(), ShouldEqual, 1)
		})
	})
}

func TestService_Book(t *testing.T) {
	Convey("Given a started service with seed 1", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()
		before := map[string]model.Competitor{
			"asha":  competitor(svc, "asha"),
			"rohan": competitor(svc, "rohan"),
		}

		Convey("When a booking is made", func() {
			res, err := svc.Book(ctx, "asha", "rohan", "hardcore")
			So(err, ShouldBeNil)

			Convey("Then it matches the engine at seed 1", func() {
				bk, _ := booking.New("asha", "rohan", "hardcore", nil)
				want, _ := engine.Simulate(bk, roster.Defaults(), catalog.Defaults(), 1)
				So(res, ShouldResemble, want)
			})

			Convey("Then the deltas are applied with clamping", func() {
				for id, c := range before {
					d := res.Deltas[id]
					got := competitor(svc, id)
					So(got.Popularity, ShouldEqual, model.Clamp(c.Popularity+d.Popularity))
					So(got.Stamina, ShouldEqual, model.Clamp(c.Stamina+d.Stamina))
				}
			})

			Convey("Then the seed advances and the result is remembered", func() {
				So(svc.Seed(), ShouldEqual, 2)
				last, ok := svc.LastResult()
				So(ok, ShouldBeTrue)
				So(last, ShouldResemble, res)
				So(svc.GetStats()["applied"], ShouldEqual, 1)
			})
		})

		Convey("When the same pairing is booked repeatedly", func() {
			seen := map[int64]bool{}
			for i := 0; i < 5; i++ {
				res, err := svc.Book(ctx, "asha", "rohan", "singles")
				So(err, ShouldBeNil)
				seen[res.Seed] = true
			}

			Convey("Then each booking uses a fresh seed", func() {
				So(len(seen), ShouldEqual, 5)
				So(svc.Seed(), ShouldEqual, 6)
			})

			Convey("Then stats stay in bounds", func() {
				for _, c := range svc.Roster() {
					So(c.Popularity, ShouldBeBetweenOrEqual, 0, 100)
					So(c.Stamina, ShouldBeBetweenOrEqual, 0, 100)
				}
			})
		})

		Convey("When two sessions run the same bookings", func() {
			other := started()
			defer other.Stop()

			Convey("Then their results are identical", func() {
				for _, cat := range []string{"singles", "ladder", "tlc"} {
					r1, err1 := svc.Book(ctx, "leo", "goro", cat)
					r2, err2 := other.Book(ctx, "leo", "goro", cat)
					So(err1, ShouldBeNil)
					So(err2, ShouldBeNil)
					So(r1, ShouldResemble, r2)
				}
				So(svc.Roster(), ShouldResemble, other.Roster())
			})
		})
	})
}

func TestService_PreviewCommit(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := started(service.WithInitialSeed(4))
		defer svc.Stop()
		ctx := context.Background()
		snapshot := svc.Roster()

		Convey("When a booking is previewed", func() {
			res, err := svc.Preview(ctx, "mina", "ivy", "submission")
			So(err, ShouldBeNil)

			Convey("Then nothing is applied but the seed advances", func() {
				So(res.Seed, ShouldEqual, 4)
				So(svc.Seed(), ShouldEqual, 5)
				So(svc.Roster(), ShouldResemble, snapshot)
				So(svc.GetStats()["pending"], ShouldEqual, 1)
			})

			Convey("And committed", func() {
				applied, err := svc.Commit(ctx, res.ID)

				Convey("Then the roster changes once", func() {
					So(err, ShouldBeNil)
					So(applied, ShouldResemble, res)
					So(svc.Roster(), ShouldNotResemble, snapshot)
					So(svc.GetStats()["pending"], ShouldEqual, 0)
				})

				Convey("Then a second commit is rejected and changes nothing", func() {
					after := svc.Roster()
					_, err := svc.Commit(ctx, res.ID)
					So(errors.Is(err, service.ErrAlreadyApplied), ShouldBeTrue)
					So(svc.Roster(), ShouldResemble, after)
					So(svc.GetStats()["duplicates"], ShouldEqual, 1)
				})
			})
		})

		Convey("When an ID that was never previewed is committed", func() {
			_, err := svc.Commit(ctx, "not-a-result")
			So(errors.Is(err, service.ErrUnknownResult), ShouldBeTrue)
		})

		Convey("When many goroutines commit the same preview", func() {
			res, err := svc.Preview(ctx, "leo", "jax", "ladder")
			So(err, ShouldBeNil)

			var ok, dup atomic.Int64
			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := svc.Commit(ctx, res.ID)
					switch {
					case err == nil:
						ok.Add(1)
					case errors.Is(err, service.ErrAlreadyApplied):
						dup.Add(1)
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one applies", func() {
				So(ok.Load(), ShouldEqual, 1)
				So(dup.Load(), ShouldEqual, 15)
			})
		})
	})
}

func TestService_Rematch(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When nothing has been booked", func() {
			_, err := svc.Rematch(ctx)
			So(errors.Is(err, service.ErrNoPreviousBooking), ShouldBeTrue)
		})

		Convey("When a booking was made", func() {
			first, err := svc.Book(ctx, "ember", "goro", "last_man_standing")
			So(err, ShouldBeNil)
			again, err := svc.Rematch(ctx)

			Convey("Then the same pairing runs with the next seed", func() {
				So(err, ShouldBeNil)
				So(again.Seed, ShouldEqual, first.Seed+1)
				So(again.Category.ID, ShouldEqual, "last_man_standing")
				So(again.Deltas, ShouldContainKey, "ember")
				So(again.Deltas, ShouldContainKey, "goro")
				So(again.ID, ShouldNotEqual, first.ID)
			})
		})
	})
}
