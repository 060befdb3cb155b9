package booking_test

import (
	"errors"
	"testing"

	"github.com/okian/ringside/internal/domain/booking"
	"github.com/okian/ringside/internal/domain/catalog"
	. "github.com/smartystreets/goconvey/convey"
)

type set map[string]bool

func (s set) Has(id string) bool { return s[id] }

func TestIsValid(t *testing.T) {
	known := set{"singles": true, "hardcore": true}

	Convey("Given proposed bookings", t, func() {
		cases := []struct {
			name     string
			a, b     string
			category string
			known    booking.CategorySet
			want     error
		}{
			{"both competitors empty", "", "", "singles", known, booking.ErrMissingCompetitor},
			{"first competitor empty", "", "rohan", "singles", known, booking.ErrMissingCompetitor},
			{"second competitor blank", "asha", "  ", "singles", known, booking.ErrMissingCompetitor},
			{"same competitor twice", "asha", "asha", "singles", known, booking.ErrSameCompetitor},
			{"category empty", "asha", "rohan", "", known, booking.ErrMissingCategory},
			{"category not in known set", "asha", "rohan", "ladder", known, booking.ErrUnknownCategory},
			{"valid against known set", "asha", "rohan", "hardcore", known, nil},
			{"any category without known set", "asha", "rohan", "ladder", nil, nil},
		}

		for _, tc := range cases {
			Convey(tc.name, func() {
				err := booking.Validate(tc.a, tc.b, tc.category, tc.known)
				if tc.want == nil {
					So(err, ShouldBeNil)
					So(booking.IsValid(tc.a, tc.b, tc.category, tc.known), ShouldBeTrue)
				} else {
					So(errors.Is(err, tc.want), ShouldBeTrue)
					So(booking.IsValid(tc.a, tc.b, tc.category, tc.known), ShouldBeFalse)
				}
			})
		}
	})

	Convey("Given the default catalog as the known set", t, func() {
		cat := catalog.Defaults()

		Convey("Then its categories are accepted and others rejected", func() {
			So(booking.IsValid("asha", "rohan", "steel_cage", cat), ShouldBeTrue)
			So(booking.IsValid("asha", "rohan", "sumo", cat), ShouldBeFalse)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given a valid pairing", t, func() {
		b, err := booking.New("asha", "rohan", "singles", nil)

		Convey("Then the booking exposes its parts", func() {
			So(err, ShouldBeNil)
			So(b.A(), ShouldEqual, "asha")
			So(b.B(), ShouldEqual, "rohan")
			So(b.Category(), ShouldEqual, "singles")
			So(b.String(), ShouldEqual, "asha vs rohan (singles)")
		})
	})

	Convey("Given an invalid pairing", t, func() {
		b, err := booking.New("asha", "asha", "singles", nil)

		Convey("Then no booking is produced", func() {
			So(errors.Is(err, booking.ErrSameCompetitor), ShouldBeTrue)
			So(b, ShouldResemble, booking.Booking{})
		})
	})
}

func TestValidateNilCatalog(t *testing.T) {
	Convey("Given a catalog pointer that was never loaded", t, func() {
		var missing *catalog.Catalog

		Convey("When validating against it", func() {
			var err error
			So(func() { err = booking.Validate("asha", "rohan", "singles", missing) }, ShouldNotPanic)

			Convey("Then every category is unknown", func() {
				So(errors.Is(err, booking.ErrUnknownCategory), ShouldBeTrue)
				So(booking.IsValid("asha", "rohan", "singles", missing), ShouldBeFalse)
			})
		})

		Convey("When the set itself is nil", func() {
			Convey("Then membership is not checked", func() {
				So(booking.Validate("asha", "rohan", "anything", nil), ShouldBeNil)
			})
		})
	})
}
