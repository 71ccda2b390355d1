package service

import (
	"testing"
	"time"

	"github.com/laundrycare/lce/internal/domain/holiday"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
	"github.com/stretchr/testify/suite"

	"github.com/laundrycare/lce/internal/testutil"
)

// 2025-03-10 is a Monday.
var mondayMorning = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type CalendarServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CalendarService
}

func TestCalendarService(t *testing.T) {
	suite.Run(t, new(CalendarServiceSuite))
}

func (s *CalendarServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.GetClock().SetNow(mondayMorning)
	s.service = NewCalendarService(newTestParams(&s.BaseServiceTestSuite))
}

func (s *CalendarServiceSuite) addHoliday(date time.Time, active bool) {
	err := s.GetStores().HolidayRepo.Create(s.GetContext(), &holiday.Holiday{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_HOLIDAY),
		Name:      "Test Holiday",
		Date:      date,
		IsActive:  active,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	})
	s.NoError(err)
}

func (s *CalendarServiceSuite) TestWeekdayIsValid() {
	valid, err := s.service.IsValidPickupDate(s.GetContext(), mondayMorning)
	s.NoError(err)
	s.True(valid)
}

func (s *CalendarServiceSuite) TestWeekendIsInvalid() {
	saturday := mondayMorning.AddDate(0, 0, 5)
	valid, err := s.service.IsValidPickupDate(s.GetContext(), saturday)
	s.NoError(err)
	s.False(valid)

	sunday := saturday.AddDate(0, 0, 1)
	valid, err = s.service.IsValidPickupDate(s.GetContext(), sunday)
	s.NoError(err)
	s.False(valid)
}

func (s *CalendarServiceSuite) TestHolidayIsInvalid() {
	tuesday := mondayMorning.AddDate(0, 0, 1)
	s.addHoliday(tuesday, true)

	valid, err := s.service.IsValidPickupDate(s.GetContext(), tuesday)
	s.NoError(err)
	s.False(valid)
}

func (s *CalendarServiceSuite) TestInactiveHolidayIsValid() {
	tuesday := mondayMorning.AddDate(0, 0, 1)
	s.addHoliday(tuesday, false)

	valid, err := s.service.IsValidPickupDate(s.GetContext(), tuesday)
	s.NoError(err)
	s.True(valid)
}

func (s *CalendarServiceSuite) TestPastDateIsInvalid() {
	friday := mondayMorning.AddDate(0, 0, -3)
	valid, err := s.service.IsValidPickupDate(s.GetContext(), friday)
	s.NoError(err)
	s.False(valid)
}

func (s *CalendarServiceSuite) TestTodayAfterCutoffIsInvalid() {
	s.GetClock().SetNow(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))

	valid, err := s.service.IsValidPickupDate(s.GetContext(), mondayMorning)
	s.NoError(err)
	s.False(valid)
}

func (s *CalendarServiceSuite) TestTodayBeforeCutoffIsValid() {
	s.GetClock().SetNow(time.Date(2025, 3, 10, 13, 59, 0, 0, time.UTC))

	valid, err := s.service.IsValidPickupDate(s.GetContext(), mondayMorning)
	s.NoError(err)
	s.True(valid)
}

func (s *CalendarServiceSuite) TestNextAvailableBeforeCutoffIsToday() {
	date, err := s.service.NextAvailablePickupDate(s.GetContext())
	s.NoError(err)
	s.Equal(types.BeginningOfDay(mondayMorning), date)
}

func (s *CalendarServiceSuite) TestNextAvailableAfterCutoffIsTomorrow() {
	s.GetClock().SetNow(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))

	date, err := s.service.NextAvailablePickupDate(s.GetContext())
	s.NoError(err)
	s.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), date)
}

func (s *CalendarServiceSuite) TestNextAvailableSkipsWeekend() {
	// Friday after cutoff resolves to Monday.
	s.GetClock().SetNow(time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC))

	date, err := s.service.NextAvailablePickupDate(s.GetContext())
	s.NoError(err)
	s.Equal(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), date)
}

func (s *CalendarServiceSuite) TestNextAvailableFailsWhenEverythingBlocked() {
	// Mark every day in the search window as a holiday.
	for i := 0; i <= s.GetConfig().Scheduling.MaxAttempts; i++ {
		s.addHoliday(mondayMorning.AddDate(0, 0, i), true)
	}

	_, err := s.service.NextAvailablePickupDate(s.GetContext())
	s.Error(err)
	s.ErrorIs(err, ierr.ErrScheduling)
}

func (s *CalendarServiceSuite) TestDeliveryDateTwoDaysOut() {
	date, err := s.service.DeliveryDate(s.GetContext(), mondayMorning)
	s.NoError(err)
	s.Equal(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), date)
}

func (s *CalendarServiceSuite) TestDeliveryDateSkipsWeekend() {
	// Thursday + 2 = Saturday, pushed to Monday.
	thursday := time.Date(2025, 3, 13, 9, 0, 0, 0, time.UTC)
	date, err := s.service.DeliveryDate(s.GetContext(), thursday)
	s.NoError(err)
	s.Equal(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), date)
}

func (s *CalendarServiceSuite) TestDeliveryDateSkipsHoliday() {
	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	s.addHoliday(wednesday, true)

	date, err := s.service.DeliveryDate(s.GetContext(), mondayMorning)
	s.NoError(err)
	s.Equal(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), date)
}

func (s *CalendarServiceSuite) TestUpcomingHolidays() {
	s.addHoliday(mondayMorning.AddDate(0, 0, 10), true)
	s.addHoliday(mondayMorning.AddDate(0, 0, 3), true)
	s.addHoliday(mondayMorning.AddDate(0, 0, -5), true)

	holidays, err := s.service.UpcomingHolidays(s.GetContext(), 10)
	s.NoError(err)
	s.Len(holidays, 2)
	s.True(holidays[0].Date.Before(holidays[1].Date))
}
