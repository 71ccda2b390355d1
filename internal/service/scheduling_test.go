package service

import (
	"testing"
	"time"

	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/testutil"
	"github.com/laundrycare/lce/internal/types"
	"github.com/stretchr/testify/suite"

	"github.com/laundrycare/lce/internal/domain/zone"
)

type SchedulingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service SchedulingService
}

func TestSchedulingService(t *testing.T) {
	suite.Run(t, new(SchedulingServiceSuite))
}

func (s *SchedulingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.GetClock().SetNow(mondayMorning)

	params := newTestParams(&s.BaseServiceTestSuite)
	s.service = NewSchedulingService(params, NewCalendarService(params))

	err := s.GetStores().ZoneRepo.Create(s.GetContext(), &zone.PickupZone{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ZONE),
		ZoneCode:  "Z1",
		ZoneName:  "Downtown",
		IsActive:  true,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	})
	s.NoError(err)
}

func (s *SchedulingServiceSuite) request() ScheduleRequest {
	return ScheduleRequest{
		UserID:    "user_test",
		Zone:      "Z1",
		OrderType: types.OrderTypePPO,
	}
}

func (s *SchedulingServiceSuite) TestScheduleASAP() {
	p, err := s.service.ScheduleASAP(s.GetContext(), s.request())
	s.NoError(err)
	s.Equal(types.BeginningOfDay(mondayMorning), p.PickupDate)
	s.Equal(types.PickupStatusScheduled, p.PickupStatus)
	s.False(p.IsRecurring)
	s.True(p.DeliveryDate.After(p.PickupDate))

	stored, err := s.GetStores().PickupRepo.Get(s.GetContext(), p.ID)
	s.NoError(err)
	s.Equal(p.PickupDate, stored.PickupDate)
}

func (s *SchedulingServiceSuite) TestScheduleASAPAfterCutoffResolvesToNextDay() {
	// Monday 15:00 is past the 14:00 cutoff, so the pickup lands on
	// Tuesday.
	s.GetClock().SetNow(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))

	p, err := s.service.ScheduleASAP(s.GetContext(), s.request())
	s.NoError(err)
	s.Equal(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), p.PickupDate)
}

func (s *SchedulingServiceSuite) TestScheduleFutureValidDate() {
	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	p, err := s.service.ScheduleFuture(s.GetContext(), wednesday, s.request())
	s.NoError(err)
	s.Equal(wednesday, p.PickupDate)
}

func (s *SchedulingServiceSuite) TestScheduleFutureWeekendRejected() {
	saturday := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err := s.service.ScheduleFuture(s.GetContext(), saturday, s.request())
	s.Error(err)
	s.ErrorIs(err, ierr.ErrInvalidDate)
}

func (s *SchedulingServiceSuite) TestScheduleRecurringWeeklySpacing() {
	pickups, err := s.service.ScheduleRecurring(s.GetContext(), types.RecurringFrequencyWeekly, 4, s.request())
	s.NoError(err)
	s.Len(pickups, 4)

	for i, p := range pickups {
		s.True(p.IsRecurring)
		s.Equal(types.RecurringFrequencyWeekly, p.RecurringFrequency)
		if i > 0 {
			s.Equal(7, types.DaysBetween(pickups[i-1].PickupDate, p.PickupDate))
		}
	}
}

func (s *SchedulingServiceSuite) TestScheduleRecurringBiweeklySpacing() {
	pickups, err := s.service.ScheduleRecurring(s.GetContext(), types.RecurringFrequencyBiweekly, 3, s.request())
	s.NoError(err)
	s.Len(pickups, 3)
	s.Equal(14, types.DaysBetween(pickups[0].PickupDate, pickups[1].PickupDate))
	s.Equal(14, types.DaysBetween(pickups[1].PickupDate, pickups[2].PickupDate))
}

func (s *SchedulingServiceSuite) TestScheduleRecurringDefaultOccurrences() {
	pickups, err := s.service.ScheduleRecurring(s.GetContext(), types.RecurringFrequencyWeekly, 0, s.request())
	s.NoError(err)
	s.Len(pickups, DefaultRecurringOccurrences)
}

func (s *SchedulingServiceSuite) TestScheduleRejectsUnknownZone() {
	req := s.request()
	req.Zone = "NOPE"
	_, err := s.service.ScheduleASAP(s.GetContext(), req)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrValidation)
}

func (s *SchedulingServiceSuite) TestScheduleRejectsMissingUser() {
	req := s.request()
	req.UserID = ""
	_, err := s.service.ScheduleASAP(s.GetContext(), req)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrValidation)
}
