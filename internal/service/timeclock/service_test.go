package timeclock

import (
	"context"
	"testing"
	"time"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/contract"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/facility"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/schedule"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/timeentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Coordinates of a downtown office and points at known distances from it.
const (
	facilityLat = 40.712800
	facilityLon = -74.006000

	// ~50m north of the facility
	nearbyLat = 40.713250
	nearbyLon = -74.006000

	// ~1.1km north of the facility
	farLat = 40.722800
	farLon = -74.006000
)

type fakeEntryRepo struct {
	entries map[string]timeentry.TimeEntry
}

func (f *fakeEntryRepo) Create(_ context.Context, entry timeentry.TimeEntry) (timeentry.TimeEntry, error) {
	for _, e := range f.entries {
		if e.UserID == entry.UserID && e.Status == timeentry.StatusActive {
			return timeentry.TimeEntry{}, timeentry.ErrActiveEntryExists
		}
	}
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeEntryRepo) GetByID(_ context.Context, id string) (timeentry.TimeEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return timeentry.TimeEntry{}, timeentry.ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeEntryRepo) GetActiveByUser(_ context.Context, userID string) (*timeentry.TimeEntry, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.Status == timeentry.StatusActive {
			entry := e
			return &entry, nil
		}
	}
	return nil, nil
}

func (f *fakeEntryRepo) Update(_ context.Context, entry timeentry.TimeEntry) error {
	if _, ok := f.entries[entry.ID]; !ok {
		return timeentry.ErrEntryNotFound
	}
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeEntryRepo) List(_ context.Context, _ timeentry.TimeEntryFilter) ([]timeentry.TimeEntry, int64, error) {
	var all []timeentry.TimeEntry
	for _, e := range f.entries {
		all = append(all, e)
	}
	return all, int64(len(all)), nil
}

type fakeJobRepo struct {
	jobs map[string]job.Job
}

func (f *fakeJobRepo) BulkCreate(_ context.Context, jobs []job.Job) ([]job.Job, error) {
	return jobs, nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id string) (job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) ExistingServiceDates(_ context.Context, _ string, _, _ time.Time) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func (f *fakeJobRepo) Update(_ context.Context, j job.Job) error {
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeJobRepo) List(_ context.Context, _ job.JobFilter) ([]job.Job, int64, error) {
	return nil, 0, nil
}

func (f *fakeJobRepo) MarkMissedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeFacilityRepo struct {
	facilities map[string]facility.Facility
}

func (f *fakeFacilityRepo) Create(_ context.Context, fc facility.Facility) (facility.Facility, error) {
	return fc, nil
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, id string) (facility.Facility, error) {
	fc, ok := f.facilities[id]
	if !ok {
		return facility.Facility{}, facility.ErrFacilityNotFound
	}
	return fc, nil
}

func (f *fakeFacilityRepo) Update(_ context.Context, _ facility.Facility) error { return nil }
func (f *fakeFacilityRepo) Delete(_ context.Context, _ string) error            { return nil }
func (f *fakeFacilityRepo) List(_ context.Context, _ facility.FacilityFilter) ([]facility.Facility, int64, error) {
	return nil, 0, nil
}

type fakeContractRepo struct {
	contracts map[string]contract.Contract
}

func (f *fakeContractRepo) GetByID(_ context.Context, id string) (contract.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return contract.Contract{}, contract.ErrContractNotFound
	}
	return c, nil
}

func (f *fakeContractRepo) List(_ context.Context, _ contract.ContractFilter) ([]contract.Contract, int64, error) {
	return nil, 0, nil
}

func (f *fakeContractRepo) ListActive(_ context.Context) ([]contract.Contract, error) {
	return nil, nil
}

func (f *fakeContractRepo) UpdateAssignment(_ context.Context, _ string, _, _ *string) error {
	return nil
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

type fixture struct {
	svc       *TimeClockServiceImpl
	entryRepo *fakeEntryRepo
	jobRepo   *fakeJobRepo
}

// newFixture wires a facility at known coordinates, an in-progress job under
// a weekly Mon/Thu contract with a 09:00-17:00 UTC window, and a frozen clock
// inside that window (Monday 10:00 UTC).
func newFixture(t *testing.T) *fixture {
	t.Helper()

	entryRepo := &fakeEntryRepo{entries: map[string]timeentry.TimeEntry{}}
	jobRepo := &fakeJobRepo{jobs: map[string]job.Job{
		"job-1": {
			ID:         "job-1",
			JobNumber:  "JOB-2026-00007",
			ContractID: "contract-1",
			FacilityID: "facility-1",
			AccountID:  "account-1",
			JobType:    job.TypeScheduledService,
			Status:     job.StatusInProgress,
		},
	}}

	svc := NewTimeClockService(
		entryRepo,
		jobRepo,
		&fakeFacilityRepo{facilities: map[string]facility.Facility{
			"facility-1": {
				ID:        "facility-1",
				Latitude:  facilityLat,
				Longitude: facilityLon,
			},
		}},
		&fakeContractRepo{contracts: map[string]contract.Contract{
			"contract-1": {
				ID:               "contract-1",
				AccountID:        "account-1",
				FacilityID:       "facility-1",
				Status:           contract.StatusActive,
				ServiceFrequency: "weekly",
				ScheduleDays:     []int{1, 4},
				WindowStartMin:   intPtr(9 * 60),
				WindowEndMin:     intPtr(17 * 60),
			},
		}},
		schedule.NewNormalizer(nil, time.Monday),
		150,
	).(*TimeClockServiceImpl)

	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	}

	return &fixture{svc: svc, entryRepo: entryRepo, jobRepo: jobRepo}
}

func (f *fixture) advanceTo(t time.Time) {
	f.svc.now = func() time.Time { return t }
}

func nearbyLocation() *timeentry.GeoLocationInput {
	return &timeentry.GeoLocationInput{Latitude: nearbyLat, Longitude: nearbyLon}
}

func farLocation() *timeentry.GeoLocationInput {
	return &timeentry.GeoLocationInput{Latitude: farLat, Longitude: farLon}
}

func TestClockIn_InsideGeofenceAndWindow(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		JobID:       strPtr("job-1"),
		GeoLocation: nearbyLocation(),
	})
	require.NoError(t, err)

	assert.Equal(t, string(timeentry.StatusActive), resp.Status)
	assert.Equal(t, "cleaner-1", resp.UserID)
	require.NotNil(t, resp.FacilityID)
	assert.Equal(t, "facility-1", *resp.FacilityID)
	assert.Nil(t, resp.OverrideReason)
	assert.Len(t, f.entryRepo.entries, 1)
}

func TestClockIn_MissingLocationRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor: timeentry.Actor{UserID: "cleaner-1"},
		JobID: strPtr("job-1"),
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, timeentry.ErrClockInLocationRequired)
	assert.Empty(t, f.entryRepo.entries)
}

func TestClockIn_MissingLocationNotOverridable(t *testing.T) {
	f := newFixture(t)

	// Location presence is a hard requirement even for managers.
	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:           timeentry.Actor{UserID: "mgr-1", IsManager: true},
		JobID:           strPtr("job-1"),
		ManagerOverride: true,
		OverrideReason:  "device GPS broken",
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, timeentry.ErrClockInLocationRequired)
	assert.Empty(t, f.entryRepo.entries)
}

func TestClockIn_OverrideWithoutReasonRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:           timeentry.Actor{UserID: "mgr-1", IsManager: true},
		JobID:           strPtr("job-1"),
		GeoLocation:     nearbyLocation(),
		ManagerOverride: true,
	})
	require.Error(t, err)

	assert.ErrorIs(t, err, job.ErrOverrideReasonRequired)
	assert.Empty(t, f.entryRepo.entries)
}

func TestClockIn_OutsideGeofenceRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		JobID:       strPtr("job-1"),
		GeoLocation: farLocation(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, timeentry.ErrOutsideFacilityGeofence)

	var geoErr *timeentry.OutsideGeofenceError
	require.ErrorAs(t, err, &geoErr)
	assert.InDelta(t, 150, geoErr.RadiusM, 0.001)
	assert.Greater(t, geoErr.DistanceM, 1000.0)
	assert.Empty(t, f.entryRepo.entries)
}

func TestClockIn_FacilityRadiusOverridesDefault(t *testing.T) {
	f := newFixture(t)

	wide := 2000.0
	fc := facility.Facility{
		ID:              "facility-1",
		Latitude:        facilityLat,
		Longitude:       facilityLon,
		GeofenceRadiusM: &wide,
	}
	f.svc.facilityRepo = &fakeFacilityRepo{facilities: map[string]facility.Facility{"facility-1": fc}}

	resp, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		JobID:       strPtr("job-1"),
		GeoLocation: farLocation(), // ~1.1km away, inside the widened fence
	})
	require.NoError(t, err)
	assert.Equal(t, string(timeentry.StatusActive), resp.Status)
}

func TestClockIn_ManagerOverrideOutsideGeofence(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:           timeentry.Actor{UserID: "mgr-1", IsManager: true},
		JobID:           strPtr("job-1"),
		GeoLocation:     farLocation(),
		ManagerOverride: true,
		OverrideReason:  "parking lot across the street",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.OverrideReason)
	assert.Equal(t, "parking lot across the street", *resp.OverrideReason)
	require.NotNil(t, resp.OverrideBy)
	assert.Equal(t, "mgr-1", *resp.OverrideBy)
}

func TestClockIn_OverrideByNonManagerRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:           timeentry.Actor{UserID: "cleaner-1"},
		JobID:           strPtr("job-1"),
		GeoLocation:     farLocation(),
		ManagerOverride: true,
		OverrideReason:  "trying anyway",
	})
	assert.ErrorIs(t, err, job.ErrOverrideNotAllowed)
	assert.Empty(t, f.entryRepo.entries)
}

func TestClockIn_OutsideServiceWindowRejected(t *testing.T) {
	f := newFixture(t)
	f.advanceTo(time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)) // Monday 22:00

	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		JobID:       strPtr("job-1"),
		GeoLocation: nearbyLocation(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrOutsideServiceWindow)

	var winErr *schedule.OutsideWindowError
	require.ErrorAs(t, err, &winErr)
	assert.Equal(t, "09:00-17:00", winErr.Window)
}

func TestClockIn_SecondActiveEntryRejected(t *testing.T) {
	f := newFixture(t)

	req := timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		JobID:       strPtr("job-1"),
		GeoLocation: nearbyLocation(),
	}

	_, err := f.svc.ClockIn(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.ClockIn(context.Background(), req)
	assert.ErrorIs(t, err, timeentry.ErrActiveEntryExists)
	assert.Len(t, f.entryRepo.entries, 1)
}

func TestClockIn_SecondEntryNotOverridable(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "mgr-1", IsManager: true},
		JobID:       strPtr("job-1"),
		GeoLocation: nearbyLocation(),
	})
	require.NoError(t, err)

	_, err = f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:           timeentry.Actor{UserID: "mgr-1", IsManager: true},
		JobID:           strPtr("job-1"),
		GeoLocation:     nearbyLocation(),
		ManagerOverride: true,
		OverrideReason:  "double shift",
	})
	assert.ErrorIs(t, err, timeentry.ErrActiveEntryExists)
}

func TestClockIn_FacilityOnlyNoWindowCheck(t *testing.T) {
	f := newFixture(t)
	f.advanceTo(time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)) // outside the contract window

	// Without a job link there is no contract and no window to enforce.
	resp, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		FacilityID:  strPtr("facility-1"),
		GeoLocation: nearbyLocation(),
	})
	require.NoError(t, err)
	assert.Equal(t, string(timeentry.StatusActive), resp.Status)
}

func TestClockOut(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		JobID:       strPtr("job-1"),
		GeoLocation: nearbyLocation(),
	})
	require.NoError(t, err)

	f.advanceTo(time.Date(2026, 3, 2, 13, 30, 0, 0, time.UTC))

	resp, err := f.svc.ClockOut(context.Background(), timeentry.ClockOutRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		GeoLocation: nearbyLocation(),
	})
	require.NoError(t, err)

	assert.Equal(t, string(timeentry.StatusCompleted), resp.Entry.Status)
	require.NotNil(t, resp.Entry.ClockOut)
	require.NotNil(t, resp.Entry.DurationMinutes)
	assert.Equal(t, 210, *resp.Entry.DurationMinutes)
	assert.True(t, resp.JobStillInProgress, "linked job is still in_progress")
}

func TestClockOut_CompletedJobClearsFlag(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		JobID:       strPtr("job-1"),
		GeoLocation: nearbyLocation(),
	})
	require.NoError(t, err)

	j := f.jobRepo.jobs["job-1"]
	j.Status = job.StatusCompleted
	f.jobRepo.jobs["job-1"] = j

	f.advanceTo(time.Date(2026, 3, 2, 13, 30, 0, 0, time.UTC))

	resp, err := f.svc.ClockOut(context.Background(), timeentry.ClockOutRequest{
		Actor: timeentry.Actor{UserID: "cleaner-1"},
	})
	require.NoError(t, err)
	assert.False(t, resp.JobStillInProgress)
}

func TestClockOut_NoActiveEntry(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockOut(context.Background(), timeentry.ClockOutRequest{
		Actor: timeentry.Actor{UserID: "cleaner-1"},
	})
	assert.ErrorIs(t, err, timeentry.ErrNoActiveEntry)
}

func TestClockOut_NotAfterClockIn(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		JobID:       strPtr("job-1"),
		GeoLocation: nearbyLocation(),
	})
	require.NoError(t, err)

	// Clock unchanged, so now == clockIn.
	_, err = f.svc.ClockOut(context.Background(), timeentry.ClockOutRequest{
		Actor: timeentry.Actor{UserID: "cleaner-1"},
	})
	assert.ErrorIs(t, err, timeentry.ErrClockOutTooEarly)
}

func TestGetActiveEntry(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetActiveEntry(context.Background(), "cleaner-1")
	require.NoError(t, err)
	assert.Nil(t, resp)

	_, err = f.svc.ClockIn(context.Background(), timeentry.ClockInRequest{
		Actor:       timeentry.Actor{UserID: "cleaner-1"},
		JobID:       strPtr("job-1"),
		GeoLocation: nearbyLocation(),
	})
	require.NoError(t, err)

	resp, err = f.svc.GetActiveEntry(context.Background(), "cleaner-1")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, string(timeentry.StatusActive), resp.Status)
}

func TestListEntries_InvalidStatusFilter(t *testing.T) {
	f := newFixture(t)

	bad := "open"
	_, err := f.svc.ListEntries(context.Background(), timeentry.TimeEntryFilter{Status: &bad})
	assert.Error(t, err)
}
