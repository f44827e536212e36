// Package service implements the activity lifecycle: starting, stopping and
// restarting timers, plus the bookkeeping operations the CLI offers on top.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/balkashynov/tmr/internal/clock"
	"github.com/balkashynov/tmr/internal/db"
	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
)

// Settings is the part of the configuration the service reads
type Settings interface {
	RoundingMinutes() int
}

// Mutation derives an edited activity from the stored one
type Mutation func(models.Activity) models.Activity

// RestartResult reports both transitions of a restart
type RestartResult struct {
	Stopped *models.Activity // nil when nothing was running
	Started models.Activity
}

// ActivityService owns the single-active-activity state machine
type ActivityService struct {
	repo     db.ActivityRepository
	settings Settings
	clock    clock.Clock
	logger   zerolog.Logger
}

// NewActivityService wires the service to its collaborators
func NewActivityService(repo db.ActivityRepository, settings Settings, clk clock.Clock, logger zerolog.Logger) *ActivityService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &ActivityService{
		repo:     repo,
		settings: settings,
		clock:    clk,
		logger:   logger.With().Str("component", "activity_service").Logger(),
	}
}

// Now returns the current wall-clock time as a zone-less timestamp
func (s *ActivityService) Now() time.Time {
	return models.LocalDateTime(s.clock.Now())
}

// Start completes any running activity and begins a new one at startTime.
// Running activities are closed at the current time, not at startTime.
func (s *ActivityService) Start(ctx context.Context, activityType models.ActivityType, description string, startTime time.Time) (models.Activity, error) {
	activity := models.NewActive(activityType, strings.TrimSpace(description), startTime)
	if err := activity.Validate(); err != nil {
		return models.Activity{}, err
	}

	if err := s.repo.UpdateStatusByStatus(ctx, models.StatusActive, models.StatusCompleted, s.Now()); err != nil {
		return models.Activity{}, tmrerrors.Wrap(err, "failed to complete running activities")
	}

	saved, err := s.repo.Save(ctx, activity)
	if err != nil {
		return models.Activity{}, tmrerrors.Wrap(err, "failed to start activity")
	}

	s.logger.Info().
		Int64("activity_id", saved.ID).
		Str("type", saved.Type.String()).
		Time("start_time", saved.StartTime).
		Msg("activity started")
	return saved, nil
}

// Stop completes the most recently started running activity. It returns nil
// without error when nothing is running.
func (s *ActivityService) Stop(ctx context.Context) (*models.Activity, error) {
	active, err := s.repo.FindByStatus(ctx, models.StatusActive)
	if err != nil {
		return nil, tmrerrors.Wrap(err, "failed to look up active activity")
	}
	if len(active) == 0 {
		s.logger.Debug().Msg("stop requested with no active activity")
		return nil, nil
	}

	end := stopTime(active[0], s.Now(), s.settings.RoundingMinutes())
	stopped, err := s.repo.Update(ctx, active[0].Completed(end))
	if err != nil {
		return nil, tmrerrors.Wrapf(err, "failed to stop activity %d", active[0].ID)
	}

	s.logger.Info().
		Int64("activity_id", stopped.ID).
		Time("end_time", end).
		Int64("minutes", stopped.Minutes(end)).
		Msg("activity stopped")
	return &stopped, nil
}

// stopTime rounds now up to the interval. An activity stopped within the
// minute it started still ends on the first grid point after its start.
func stopTime(activity models.Activity, now time.Time, interval int) time.Time {
	end := RoundUp(now, interval)
	if !end.After(activity.StartTime) {
		end = RoundUp(activity.StartTime.Truncate(time.Minute).Add(time.Minute), interval)
	}
	return end
}

// Restart stops whatever is running and starts a fresh activity with the
// type and description of sourceID. A missing source is a no-op returning nil.
func (s *ActivityService) Restart(ctx context.Context, sourceID int64) (*RestartResult, error) {
	source, err := s.repo.FindByID(ctx, sourceID)
	if err != nil {
		return nil, tmrerrors.Wrapf(err, "failed to load activity %d", sourceID)
	}
	if source == nil {
		s.logger.Debug().Int64("activity_id", sourceID).Msg("restart source not found")
		return nil, nil
	}

	stopped, err := s.Stop(ctx)
	if err != nil {
		return nil, err
	}

	started, err := s.repo.Save(ctx, models.NewActive(source.Type, source.Description, s.Now()))
	if err != nil {
		return nil, tmrerrors.Wrap(err, "failed to start restarted activity")
	}

	s.logger.Info().
		Int64("source_id", source.ID).
		Int64("activity_id", started.ID).
		Msg("activity restarted")
	return &RestartResult{Stopped: stopped, Started: started}, nil
}

// Add records a finished activity in one step
func (s *ActivityService) Add(ctx context.Context, activityType models.ActivityType, description string, start, end time.Time) (models.Activity, error) {
	activity := models.NewCompleted(activityType, strings.TrimSpace(description), start, end)
	if err := activity.Validate(); err != nil {
		return models.Activity{}, err
	}

	saved, err := s.repo.Save(ctx, activity)
	if err != nil {
		return models.Activity{}, tmrerrors.Wrap(err, "failed to add activity")
	}

	s.logger.Info().Int64("activity_id", saved.ID).Str("type", saved.Type.String()).Msg("activity added")
	return saved, nil
}

// Copy saves a new completed activity derived from sourceID; the source is untouched
func (s *ActivityService) Copy(ctx context.Context, sourceID int64, mutate Mutation) (models.Activity, error) {
	source, err := s.Get(ctx, sourceID)
	if err != nil {
		return models.Activity{}, err
	}

	copied := *source
	if mutate != nil {
		copied = mutate(copied)
	}
	copied.ID = 0
	copied.Status = models.StatusCompleted
	copied.Description = strings.TrimSpace(copied.Description)
	if err := copied.Validate(); err != nil {
		return models.Activity{}, err
	}

	saved, err := s.repo.Save(ctx, copied)
	if err != nil {
		return models.Activity{}, tmrerrors.Wrapf(err, "failed to copy activity %d", sourceID)
	}

	s.logger.Info().Int64("source_id", sourceID).Int64("activity_id", saved.ID).Msg("activity copied")
	return saved, nil
}

// Edit applies mutate to a completed activity and persists the result.
// Running activities cannot be edited.
func (s *ActivityService) Edit(ctx context.Context, id int64, mutate Mutation) (models.Activity, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Activity{}, err
	}
	if current.IsActive() {
		return models.Activity{}, fmt.Errorf("%w: stop activity %d before editing it", tmrerrors.ErrActivityActive, id)
	}

	edited := *current
	if mutate != nil {
		edited = mutate(edited)
	}
	edited.ID = current.ID
	edited.Status = current.Status
	edited.Description = strings.TrimSpace(edited.Description)
	if err := edited.Validate(); err != nil {
		return models.Activity{}, err
	}

	saved, err := s.repo.Update(ctx, edited)
	if err != nil {
		return models.Activity{}, tmrerrors.Wrapf(err, "failed to edit activity %d", id)
	}

	s.logger.Info().Int64("activity_id", id).Msg("activity edited")
	return saved, nil
}

// Delete removes an activity, reporting ErrNotFound when it does not exist
func (s *ActivityService) Delete(ctx context.Context, id int64) (models.Activity, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return models.Activity{}, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return models.Activity{}, tmrerrors.Wrapf(err, "failed to delete activity %d", id)
	}

	s.logger.Info().Int64("activity_id", id).Msg("activity deleted")
	return *existing, nil
}

// Get loads a single activity or fails with ErrNotFound
func (s *ActivityService) Get(ctx context.Context, id int64) (*models.Activity, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: activity id must be a positive number", tmrerrors.ErrInvalidArgument)
	}

	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, tmrerrors.Wrapf(err, "failed to load activity %d", id)
	}
	if activity == nil {
		return nil, fmt.Errorf("activity with ID %d: %w", id, tmrerrors.ErrNotFound)
	}
	return activity, nil
}

// Active returns running activities, newest first
func (s *ActivityService) Active(ctx context.Context) ([]models.Activity, error) {
	activities, err := s.repo.FindByStatus(ctx, models.StatusActive)
	return activities, tmrerrors.Wrap(err, "failed to list active activities")
}

// ListDay returns the activities started on day
func (s *ActivityService) ListDay(ctx context.Context, day time.Time) ([]models.Activity, error) {
	activities, err := s.repo.FindByStartTime(ctx, day)
	return activities, tmrerrors.Wrapf(err, "failed to list activities for %s", day.Format(models.DateLayout))
}

// ListRange returns the activities started between the dates of from and to inclusive
func (s *ActivityService) ListRange(ctx context.Context, from, to time.Time) ([]models.Activity, error) {
	if models.DateOf(to).Before(models.DateOf(from)) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			tmrerrors.ErrInvalidArgument, to.Format(models.DateLayout), from.Format(models.DateLayout))
	}
	activities, err := s.repo.FindByDateRange(ctx, from, to)
	return activities, tmrerrors.Wrap(err, "failed to list activities")
}

// ListByType returns activities of one type, newest first
func (s *ActivityService) ListByType(ctx context.Context, activityType models.ActivityType) ([]models.Activity, error) {
	activities, err := s.repo.FindByType(ctx, activityType)
	return activities, tmrerrors.Wrapf(err, "failed to list %s activities", activityType)
}

// ListAll returns every activity, oldest first
func (s *ActivityService) ListAll(ctx context.Context) ([]models.Activity, error) {
	activities, err := s.repo.FindAll(ctx)
	return activities, tmrerrors.Wrap(err, "failed to list activities")
}

// ConnectedStartTime returns the minute after the last activity of day ended,
// so a new activity can continue seamlessly.
func (s *ActivityService) ConnectedStartTime(ctx context.Context, day time.Time) (time.Time, error) {
	activities, err := s.ListDay(ctx, day)
	if err != nil {
		return time.Time{}, err
	}
	if len(activities) == 0 {
		return time.Time{}, fmt.Errorf("%w for %s", tmrerrors.ErrNoActivities, day.Format(models.DateLayout))
	}

	latest := activities[len(activities)-1]
	if latest.EndTime == nil {
		return time.Time{}, fmt.Errorf("%w: activity %d has no end time", tmrerrors.ErrActivityActive, latest.ID)
	}
	return latest.EndTime.Add(time.Minute), nil
}

// TotalMinutes sums whole minutes across activities; running ones count up to now
func (s *ActivityService) TotalMinutes(activities []models.Activity) int64 {
	now := s.Now()
	return lo.SumBy(activities, func(a models.Activity) int64 {
		return a.Minutes(now)
	})
}

// RoundUp truncates t to the minute and, for intervals above one minute,
// moves it forward to the next multiple of interval. It never rounds down.
func RoundUp(t time.Time, interval int) time.Time {
	truncated := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	if interval <= 1 {
		return truncated
	}

	if rem := truncated.Minute() % interval; rem != 0 {
		return truncated.Add(time.Duration(interval-rem) * time.Minute)
	}
	return truncated
}
