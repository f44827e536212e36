package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
)

// ActivityRepository is the persistence contract for activities
type ActivityRepository interface {
	Save(ctx context.Context, activity models.Activity) (models.Activity, error)
	Update(ctx context.Context, activity models.Activity) (models.Activity, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Activity, error)
	FindAll(ctx context.Context) ([]models.Activity, error)
	FindByStatus(ctx context.Context, status models.ActivityStatus) ([]models.Activity, error)
	FindByType(ctx context.Context, activityType models.ActivityType) ([]models.Activity, error)
	FindByStartTime(ctx context.Context, day time.Time) ([]models.Activity, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Activity, error)
	UpdateStatusByStatus(ctx context.Context, current, next models.ActivityStatus, endTime time.Time) error
}

const (
	orderAscending  = "start_time ASC, id ASC"
	orderDescending = "start_time DESC, id DESC"
)

// ActivityStore implements ActivityRepository on top of gorm
type ActivityStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewActivityStore wraps an open database handle
func NewActivityStore(db *gorm.DB, logger zerolog.Logger) *ActivityStore {
	return &ActivityStore{
		db:     db,
		logger: logger.With().Str("component", "activity_store").Logger(),
	}
}

var _ ActivityRepository = (*ActivityStore)(nil)

// Save inserts a new activity and returns it with its assigned ID
func (s *ActivityStore) Save(ctx context.Context, activity models.Activity) (models.Activity, error) {
	row := normalize(activity)
	row.ID = 0 // always let the database assign the key

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Activity{}, tmrerrors.Persistence(err, "failed to insert activity")
	}

	s.logger.Debug().Int64("activity_id", row.ID).Str("status", row.Status.String()).Msg("activity inserted")
	return row, nil
}

// Update overwrites every mutable field of an existing activity
func (s *ActivityStore) Update(ctx context.Context, activity models.Activity) (models.Activity, error) {
	if activity.ID == 0 {
		return models.Activity{}, fmt.Errorf("%w: cannot update an activity without an id", tmrerrors.ErrInvalidArgument)
	}
	row := normalize(activity)

	// Select forces zero values (cleared end time) to be written too
	result := s.db.WithContext(ctx).
		Model(&models.Activity{ID: row.ID}).
		Select("start_time", "end_time", "activity_type", "status", "description").
		Updates(&row)
	if result.Error != nil {
		return models.Activity{}, tmrerrors.Persistence(result.Error, fmt.Sprintf("failed to update activity %d", row.ID))
	}
	if result.RowsAffected == 0 {
		return models.Activity{}, fmt.Errorf("%w: activity %d was not updated", tmrerrors.ErrPersistence, row.ID)
	}

	s.logger.Debug().Int64("activity_id", row.ID).Str("status", row.Status.String()).Msg("activity updated")
	return row, nil
}

// Delete removes an activity; deleting a missing id is not an error
func (s *ActivityStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&models.Activity{}, id)
	if result.Error != nil {
		return tmrerrors.Persistence(result.Error, fmt.Sprintf("failed to delete activity %d", id))
	}

	s.logger.Debug().Int64("activity_id", id).Int64("rows", result.RowsAffected).Msg("activity deleted")
	return nil
}

// FindByID returns the activity with the given id, or nil if there is none
func (s *ActivityStore) FindByID(ctx context.Context, id int64) (*models.Activity, error) {
	var activity models.Activity

	err := s.db.WithContext(ctx).First(&activity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // Missing is not an error
	}
	if err != nil {
		return nil, tmrerrors.Persistence(err, fmt.Sprintf("failed to load activity %d", id))
	}

	activity = normalize(activity)
	return &activity, nil
}

// FindAll returns every activity, oldest first
func (s *ActivityStore) FindAll(ctx context.Context) ([]models.Activity, error) {
	return s.find(ctx, "failed to list activities", orderAscending, nil)
}

// FindByStatus returns activities with the given status, newest first
func (s *ActivityStore) FindByStatus(ctx context.Context, status models.ActivityStatus) ([]models.Activity, error) {
	return s.find(ctx, "failed to list activities by status", orderDescending, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}

// FindByType returns activities of the given type, newest first
func (s *ActivityStore) FindByType(ctx context.Context, activityType models.ActivityType) ([]models.Activity, error) {
	return s.find(ctx, "failed to list activities by type", orderDescending, func(q *gorm.DB) *gorm.DB {
		return q.Where("activity_type = ?", activityType)
	})
}

// FindByStartTime returns activities that started on day's calendar date, oldest first
func (s *ActivityStore) FindByStartTime(ctx context.Context, day time.Time) ([]models.Activity, error) {
	return s.FindByDateRange(ctx, day, day)
}

// FindByDateRange returns activities whose start date lies in [from, to], oldest first.
// Only the calendar dates of from and to are considered.
func (s *ActivityStore) FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Activity, error) {
	lower := models.DateOf(from)
	upper := models.DateOf(to).AddDate(0, 0, 1)

	return s.find(ctx, "failed to list activities by date", orderAscending, func(q *gorm.DB) *gorm.DB {
		return q.Where("start_time >= ? AND start_time < ?", lower, upper)
	})
}

// UpdateStatusByStatus moves every activity in current to next in a single statement
func (s *ActivityStore) UpdateStatusByStatus(ctx context.Context, current, next models.ActivityStatus, endTime time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("status = ?", current).
		Updates(map[string]any{
			"status":   next,
			"end_time": models.LocalDateTime(endTime),
		})
	if result.Error != nil {
		return tmrerrors.Persistence(result.Error, "failed to update activity status")
	}

	s.logger.Debug().
		Str("from", current.String()).
		Str("to", next.String()).
		Int64("rows", result.RowsAffected).
		Msg("bulk status update")
	return nil
}

// find runs a list query with the given ordering and optional filter
func (s *ActivityStore) find(ctx context.Context, errMsg, order string, filter func(*gorm.DB) *gorm.DB) ([]models.Activity, error) {
	var activities []models.Activity

	query := s.db.WithContext(ctx).Model(&models.Activity{})
	if filter != nil {
		query = filter(query)
	}
	if err := query.Order(order).Find(&activities).Error; err != nil {
		return nil, tmrerrors.Persistence(err, errMsg)
	}

	for i := range activities {
		activities[i] = normalize(activities[i])
	}
	return activities, nil
}

// normalize strips zones and sub-second precision. The driver may hand back
// timestamps in a fabricated zone, so reads go through it as well as writes.
func normalize(activity models.Activity) models.Activity {
	return activity.
		WithStartTime(activity.StartTime).
		WithEndTime(activity.EndTime)
}
