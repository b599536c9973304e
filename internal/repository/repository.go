package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contest-compass/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var ErrNotFound = errors.New("record not found")

// UpsertContest inserts the contest or, when a row with the same
// (title, platform) already exists, overwrites everything the platform is
// authoritative for. solution_link is deliberately left alone: ingestion
// payloads never carry it and a previously matched link must survive.
func (r *Repository) UpsertContest(ctx context.Context, contest *models.Contest) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "title"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"start_time", "duration", "url", "past", "updated_at",
		}),
	}).Create(contest).Error
}

// MarkFinishedContests flips past to true for every contest that has
// started before now. The transition is one-way and idempotent, so the
// sweep is safe to run redundantly or concurrently with ingestion.
func (r *Repository) MarkFinishedContests(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Contest{}).
		Where("start_time < ? AND past = ?", now, false).
		Update("past", true)
	return result.RowsAffected, result.Error
}

// ListUnsolvedPast returns finished contests that still have no solution
// link, newest first.
func (r *Repository) ListUnsolvedPast(ctx context.Context) ([]models.Contest, error) {
	var contests []models.Contest
	err := r.db.WithContext(ctx).
		Where("past = ? AND (solution_link IS NULL OR solution_link = '')", true).
		Order("start_time DESC").
		Find(&contests).Error
	return contests, err
}

func (r *Repository) SetSolutionLink(ctx context.Context, id uuid.UUID, link string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Contest{}).
		Where("id = ?", id).
		Update("solution_link", link)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListContests returns contests filtered by platform and past status.
// Past contests are listed newest first, upcoming ones soonest first.
func (r *Repository) ListContests(ctx context.Context, platform string, past *bool) ([]models.Contest, error) {
	query := r.db.WithContext(ctx).Model(&models.Contest{})
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	order := "start_time ASC"
	if past != nil {
		query = query.Where("past = ?", *past)
		if *past {
			order = "start_time DESC"
		}
	}
	var contests []models.Contest
	err := query.Order(order).Find(&contests).Error
	return contests, err
}

func (r *Repository) ListContestsBetween(ctx context.Context, from, to time.Time) ([]models.Contest, error) {
	var contests []models.Contest
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time <= ?", from, to).
		Order("start_time ASC").
		Find(&contests).Error
	return contests, err
}

func (r *Repository) GetContestByID(ctx context.Context, id uuid.UUID) (*models.Contest, error) {
	var contest models.Contest
	err := r.db.WithContext(ctx).First(&contest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &contest, err
}

func (r *Repository) CountContests(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Contest{}).Count(&count).Error
	return count, err
}
