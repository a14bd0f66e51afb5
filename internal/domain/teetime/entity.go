package teetime

import (
	"errors"
	"strings"
	"time"

	"teetime/internal/domain/pricing"
)

var (
	ErrInvalidTeeTimeID  = errors.New("tee time id must be positive")
	ErrEmptyCourseName   = errors.New("course name cannot be empty")
	ErrCourseNameTooLong = errors.New("course name is too long (max 255 characters)")
	ErrMissingStartTime  = errors.New("tee time start cannot be zero")
)

const (
	MaxCourseNameLength = 255
)

// TeeTime is a bookable slot on a course. The base price is stored as-is;
// its sign is not checked here.
type TeeTime struct {
	id         int64
	courseName string
	startsAt   time.Time
	basePrice  int64
	createdAt  time.Time
	updatedAt  time.Time
}

func NewTeeTime(id int64, courseName string, startsAt time.Time, basePrice int64) (*TeeTime, error) {
	if id <= 0 {
		return nil, ErrInvalidTeeTimeID
	}
	if err := validateCourseName(courseName); err != nil {
		return nil, err
	}
	if startsAt.IsZero() {
		return nil, ErrMissingStartTime
	}

	return &TeeTime{
		id:         id,
		courseName: strings.TrimSpace(courseName),
		startsAt:   startsAt,
		basePrice:  basePrice,
	}, nil
}

func ReconstructTeeTime(id int64, courseName string, startsAt time.Time, basePrice int64, createdAt, updatedAt time.Time) *TeeTime {
	return &TeeTime{
		id:         id,
		courseName: courseName,
		startsAt:   startsAt,
		basePrice:  basePrice,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (t *TeeTime) HasStarted(now time.Time) bool {
	return !now.Before(t.startsAt)
}

func (t *TeeTime) PricingSlot() pricing.TimeSlot {
	return pricing.TimeSlot{
		ID:        t.id,
		StartsAt:  t.startsAt,
		BasePrice: t.basePrice,
	}
}

func validateCourseName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCourseName
	}
	if len(name) > MaxCourseNameLength {
		return ErrCourseNameTooLong
	}
	return nil
}

func (t *TeeTime) ID() int64            { return t.id }
func (t *TeeTime) CourseName() string   { return t.courseName }
func (t *TeeTime) StartsAt() time.Time  { return t.startsAt }
func (t *TeeTime) BasePrice() int64     { return t.basePrice }
func (t *TeeTime) CreatedAt() time.Time { return t.createdAt }
func (t *TeeTime) UpdatedAt() time.Time { return t.updatedAt }
