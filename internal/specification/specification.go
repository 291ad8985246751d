package specification

import (
	"time"

	"gorm.io/gorm"

	"taskmanager/internal/models"
)

// Specification is a named, composable filter over tasks. Each specification
// exposes two views of the same condition: an in-memory evaluator and a query
// builder that pushes the condition down to the database. The two must agree
// on every input.
type Specification interface {
	// IsSatisfiedBy evaluates the condition against a loaded task.
	IsSatisfiedBy(task *models.Task) bool

	// Apply adds the condition to a query.
	Apply(db *gorm.DB) *gorm.DB
}

// Compose combines specifications with logical AND into a single in-memory
// predicate. Zero specifications compose to the predicate that accepts every
// task, so an unfiltered listing is simply "no specs".
func Compose(specs ...Specification) func(task *models.Task) bool {
	return func(task *models.Task) bool {
		for _, spec := range specs {
			if !spec.IsSatisfiedBy(task) {
				return false
			}
		}
		return true
	}
}

// ApplyAll adds every specification's condition to a query. With zero
// specifications the query is returned unchanged.
func ApplyAll(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// belongsToUser matches tasks owned by a single user.
type belongsToUser struct {
	userID uint64
}

// BelongsToUser creates a specification matching tasks owned by userID.
func BelongsToUser(userID uint64) Specification {
	return belongsToUser{userID: userID}
}

func (s belongsToUser) IsSatisfiedBy(task *models.Task) bool {
	return task.UserID == s.userID
}

func (s belongsToUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.userID)
}

// categoryIn matches tasks whose category is one of the given labels.
type categoryIn struct {
	categories []string
}

// CategoryIn creates a specification matching tasks in any of the given
// categories. Callers must omit the specification entirely when the set is
// empty; an empty set here matches nothing.
func CategoryIn(categories []string) Specification {
	return categoryIn{categories: categories}
}

func (s categoryIn) IsSatisfiedBy(task *models.Task) bool {
	for _, category := range s.categories {
		if task.Category == category {
			return true
		}
	}
	return false
}

func (s categoryIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category IN ?", s.categories)
}

// stateIn matches tasks whose state is one of the given states.
type stateIn struct {
	states []models.TaskState
}

// StateIn creates a specification matching tasks in any of the given states.
// Callers must omit the specification entirely when the set is empty.
func StateIn(states []models.TaskState) Specification {
	return stateIn{states: states}
}

func (s stateIn) IsSatisfiedBy(task *models.Task) bool {
	for _, state := range s.states {
		if task.State == state {
			return true
		}
	}
	return false
}

func (s stateIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("state IN ?", s.states)
}

// deadlineBetween matches tasks with a deadline inside [from, to], inclusive
// on both ends. Tasks without a deadline never match.
type deadlineBetween struct {
	from time.Time
	to   time.Time
}

// DeadlineBetween creates a specification matching tasks whose deadline falls
// within the closed interval [from, to].
func DeadlineBetween(from, to time.Time) Specification {
	return deadlineBetween{from: from, to: to}
}

func (s deadlineBetween) IsSatisfiedBy(task *models.Task) bool {
	if task.Deadline == nil {
		return false
	}
	deadline := *task.Deadline
	return !deadline.Before(s.from) && !deadline.After(s.to)
}

func (s deadlineBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("deadline IS NOT NULL AND deadline >= ? AND deadline <= ?", s.from, s.to)
}
