package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mindora/wellness/internal/models"
)

// memoryDB holds every collection behind a single lock so that cascading
// deletes are atomic.
type memoryDB struct {
	mu        sync.RWMutex
	users     map[string]models.User
	moods     map[string]models.MoodEntry
	journals  map[string]models.JournalEntry
	exercises map[string]models.ExerciseSession
}

// NewMemoryStore returns an empty in-process store. Data is lost on exit.
func NewMemoryStore() *Store {
	db := &memoryDB{
		users:     make(map[string]models.User),
		moods:     make(map[string]models.MoodEntry),
		journals:  make(map[string]models.JournalEntry),
		exercises: make(map[string]models.ExerciseSession),
	}
	return &Store{
		Users:     &memoryUsers{db},
		Moods:     &memoryMoods{db},
		Journals:  &memoryJournals{db},
		Exercises: &memoryExercises{db},
	}
}

type memoryUsers struct{ db *memoryDB }

func (r *memoryUsers) Create(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[user.ID]; ok {
		return ErrDuplicate
	}
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicate
		}
	}
	r.db.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) List(_ context.Context) ([]models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]models.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryUsers) Update(_ context.Context, user *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[user.ID]; !ok {
		return ErrNotFound
	}
	r.db.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) UpdatePassword(_ context.Context, id, hash string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = hash
	r.db.users[id] = u
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.users, id)
	for k, e := range r.db.moods {
		if e.UserID == id {
			delete(r.db.moods, k)
		}
	}
	for k, e := range r.db.journals {
		if e.UserID == id {
			delete(r.db.journals, k)
		}
	}
	for k, e := range r.db.exercises {
		if e.UserID == id {
			delete(r.db.exercises, k)
		}
	}
	return nil
}

func (r *memoryUsers) HasSuperAdmin(_ context.Context) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.IsSuperAdmin {
			return true, nil
		}
	}
	return false, nil
}

type memoryMoods struct{ db *memoryDB }

func (r *memoryMoods) Create(_ context.Context, entry *models.MoodEntry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.moods[entry.ID] = *entry
	return nil
}

func (r *memoryMoods) ListByUser(_ context.Context, userID string, limit int) ([]models.MoodEntry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return latest(r.db.moods, func(e models.MoodEntry) bool { return e.UserID == userID }, limit), nil
}

func (r *memoryMoods) ListAll(_ context.Context) ([]models.MoodEntry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return latest(r.db.moods, nil, 0), nil
}

func (r *memoryMoods) CountByUser(_ context.Context, userID string) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return countWhere(r.db.moods, func(e models.MoodEntry) bool { return e.UserID == userID }), nil
}

type memoryJournals struct{ db *memoryDB }

func (r *memoryJournals) Create(_ context.Context, entry *models.JournalEntry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.journals[entry.ID] = *entry
	return nil
}

func (r *memoryJournals) FindByID(_ context.Context, id string) (*models.JournalEntry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	e, ok := r.db.journals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *memoryJournals) ListByUser(_ context.Context, userID string, limit int) ([]models.JournalEntry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return latest(r.db.journals, func(e models.JournalEntry) bool { return e.UserID == userID }, limit), nil
}

func (r *memoryJournals) ListAll(_ context.Context) ([]models.JournalEntry, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return latest(r.db.journals, nil, 0), nil
}

func (r *memoryJournals) CountByUser(_ context.Context, userID string) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return countWhere(r.db.journals, func(e models.JournalEntry) bool { return e.UserID == userID }), nil
}

func (r *memoryJournals) Update(_ context.Context, entry *models.JournalEntry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.journals[entry.ID]; !ok {
		return ErrNotFound
	}
	r.db.journals[entry.ID] = *entry
	return nil
}

func (r *memoryJournals) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.journals[id]; !ok {
		return ErrNotFound
	}
	delete(r.db.journals, id)
	return nil
}

type memoryExercises struct{ db *memoryDB }

func (r *memoryExercises) Create(_ context.Context, session *models.ExerciseSession) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.exercises[session.ID] = *session
	return nil
}

func (r *memoryExercises) ListByUser(_ context.Context, userID string, limit int) ([]models.ExerciseSession, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return latest(r.db.exercises, func(s models.ExerciseSession) bool { return s.UserID == userID }, limit), nil
}

func (r *memoryExercises) ListAll(_ context.Context) ([]models.ExerciseSession, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return latest(r.db.exercises, nil, 0), nil
}

func (r *memoryExercises) CountByUser(_ context.Context, userID string) (int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return countWhere(r.db.exercises, func(s models.ExerciseSession) bool { return s.UserID == userID }), nil
}

// latest filters m, orders by entry date descending and applies limit.
func latest[T interface{ EntryDate() time.Time }](m map[string]T, keep func(T) bool, limit int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate().After(out[j].EntryDate()) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func countWhere[T any](m map[string]T, keep func(T) bool) int64 {
	var n int64
	for _, v := range m {
		if keep(v) {
			n++
		}
	}
	return n
}
