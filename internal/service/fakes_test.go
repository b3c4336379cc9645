package service_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/store"
)

// In-memory store fakes. Each fake enforces the same uniqueness and
// conditional-update semantics as the PostgreSQL implementations so that
// service tests exercise real workflow behavior.

type fakeCourseStore struct {
	mu      sync.Mutex
	courses map[uuid.UUID]*domain.Course

	// afterGet, when set, runs once after GetByID returns its copy. Race
	// tests use it to mutate the stored course between a service's read
	// and its conditional write.
	afterGet func()
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[uuid.UUID]*domain.Course)}
}

func (f *fakeCourseStore) Create(_ context.Context, course *domain.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *course
	f.courses[course.ID] = &c
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	f.mu.Lock()
	course, ok := f.courses[id]
	var c domain.Course
	if ok {
		c = *course
	}
	f.mu.Unlock()

	if hook := f.afterGet; hook != nil {
		f.afterGet = nil
		hook()
	}
	if !ok {
		return nil, store.ErrCourseNotFound
	}
	return &c, nil
}

func (f *fakeCourseStore) GetPublished(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok || course.Status != domain.CourseStatusPublished {
		return nil, store.ErrCourseNotFound
	}
	c := *course
	return &c, nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *domain.Course) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.courses[course.ID]
	if !ok || !existing.Status.Editable() {
		return store.ErrCourseNotFound
	}
	existing.Title = course.Title
	existing.Description = course.Description
	return nil
}

func (f *fakeCourseStore) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.CourseStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	course, ok := f.courses[id]
	if !ok || course.Status != from {
		return store.ErrCourseNotFound
	}
	course.Status = to
	return nil
}

func (f *fakeCourseStore) ListByStatus(_ context.Context, status domain.CourseStatus, limit, offset int) ([]*domain.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Course
	for _, course := range f.courses {
		if course.Status == status {
			c := *course
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (f *fakeCourseStore) ListByCreator(_ context.Context, creatorID uuid.UUID, limit, offset int) ([]*domain.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Course
	for _, course := range f.courses {
		if course.CreatorID == creatorID {
			c := *course
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

type fakeLessonStore struct {
	mu      sync.Mutex
	courses *fakeCourseStore
	lessons map[uuid.UUID]*domain.Lesson
}

func newFakeLessonStore(courses *fakeCourseStore) *fakeLessonStore {
	return &fakeLessonStore{courses: courses, lessons: make(map[uuid.UUID]*domain.Lesson)}
}

func (f *fakeLessonStore) Create(_ context.Context, lesson *domain.Lesson) error {
	f.courses.mu.Lock()
	course, ok := f.courses.courses[lesson.CourseID]
	editable := ok && course.Status.Editable()
	f.courses.mu.Unlock()
	if !editable {
		return store.ErrCourseNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.lessons {
		if existing.CourseID == lesson.CourseID && existing.OrderIndex == lesson.OrderIndex {
			return store.ErrDuplicateLessonOrder
		}
	}
	l := *lesson
	f.lessons[lesson.ID] = &l
	return nil
}

func (f *fakeLessonStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lesson, ok := f.lessons[id]
	if !ok {
		return nil, store.ErrLessonNotFound
	}
	l := *lesson
	return &l, nil
}

func (f *fakeLessonStore) ListByCourse(_ context.Context, courseID uuid.UUID) ([]*domain.Lesson, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Lesson
	for _, lesson := range f.lessons {
		if lesson.CourseID == courseID {
			l := *lesson
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeLessonStore) CountByCourse(_ context.Context, courseID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, lesson := range f.lessons {
		if lesson.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

type enrollmentKey struct {
	userID   uuid.UUID
	courseID uuid.UUID
}

type fakeEnrollmentStore struct {
	mu          sync.Mutex
	enrollments map[enrollmentKey]*domain.Enrollment
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrollments: make(map[enrollmentKey]*domain.Enrollment)}
}

func (f *fakeEnrollmentStore) Create(_ context.Context, enrollment *domain.Enrollment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := enrollmentKey{enrollment.UserID, enrollment.CourseID}
	if _, ok := f.enrollments[key]; ok {
		return nil // duplicate enrollment is a no-op
	}
	e := *enrollment
	f.enrollments[key] = &e
	return nil
}

type progressKey struct {
	userID   uuid.UUID
	lessonID uuid.UUID
}

type fakeProgressStore struct {
	mu      sync.Mutex
	lessons *fakeLessonStore
	records map[progressKey]*domain.LessonProgress
}

func newFakeProgressStore(lessons *fakeLessonStore) *fakeProgressStore {
	return &fakeProgressStore{
		lessons: lessons,
		records: make(map[progressKey]*domain.LessonProgress),
	}
}

func (f *fakeProgressStore) Upsert(_ context.Context, progress *domain.LessonProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := *progress
	f.records[progressKey{progress.UserID, progress.LessonID}] = &p
	return nil
}

func (f *fakeProgressStore) CountCompleted(ctx context.Context, userID, courseID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for key, record := range f.records {
		if key.userID != userID || !record.Completed {
			continue
		}
		lesson, err := f.lessons.GetByID(ctx, key.lessonID)
		if err != nil {
			continue
		}
		if lesson.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

type fakeCertificateStore struct {
	mu    sync.Mutex
	certs map[enrollmentKey]*domain.Certificate
}

func newFakeCertificateStore() *fakeCertificateStore {
	return &fakeCertificateStore{certs: make(map[enrollmentKey]*domain.Certificate)}
}

func (f *fakeCertificateStore) Create(_ context.Context, cert *domain.Certificate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := enrollmentKey{cert.UserID, cert.CourseID}
	if _, ok := f.certs[key]; ok {
		return store.ErrCertificateExists
	}
	c := *cert
	f.certs[key] = &c
	return nil
}

func (f *fakeCertificateStore) GetByUserAndCourse(_ context.Context, userID, courseID uuid.UUID) (*domain.Certificate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cert, ok := f.certs[enrollmentKey{userID, courseID}]
	if !ok {
		return nil, store.ErrCertificateNotFound
	}
	c := *cert
	return &c, nil
}

type fakeApplicationStore struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*domain.CreatorApplication
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: make(map[uuid.UUID]*domain.CreatorApplication)}
}

func (f *fakeApplicationStore) Create(_ context.Context, app *domain.CreatorApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.apps {
		if existing.UserID == app.UserID && existing.Status == domain.ApplicationStatusPending {
			return store.ErrPendingApplicationExists
		}
	}
	a := *app
	f.apps[app.ID] = &a
	return nil
}

func (f *fakeApplicationStore) Approve(_ context.Context, id uuid.UUID) (*domain.CreatorApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	app, ok := f.apps[id]
	if !ok || app.Status != domain.ApplicationStatusPending {
		return nil, store.ErrApplicationNotFound
	}
	app.Status = domain.ApplicationStatusApproved
	a := *app
	return &a, nil
}

func (f *fakeApplicationStore) ListPending(_ context.Context, limit, offset int) ([]*store.PendingApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*store.PendingApplication
	for _, app := range f.apps {
		if app.Status == domain.ApplicationStatusPending {
			out = append(out, &store.PendingApplication{
				ID:        app.ID,
				UserID:    app.UserID,
				Bio:       app.Bio,
				Status:    app.Status,
				CreatedAt: app.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (f *fakeApplicationStore) WithTx(_ *sql.Tx) store.ApplicationStore {
	return f
}

// fakeTranscriber returns a fixed transcript so tests can assert it was
// applied to new lessons.
type fakeTranscriber struct {
	transcript string
	err        error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	return f.transcript, f.err
}
