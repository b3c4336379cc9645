package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/generation"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/store"
)

// CourseService implements the course lifecycle: authoring in draft,
// submission for review, and publication. Ownership failures surface as
// store.ErrCourseNotFound so that callers cannot distinguish another
// creator's course from a nonexistent one.
type CourseService struct {
	courses     store.CourseStore
	lessons     store.LessonStore
	transcriber generation.Transcriber
	logger      *slog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	courses store.CourseStore,
	lessons store.LessonStore,
	transcriber generation.Transcriber,
	logger *slog.Logger,
) *CourseService {
	if courses == nil {
		panic("courses store cannot be nil")
	}
	if lessons == nil {
		panic("lessons store cannot be nil")
	}
	if transcriber == nil {
		panic("transcriber cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CourseService{
		courses:     courses,
		lessons:     lessons,
		transcriber: transcriber,
		logger:      logger.With(slog.String("component", "course_service")),
	}
}

// Create makes a new draft course owned by the creator.
func (s *CourseService) Create(ctx context.Context, creatorID uuid.UUID, title, description string) (*domain.Course, error) {
	course, err := domain.NewCourse(creatorID, title, description)
	if err != nil {
		return nil, err
	}

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// Get returns a course if the viewer is allowed to see it. Published
// courses are visible to everyone; unpublished courses only to their owner
// and to admins, who need them for review.
func (s *CourseService) Get(ctx context.Context, id, viewerID uuid.UUID, viewerRole domain.Role) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if course.Status != domain.CourseStatusPublished &&
		!course.OwnedBy(viewerID) && viewerRole != domain.RoleAdmin {
		return nil, store.ErrCourseNotFound
	}

	return course, nil
}

// GetPublished returns a published course visible to any caller.
func (s *CourseService) GetPublished(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return s.courses.GetPublished(ctx, id)
}

// Update changes a course's title and/or description; nil fields are left
// untouched. Only the owner may update, and only before publication.
func (s *CourseService) Update(ctx context.Context, id, actorID uuid.UUID, title, description *string) (*domain.Course, error) {
	course, err := s.ownedCourse(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if !course.Status.Editable() {
		return nil, ErrCourseNotEditable
	}

	if title != nil {
		course.Title = *title
	}
	if description != nil {
		course.Description = *description
	}
	if err := s.courses.Update(ctx, course); err != nil {
		// The course existed moments ago, so a vanished row means the
		// conditional write lost against a concurrent publication.
		if errors.Is(err, store.ErrCourseNotFound) {
			return nil, ErrCourseNotEditable
		}
		return nil, err
	}

	return course, nil
}

// AddLesson appends a lesson to an unpublished course owned by the actor.
// The transcript is derived from the content before the lesson is stored.
func (s *CourseService) AddLesson(ctx context.Context, courseID, actorID uuid.UUID, title, content string, orderIndex int) (*domain.Lesson, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	course, err := s.ownedCourse(ctx, courseID, actorID)
	if err != nil {
		return nil, err
	}

	if !course.Status.Editable() {
		return nil, ErrCourseNotEditable
	}

	transcript, err := s.transcriber.Transcribe(ctx, content)
	if err != nil {
		log.Error("transcript generation failed",
			slog.String("course_id", courseID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("generating transcript: %w", err)
	}

	lesson, err := domain.NewLesson(courseID, title, content, transcript, orderIndex)
	if err != nil {
		return nil, err
	}

	if err := s.lessons.Create(ctx, lesson); err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return nil, ErrCourseNotEditable
		}
		return nil, err
	}

	return lesson, nil
}

// GetLesson returns a single lesson, including its transcript. Visibility
// follows the lesson's course: a lesson of an unpublished course is visible
// only to the course owner and admins, and reports ErrLessonNotFound to
// everyone else.
func (s *CourseService) GetLesson(ctx context.Context, lessonID, viewerID uuid.UUID, viewerRole domain.Role) (*domain.Lesson, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Get(ctx, lesson.CourseID, viewerID, viewerRole); err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrLessonNotFound
		}
		return nil, err
	}

	return lesson, nil
}

// ListLessons returns the lessons of a course in order, subject to the same
// visibility rules as Get.
func (s *CourseService) ListLessons(ctx context.Context, courseID, viewerID uuid.UUID, viewerRole domain.Role) ([]*domain.Lesson, error) {
	if _, err := s.Get(ctx, courseID, viewerID, viewerRole); err != nil {
		return nil, err
	}

	return s.lessons.ListByCourse(ctx, courseID)
}

// Submit moves an owned draft course into review.
func (s *CourseService) Submit(ctx context.Context, id, actorID uuid.UUID) (*domain.Course, error) {
	course, err := s.ownedCourse(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, course, domain.CourseStatusSubmitted)
}

// Publish moves a submitted course to published. The caller is expected to
// be an admin; that gate lives at the HTTP layer.
func (s *CourseService) Publish(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, course, domain.CourseStatusPublished)
}

// ListPublished returns a page of published courses, newest first.
func (s *CourseService) ListPublished(ctx context.Context, limit, offset int) ([]*domain.Course, error) {
	return s.courses.ListByStatus(ctx, domain.CourseStatusPublished, limit, offset)
}

// ListSubmitted returns a page of courses awaiting review, newest first.
func (s *CourseService) ListSubmitted(ctx context.Context, limit, offset int) ([]*domain.Course, error) {
	return s.courses.ListByStatus(ctx, domain.CourseStatusSubmitted, limit, offset)
}

// ListByCreator returns a page of the creator's own courses, newest first.
func (s *CourseService) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]*domain.Course, error) {
	return s.courses.ListByCreator(ctx, creatorID, limit, offset)
}

// ownedCourse loads a course and verifies ownership, collapsing an
// ownership mismatch into store.ErrCourseNotFound.
func (s *CourseService) ownedCourse(ctx context.Context, id, actorID uuid.UUID) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !course.OwnedBy(actorID) {
		return nil, store.ErrCourseNotFound
	}

	return course, nil
}

// transition applies a lifecycle transition through a conditional update so
// that a concurrent transition cannot double-apply. A lost race reports
// ErrInvalidCourseState, same as an out-of-order request.
func (s *CourseService) transition(ctx context.Context, course *domain.Course, to domain.CourseStatus) (*domain.Course, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !course.Status.CanTransitionTo(to) {
		return nil, ErrInvalidCourseState
	}

	if err := s.courses.UpdateStatus(ctx, course.ID, course.Status, to); err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrInvalidCourseState
		}
		return nil, err
	}

	log.Info("course transitioned",
		slog.String("course_id", course.ID.String()),
		slog.String("from", string(course.Status)),
		slog.String("to", string(to)))

	course.Status = to
	return course, nil
}
