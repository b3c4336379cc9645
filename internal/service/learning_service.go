package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/microcourses/api/internal/domain"
	"github.com/microcourses/api/internal/platform/logger"
	"github.com/microcourses/api/internal/store"
)

// LearningService implements the learner side of the system: enrollment,
// lesson completion, progress, and certificate issuance.
type LearningService struct {
	courses      store.CourseStore
	lessons      store.LessonStore
	enrollments  store.EnrollmentStore
	progress     store.ProgressStore
	certificates store.CertificateStore
	logger       *slog.Logger
}

// NewLearningService creates a new LearningService.
func NewLearningService(
	courses store.CourseStore,
	lessons store.LessonStore,
	enrollments store.EnrollmentStore,
	progress store.ProgressStore,
	certificates store.CertificateStore,
	logger *slog.Logger,
) *LearningService {
	if courses == nil {
		panic("courses store cannot be nil")
	}
	if lessons == nil {
		panic("lessons store cannot be nil")
	}
	if enrollments == nil {
		panic("enrollments store cannot be nil")
	}
	if progress == nil {
		panic("progress store cannot be nil")
	}
	if certificates == nil {
		panic("certificates store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LearningService{
		courses:      courses,
		lessons:      lessons,
		enrollments:  enrollments,
		progress:     progress,
		certificates: certificates,
		logger:       logger.With(slog.String("component", "learning_service")),
	}
}

// Enroll joins the user to a published course. Enrolling again in the same
// course succeeds and changes nothing.
func (s *LearningService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*domain.Enrollment, error) {
	if _, err := s.courses.GetPublished(ctx, courseID); err != nil {
		return nil, err
	}

	enrollment, err := domain.NewEnrollment(userID, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// CompleteLesson marks a lesson done for the user and returns the updated
// progress of its course. The lesson's course must be published; completion
// is an upsert, so repeating it is harmless.
func (s *LearningService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) (domain.CourseProgress, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return domain.CourseProgress{}, err
	}

	if _, err := s.courses.GetPublished(ctx, lesson.CourseID); err != nil {
		if store.IsNotFoundError(err) {
			return domain.CourseProgress{}, store.ErrLessonNotFound
		}
		return domain.CourseProgress{}, err
	}

	now := time.Now().UTC()
	record := &domain.LessonProgress{
		ID:          uuid.New(),
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
	}
	if err := s.progress.Upsert(ctx, record); err != nil {
		return domain.CourseProgress{}, err
	}

	return s.Progress(ctx, userID, lesson.CourseID)
}

// Progress reports the user's completion of a published course.
func (s *LearningService) Progress(ctx context.Context, userID, courseID uuid.UUID) (domain.CourseProgress, error) {
	if _, err := s.courses.GetPublished(ctx, courseID); err != nil {
		return domain.CourseProgress{}, err
	}

	total, err := s.lessons.CountByCourse(ctx, courseID)
	if err != nil {
		return domain.CourseProgress{}, err
	}

	completed, err := s.progress.CountCompleted(ctx, userID, courseID)
	if err != nil {
		return domain.CourseProgress{}, err
	}

	return domain.NewCourseProgress(total, completed), nil
}

// IssueCertificate issues a certificate for a fully completed course.
// Issuance is idempotent: once a certificate exists for the (user, course)
// pair, every later request returns that same certificate. Two concurrent
// first issuances race on the storage constraint and both observe the
// winner's certificate.
func (s *LearningService) IssueCertificate(ctx context.Context, userID, courseID uuid.UUID) (*domain.Certificate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.certificates.GetByUserAndCourse(ctx, userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrCertificateNotFound) {
		return nil, err
	}

	progress, err := s.Progress(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !progress.Complete() {
		return nil, ErrCourseIncomplete
	}

	cert, err := domain.NewCertificate(userID, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.certificates.Create(ctx, cert); err != nil {
		if errors.Is(err, store.ErrCertificateExists) {
			return s.certificates.GetByUserAndCourse(ctx, userID, courseID)
		}
		return nil, err
	}

	log.Info("certificate issued",
		slog.String("user_id", userID.String()),
		slog.String("course_id", courseID.String()),
		slog.String("serial_hash", cert.SerialHash))
	return cert, nil
}

// GetCertificate returns the user's certificate for a course, if one has
// been issued.
func (s *LearningService) GetCertificate(ctx context.Context, userID, courseID uuid.UUID) (*domain.Certificate, error) {
	return s.certificates.GetByUserAndCourse(ctx, userID, courseID)
}
