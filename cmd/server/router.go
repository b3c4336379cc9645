package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/microcourses/api/internal/api/middleware"
	"github.com/microcourses/api/internal/domain"
)

// newRouter assembles the full route tree. The rate limiter runs before
// authentication so that unauthenticated floods are cut off without paying
// for token verification; the idempotency cache runs after authentication
// because its keys are scoped per user.
func (app *application) newRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(app.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(app.rateLimiter.Limit)

	r.Get("/.well-known/hackathon.json", app.metaHandler.Manifest)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.metaHandler.Health)
		r.Get("/_meta", app.metaHandler.Meta)

		r.Post("/auth/register", app.authHandler.Register)
		r.Post("/auth/login", app.authHandler.Login)

		// Public catalog. Authentication is optional here: anonymous
		// callers see published content only, while owners and admins can
		// read their unpublished courses through the same routes.
		r.Group(func(r chi.Router) {
			r.Use(app.authenticator.AuthenticateOptional)

			r.Get("/courses", app.courseHandler.List)
			r.Get("/courses/{courseID}", app.courseHandler.Get)
			r.Get("/courses/{courseID}/lessons", app.courseHandler.ListLessons)
			r.Get("/lesson/{lessonID}", app.courseHandler.GetLesson)
		})

		// Any authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(app.authenticator.Authenticate)
			r.Use(app.idempotency.Handle)

			r.Get("/auth/me", app.authHandler.Me)

			// Learner endpoints. The role gate means creators and learners
			// see different surfaces; admins pass every gate.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleLearner))

				r.Post("/creator/apply", app.creatorHandler.Apply)
				r.Route("/learn", func(r chi.Router) {
					r.Post("/enroll", app.learnHandler.Enroll)
					r.Post("/complete", app.learnHandler.CompleteLesson)
					r.Get("/progress/{courseID}", app.learnHandler.Progress)
					r.Post("/certificate", app.learnHandler.IssueCertificate)
					r.Get("/certificate/{courseID}", app.learnHandler.GetCertificate)
				})
			})

			// Creator authoring.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleCreator))

				r.Post("/courses", app.courseHandler.Create)
				r.Put("/courses/{courseID}", app.courseHandler.Update)
				r.Post("/courses/{courseID}/lessons", app.courseHandler.AddLesson)
				r.Post("/courses/{courseID}/submit", app.courseHandler.Submit)
				r.Get("/creator/dashboard", app.courseHandler.Mine)
			})

			// Admin review.
			r.Route("/admin/review", func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))

				r.Get("/courses", app.adminHandler.ReviewQueue)
				r.Post("/courses/{courseID}/approve", app.adminHandler.PublishCourse)
				r.Get("/creators", app.adminHandler.ListApplications)
				r.Post("/creators/{applicationID}/approve", app.adminHandler.ApproveApplication)
			})
		})
	})

	return r
}
