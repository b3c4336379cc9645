// Package domain defines the core business entities of the MicroCourses
// service: users and their roles, courses and lessons, creator applications,
// enrollments, lesson progress, and certificates. Entities carry their own
// validation; lifecycle rules that span entities live in the service layer.
package domain
