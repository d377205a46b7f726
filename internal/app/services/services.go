// Package services implements the application's domain logic: the uniform
// entity contract shared by every kind, reference resolution, and identity
// resolution for login.
package services

import (
	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/auth"
)

// Services bundles every domain service behind a single dependency handle.
type Services struct {
	Auth  *AuthService
	Users *UsersService

	Admins        *EntityService[models.Admin, *models.Admin]
	Organizations *EntityService[models.Organization, *models.Organization]
	Faculties     *EntityService[models.Faculty, *models.Faculty]
	Students      *EntityService[models.Student, *models.Student]

	Roles       *EntityService[models.Role, *models.Role]
	Departments *EntityService[models.Department, *models.Department]
	Courses     *EntityService[models.Course, *models.Course]
	Classes     *EntityService[models.Class, *models.Class]
	Subjects    *EntityService[models.Subject, *models.Subject]
	Exams       *EntityService[models.Exam, *models.Exam]

	Marks         *EntityService[models.Mark, *models.Mark]
	Enrollments   *EntityService[models.Enrollment, *models.Enrollment]
	Materials     *EntityService[models.Material, *models.Material]
	Projects      *EntityService[models.Project, *models.Project]
	Announcements *EntityService[models.Announcement, *models.Announcement]
	Events        *EntityService[models.Event, *models.Event]

	Subscriptions *EntityService[models.Subscription, *models.Subscription]
	Transactions  *EntityService[models.Transaction, *models.Transaction]
}

// NewServices wires every domain service over the shared store.
func NewServices(st *store.Store, jwtService *auth.JWTService) *Services {
	svc := &Services{
		Auth: NewAuthService(st, jwtService),

		Admins:        newAdminService(st),
		Organizations: newOrganizationService(st),
		Faculties:     newFacultyService(st),
		Students:      newStudentService(st),

		Roles:       newRoleService(st),
		Departments: newDepartmentService(st),
		Courses:     newCourseService(st),
		Classes:     newClassService(st),
		Subjects:    newSubjectService(st),
		Exams:       newExamService(st),

		Marks:         newMarkService(st),
		Enrollments:   newEnrollmentService(st),
		Materials:     newMaterialService(st),
		Projects:      newProjectService(st),
		Announcements: newAnnouncementService(st),
		Events:        newEventService(st),

		Subscriptions: newSubscriptionService(st),
		Transactions:  newTransactionService(st),
	}

	svc.Users = &UsersService{
		store:         st,
		admins:        svc.Admins,
		organizations: svc.Organizations,
		faculties:     svc.Faculties,
		students:      svc.Students,
	}
	return svc
}
