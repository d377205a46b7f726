package controllers

import (
	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/services"
)

// Controllers bundles every HTTP controller behind a single handle.
type Controllers struct {
	Auth  *AuthController
	Users *UsersController

	Admins        *ResourceController[models.Admin, *models.Admin]
	Organizations *ResourceController[models.Organization, *models.Organization]
	Faculties     *ResourceController[models.Faculty, *models.Faculty]
	Students      *ResourceController[models.Student, *models.Student]

	Roles       *ResourceController[models.Role, *models.Role]
	Departments *ResourceController[models.Department, *models.Department]
	Courses     *ResourceController[models.Course, *models.Course]
	Classes     *ResourceController[models.Class, *models.Class]
	Subjects    *ResourceController[models.Subject, *models.Subject]
	Exams       *ResourceController[models.Exam, *models.Exam]

	Marks         *ResourceController[models.Mark, *models.Mark]
	Enrollments   *ResourceController[models.Enrollment, *models.Enrollment]
	Materials     *ResourceController[models.Material, *models.Material]
	Projects      *ResourceController[models.Project, *models.Project]
	Announcements *ResourceController[models.Announcement, *models.Announcement]
	Events        *ResourceController[models.Event, *models.Event]

	Subscriptions *ResourceController[models.Subscription, *models.Subscription]
	Transactions  *ResourceController[models.Transaction, *models.Transaction]
}

// NewControllers wires every controller over the service layer.
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		Auth:  NewAuthController(svc.Auth),
		Users: NewUsersController(svc.Users),

		Admins:        NewResourceController(svc.Admins),
		Organizations: NewResourceController(svc.Organizations),
		Faculties:     NewResourceController(svc.Faculties),
		Students:      NewResourceController(svc.Students),

		Roles:       NewResourceController(svc.Roles),
		Departments: NewResourceController(svc.Departments),
		Courses:     NewResourceController(svc.Courses),
		Classes:     NewResourceController(svc.Classes),
		Subjects:    NewResourceController(svc.Subjects),
		Exams:       NewResourceController(svc.Exams),

		Marks:         NewResourceController(svc.Marks),
		Enrollments:   NewResourceController(svc.Enrollments),
		Materials:     NewResourceController(svc.Materials),
		Projects:      NewResourceController(svc.Projects),
		Announcements: NewResourceController(svc.Announcements),
		Events:        NewResourceController(svc.Events),

		Subscriptions: NewResourceController(svc.Subscriptions),
		Transactions:  NewResourceController(svc.Transactions),
	}
}
