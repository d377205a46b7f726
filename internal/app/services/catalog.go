package services

import (
	"context"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/store"
)

func newRoleService(st *store.Store) *EntityService[models.Role, *models.Role] {
	return &EntityService[models.Role, *models.Role]{
		kind: models.KindRole,
		col:  st.Roles,
		uniqueProbe: func(r *models.Role) []uniqueRule {
			return []uniqueRule{{
				filter:  store.Filter{"name": r.Name},
				message: "Role already exists",
			}}
		},
		patch: func(r *models.Role) store.Patch {
			return store.Patch{
				"name":        r.Name,
				"description": r.Description,
			}
		},
	}
}

func newDepartmentService(st *store.Store) *EntityService[models.Department, *models.Department] {
	return &EntityService[models.Department, *models.Department]{
		kind: models.KindDepartment,
		col:  st.Departments,
		checkRefs: func(ctx context.Context, d *models.Department, required bool) error {
			return checkRef(ctx, st.Organizations, models.KindOrganization, d.OrganizationID, required)
		},
		resolveOne: func(ctx context.Context, d *models.Department) {
			d.Organization = lookupOrganization(ctx, st, d.OrganizationID)
		},
		resolveMany: func(ctx context.Context, departments []*models.Department) {
			orgs := lookupOrganizationSet(ctx, st, keysOf(departments, func(d *models.Department) string { return d.OrganizationID }))
			for _, d := range departments {
				d.Organization = orgs[d.OrganizationID]
			}
		},
		uniqueProbe: func(d *models.Department) []uniqueRule {
			return []uniqueRule{{
				filter:  store.Filter{"name": d.Name},
				message: "Department already exists",
			}}
		},
		patch: func(d *models.Department) store.Patch {
			return store.Patch{
				"name":           d.Name,
				"description":    d.Description,
				"organizationId": d.OrganizationID,
			}
		},
	}
}

func newCourseService(st *store.Store) *EntityService[models.Course, *models.Course] {
	return &EntityService[models.Course, *models.Course]{
		kind: models.KindCourse,
		col:  st.Courses,
		checkRefs: func(ctx context.Context, c *models.Course, required bool) error {
			return checkRef(ctx, st.Organizations, models.KindOrganization, c.OrganizationID, required)
		},
		resolveOne: func(ctx context.Context, c *models.Course) {
			c.Organization = lookupOrganization(ctx, st, c.OrganizationID)
		},
		resolveMany: func(ctx context.Context, courses []*models.Course) {
			orgs := lookupOrganizationSet(ctx, st, keysOf(courses, func(c *models.Course) string { return c.OrganizationID }))
			for _, c := range courses {
				c.Organization = orgs[c.OrganizationID]
			}
		},
		uniqueProbe: func(c *models.Course) []uniqueRule {
			return []uniqueRule{{
				filter:  store.Filter{"name": c.Name, "organizationId": c.OrganizationID},
				message: "This organization already has this course",
			}}
		},
		patch: func(c *models.Course) store.Patch {
			return store.Patch{
				"name":           c.Name,
				"description":    c.Description,
				"credits":        c.Credits,
				"courseType":     c.CourseType,
				"organizationId": c.OrganizationID,
			}
		},
	}
}

func newClassService(st *store.Store) *EntityService[models.Class, *models.Class] {
	return &EntityService[models.Class, *models.Class]{
		kind: models.KindClass,
		col:  st.Classes,
		checkRefs: func(ctx context.Context, c *models.Class, required bool) error {
			if err := checkRef(ctx, st.Faculties, models.KindFaculty, c.FacultyID, required); err != nil {
				return err
			}
			return checkRef(ctx, st.Courses, models.KindCourse, c.CourseID, required)
		},
		resolveOne: func(ctx context.Context, c *models.Class) {
			c.Faculty = lookupFaculty(ctx, st, c.FacultyID)
			c.Course = Lookup(ctx, st.Courses, c.CourseID)
		},
		resolveMany: func(ctx context.Context, classes []*models.Class) {
			faculties := lookupFacultySet(ctx, st, keysOf(classes, func(c *models.Class) string { return c.FacultyID }))
			courses := LookupSet(ctx, st.Courses, keysOf(classes, func(c *models.Class) string { return c.CourseID }))
			for _, c := range classes {
				c.Faculty = faculties[c.FacultyID]
				c.Course = courses[c.CourseID]
			}
		},
		uniqueProbe: func(c *models.Class) []uniqueRule {
			return []uniqueRule{
				{
					filter:  store.Filter{"name": c.Name},
					message: "Class name already exists",
				},
				{
					filter:  store.Filter{"no": c.No},
					message: "Class no already exists",
				},
			}
		},
		patch: func(c *models.Class) store.Patch {
			return store.Patch{
				"name":      c.Name,
				"division":  c.Division,
				"no":        c.No,
				"facultyId": c.FacultyID,
				"courseId":  c.CourseID,
			}
		},
	}
}

func newSubjectService(st *store.Store) *EntityService[models.Subject, *models.Subject] {
	return &EntityService[models.Subject, *models.Subject]{
		kind: models.KindSubject,
		col:  st.Subjects,
		checkRefs: func(ctx context.Context, s *models.Subject, required bool) error {
			return checkRef(ctx, st.Courses, models.KindCourse, s.CourseID, required)
		},
		resolveOne: func(ctx context.Context, s *models.Subject) {
			s.Course = Lookup(ctx, st.Courses, s.CourseID)
		},
		resolveMany: func(ctx context.Context, subjects []*models.Subject) {
			courses := LookupSet(ctx, st.Courses, keysOf(subjects, func(s *models.Subject) string { return s.CourseID }))
			for _, s := range subjects {
				s.Course = courses[s.CourseID]
			}
		},
		uniqueProbe: func(s *models.Subject) []uniqueRule {
			return []uniqueRule{{
				filter:  store.Filter{"name": s.Name},
				message: "Subject already exists",
			}}
		},
		patch: func(s *models.Subject) store.Patch {
			return store.Patch{
				"name":     s.Name,
				"credits":  s.Credits,
				"courseId": s.CourseID,
			}
		},
	}
}

func newExamService(st *store.Store) *EntityService[models.Exam, *models.Exam] {
	return &EntityService[models.Exam, *models.Exam]{
		kind: models.KindExam,
		col:  st.Exams,
		checkRefs: func(ctx context.Context, e *models.Exam, required bool) error {
			return checkRef(ctx, st.Courses, models.KindCourse, e.CourseID, required)
		},
		resolveOne: func(ctx context.Context, e *models.Exam) {
			e.Course = Lookup(ctx, st.Courses, e.CourseID)
		},
		resolveMany: func(ctx context.Context, exams []*models.Exam) {
			courses := LookupSet(ctx, st.Courses, keysOf(exams, func(e *models.Exam) string { return e.CourseID }))
			for _, e := range exams {
				e.Course = courses[e.CourseID]
			}
		},
		uniqueProbe: func(e *models.Exam) []uniqueRule {
			return []uniqueRule{{
				filter:  store.Filter{"name": e.Name},
				message: "Exam already exists",
			}}
		},
		patch: func(e *models.Exam) store.Patch {
			return store.Patch{
				"name":      e.Name,
				"startDate": e.StartDate,
				"endDate":   e.EndDate,
				"courseId":  e.CourseID,
			}
		},
	}
}
