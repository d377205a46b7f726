package services

import (
	"context"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/store"
)

func newMarkService(st *store.Store) *EntityService[models.Mark, *models.Mark] {
	return &EntityService[models.Mark, *models.Mark]{
		kind: models.KindMark,
		col:  st.Marks,
		checkRefs: func(ctx context.Context, m *models.Mark, required bool) error {
			if err := checkRef(ctx, st.Exams, models.KindExam, m.ExamID, required); err != nil {
				return err
			}
			if err := checkRef(ctx, st.Subjects, models.KindSubject, m.SubjectID, required); err != nil {
				return err
			}
			return checkRef(ctx, st.Students, models.KindStudent, m.StudentID, required)
		},
		resolveOne: func(ctx context.Context, m *models.Mark) {
			m.Exam = Lookup(ctx, st.Exams, m.ExamID)
			m.Subject = Lookup(ctx, st.Subjects, m.SubjectID)
			m.Student = lookupStudent(ctx, st, m.StudentID)
		},
		resolveMany: func(ctx context.Context, marks []*models.Mark) {
			exams := LookupSet(ctx, st.Exams, keysOf(marks, func(m *models.Mark) string { return m.ExamID }))
			subjects := LookupSet(ctx, st.Subjects, keysOf(marks, func(m *models.Mark) string { return m.SubjectID }))
			students := lookupStudentSet(ctx, st, keysOf(marks, func(m *models.Mark) string { return m.StudentID }))
			for _, m := range marks {
				m.Exam = exams[m.ExamID]
				m.Subject = subjects[m.SubjectID]
				m.Student = students[m.StudentID]
			}
		},
		patch: func(m *models.Mark) store.Patch {
			return store.Patch{
				"totalMarks":    m.TotalMarks,
				"obtainedMarks": m.ObtainedMarks,
				"examId":        m.ExamID,
				"subjectId":     m.SubjectID,
				"studentId":     m.StudentID,
			}
		},
	}
}

func newEnrollmentService(st *store.Store) *EntityService[models.Enrollment, *models.Enrollment] {
	return &EntityService[models.Enrollment, *models.Enrollment]{
		kind: models.KindEnrollment,
		col:  st.Enrollments,
		checkRefs: func(ctx context.Context, e *models.Enrollment, required bool) error {
			if err := checkRef(ctx, st.Courses, models.KindCourse, e.CourseID, required); err != nil {
				return err
			}
			return checkRef(ctx, st.Students, models.KindStudent, e.StudentID, required)
		},
		resolveOne: func(ctx context.Context, e *models.Enrollment) {
			e.Course = Lookup(ctx, st.Courses, e.CourseID)
			e.Student = lookupStudent(ctx, st, e.StudentID)
		},
		resolveMany: func(ctx context.Context, enrollments []*models.Enrollment) {
			courses := LookupSet(ctx, st.Courses, keysOf(enrollments, func(e *models.Enrollment) string { return e.CourseID }))
			students := lookupStudentSet(ctx, st, keysOf(enrollments, func(e *models.Enrollment) string { return e.StudentID }))
			for _, e := range enrollments {
				e.Course = courses[e.CourseID]
				e.Student = students[e.StudentID]
			}
		},
		patch: func(e *models.Enrollment) store.Patch {
			return store.Patch{
				"semester":  e.Semester,
				"grade":     e.Grade,
				"courseId":  e.CourseID,
				"studentId": e.StudentID,
			}
		},
	}
}

func newMaterialService(st *store.Store) *EntityService[models.Material, *models.Material] {
	return &EntityService[models.Material, *models.Material]{
		kind: models.KindMaterial,
		col:  st.Materials,
		checkRefs: func(ctx context.Context, m *models.Material, required bool) error {
			if err := checkRef(ctx, st.Subjects, models.KindSubject, m.SubjectID, required); err != nil {
				return err
			}
			return checkRef(ctx, st.Faculties, models.KindFaculty, m.FacultyID, required)
		},
		resolveOne: func(ctx context.Context, m *models.Material) {
			m.Subject = Lookup(ctx, st.Subjects, m.SubjectID)
			m.Faculty = lookupFaculty(ctx, st, m.FacultyID)
		},
		resolveMany: func(ctx context.Context, materials []*models.Material) {
			subjects := LookupSet(ctx, st.Subjects, keysOf(materials, func(m *models.Material) string { return m.SubjectID }))
			faculties := lookupFacultySet(ctx, st, keysOf(materials, func(m *models.Material) string { return m.FacultyID }))
			for _, m := range materials {
				m.Subject = subjects[m.SubjectID]
				m.Faculty = faculties[m.FacultyID]
			}
		},
		patch: func(m *models.Material) store.Patch {
			return store.Patch{
				"file":      m.File,
				"subjectId": m.SubjectID,
				"facultyId": m.FacultyID,
			}
		},
	}
}

func newProjectService(st *store.Store) *EntityService[models.Project, *models.Project] {
	return &EntityService[models.Project, *models.Project]{
		kind: models.KindProject,
		col:  st.Projects,
		checkRefs: func(ctx context.Context, p *models.Project, required bool) error {
			if err := checkRef(ctx, st.Faculties, models.KindFaculty, p.FacultyID, required); err != nil {
				return err
			}
			return checkRef(ctx, st.Students, models.KindStudent, p.StudentID, required)
		},
		resolveOne: func(ctx context.Context, p *models.Project) {
			p.Faculty = lookupFaculty(ctx, st, p.FacultyID)
			p.Student = lookupStudent(ctx, st, p.StudentID)
		},
		resolveMany: func(ctx context.Context, projects []*models.Project) {
			faculties := lookupFacultySet(ctx, st, keysOf(projects, func(p *models.Project) string { return p.FacultyID }))
			students := lookupStudentSet(ctx, st, keysOf(projects, func(p *models.Project) string { return p.StudentID }))
			for _, p := range projects {
				p.Faculty = faculties[p.FacultyID]
				p.Student = students[p.StudentID]
			}
		},
		uniqueProbe: func(p *models.Project) []uniqueRule {
			return []uniqueRule{{
				filter:  store.Filter{"title": p.Title},
				message: "Project already exists",
			}}
		},
		patch: func(p *models.Project) store.Patch {
			return store.Patch{
				"title":       p.Title,
				"description": p.Description,
				"status":      p.Status,
				"remarks":     p.Remarks,
				"facultyId":   p.FacultyID,
				"studentId":   p.StudentID,
			}
		},
	}
}

func newAnnouncementService(st *store.Store) *EntityService[models.Announcement, *models.Announcement] {
	return &EntityService[models.Announcement, *models.Announcement]{
		kind: models.KindAnnouncement,
		col:  st.Announcements,
		checkRefs: func(ctx context.Context, a *models.Announcement, required bool) error {
			return checkRef(ctx, st.Faculties, models.KindFaculty, a.FacultyID, required)
		},
		resolveOne: func(ctx context.Context, a *models.Announcement) {
			a.Faculty = lookupFaculty(ctx, st, a.FacultyID)
		},
		resolveMany: func(ctx context.Context, announcements []*models.Announcement) {
			faculties := lookupFacultySet(ctx, st, keysOf(announcements, func(a *models.Announcement) string { return a.FacultyID }))
			for _, a := range announcements {
				a.Faculty = faculties[a.FacultyID]
			}
		},
		uniqueProbe: func(a *models.Announcement) []uniqueRule {
			return []uniqueRule{{
				filter:  store.Filter{"title": a.Title},
				message: "Announcement already exists",
			}}
		},
		patch: func(a *models.Announcement) store.Patch {
			return store.Patch{
				"title":       a.Title,
				"description": a.Description,
				"facultyId":   a.FacultyID,
			}
		},
	}
}

func newEventService(st *store.Store) *EntityService[models.Event, *models.Event] {
	return &EntityService[models.Event, *models.Event]{
		kind: models.KindEvent,
		col:  st.Events,
		checkRefs: func(ctx context.Context, e *models.Event, required bool) error {
			return checkRef(ctx, st.Organizations, models.KindOrganization, e.OrganizationID, required)
		},
		resolveOne: func(ctx context.Context, e *models.Event) {
			e.Organization = lookupOrganization(ctx, st, e.OrganizationID)
		},
		resolveMany: func(ctx context.Context, events []*models.Event) {
			orgs := lookupOrganizationSet(ctx, st, keysOf(events, func(e *models.Event) string { return e.OrganizationID }))
			for _, e := range events {
				e.Organization = orgs[e.OrganizationID]
			}
		},
		uniqueProbe: func(e *models.Event) []uniqueRule {
			return []uniqueRule{{
				filter:  store.Filter{"title": e.Title, "organizationId": e.OrganizationID},
				message: "This organization already has this event",
			}}
		},
		patch: func(e *models.Event) store.Patch {
			return store.Patch{
				"title":          e.Title,
				"description":    e.Description,
				"startDate":      e.StartDate,
				"endDate":        e.EndDate,
				"organizationId": e.OrganizationID,
			}
		},
	}
}
