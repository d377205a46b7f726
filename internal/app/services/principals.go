package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/unisity/unisity/internal/app/models"
	"github.com/unisity/unisity/internal/app/store"
	"github.com/unisity/unisity/internal/pkg/apperrors"
	"github.com/unisity/unisity/internal/pkg/auth"
)

// emailExists reports whether any document in the collection carries the email.
func emailExists[T any, P store.Document[T]](ctx context.Context, col store.Collection[T, P], email string) (bool, error) {
	_, err := col.FindOne(ctx, store.Filter{"email": email})
	if err == nil {
		return true, nil
	}
	if errors.Is(err, store.ErrNoDocument) {
		return false, nil
	}
	return false, fmt.Errorf("error checking email: %w", err)
}

// principalEmailTaken probes all four principal stores. Create and email
// changes both run it, so the login identifier stays unique across account
// kinds and the probe order during login can never be ambiguous.
func principalEmailTaken(ctx context.Context, st *store.Store, email string) (bool, error) {
	if taken, err := emailExists(ctx, st.Admins, email); taken || err != nil {
		return taken, err
	}
	if taken, err := emailExists(ctx, st.Organizations, email); taken || err != nil {
		return taken, err
	}
	if taken, err := emailExists(ctx, st.Faculties, email); taken || err != nil {
		return taken, err
	}
	return emailExists(ctx, st.Students, email)
}

// preparePrincipal enforces the cross-store email uniqueness and replaces
// the supplied plaintext secret with its hash before the principal is
// persisted.
func preparePrincipal(ctx context.Context, st *store.Store, email string, passwordHash *string) error {
	taken, err := principalEmailTaken(ctx, st, email)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewDuplicateEntityError("Email already exists")
	}

	hash, err := auth.HashPassword(*passwordHash)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	*passwordHash = hash
	return nil
}

// checkOrganizationEmailChange re-runs the cross-store probe when an update
// moves an organization to a new email. The per-store unique index cannot
// see the other principal tables, so this check is the only guard on the
// update path.
func checkOrganizationEmailChange(ctx context.Context, st *store.Store, id, email string) error {
	if email == "" {
		return nil
	}
	current, err := st.Organizations.FindByID(ctx, id)
	if errors.Is(err, store.ErrNoDocument) {
		// Update itself reports the missing entity.
		return nil
	}
	if err != nil {
		return fmt.Errorf("error retrieving organization: %w", err)
	}
	if current.Email == email {
		return nil
	}

	taken, err := principalEmailTaken(ctx, st, email)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.NewDuplicateEntityError("Email already exists")
	}
	return nil
}

// Embedded principals never carry their secret hash. Every read-time embed
// of an organization, faculty or student goes through these wrappers, which
// scrub the hash after the lookup.
func lookupOrganization(ctx context.Context, st *store.Store, id string) *models.Organization {
	o := Lookup(ctx, st.Organizations, id)
	if o != nil {
		o.PasswordHash = ""
	}
	return o
}

func lookupOrganizationSet(ctx context.Context, st *store.Store, ids []string) map[string]*models.Organization {
	orgs := LookupSet(ctx, st.Organizations, ids)
	for _, o := range orgs {
		o.PasswordHash = ""
	}
	return orgs
}

func lookupFaculty(ctx context.Context, st *store.Store, id string) *models.Faculty {
	f := Lookup(ctx, st.Faculties, id)
	if f != nil {
		f.PasswordHash = ""
	}
	return f
}

func lookupFacultySet(ctx context.Context, st *store.Store, ids []string) map[string]*models.Faculty {
	faculties := LookupSet(ctx, st.Faculties, ids)
	for _, f := range faculties {
		f.PasswordHash = ""
	}
	return faculties
}

func lookupStudent(ctx context.Context, st *store.Store, id string) *models.Student {
	s := Lookup(ctx, st.Students, id)
	if s != nil {
		s.PasswordHash = ""
	}
	return s
}

func lookupStudentSet(ctx context.Context, st *store.Store, ids []string) map[string]*models.Student {
	students := LookupSet(ctx, st.Students, ids)
	for _, s := range students {
		s.PasswordHash = ""
	}
	return students
}

func newAdminService(st *store.Store) *EntityService[models.Admin, *models.Admin] {
	return &EntityService[models.Admin, *models.Admin]{
		kind: models.KindAdmin,
		col:  st.Admins,
		checkRefs: func(ctx context.Context, a *models.Admin, required bool) error {
			return checkRef(ctx, st.Roles, models.KindRole, a.RoleID, required)
		},
		resolveOne: func(ctx context.Context, a *models.Admin) {
			a.Role = Lookup(ctx, st.Roles, a.RoleID)
		},
		resolveMany: func(ctx context.Context, admins []*models.Admin) {
			roles := LookupSet(ctx, st.Roles, keysOf(admins, func(a *models.Admin) string { return a.RoleID }))
			for _, a := range admins {
				a.Role = roles[a.RoleID]
			}
		},
		beforeCreate: func(ctx context.Context, a *models.Admin) error {
			return preparePrincipal(ctx, st, a.Email, &a.PasswordHash)
		},
		redact: func(a *models.Admin) {
			a.PasswordHash = ""
		},
		patch: func(a *models.Admin) store.Patch {
			return store.Patch{
				"firstName":   a.FirstName,
				"lastName":    a.LastName,
				"contact":     a.Contact,
				"gender":      a.Gender,
				"addressLine": a.AddressLine,
				"city":        a.City,
				"state":       a.State,
				"country":     a.Country,
				"roleId":      a.RoleID,
			}
		},
	}
}

func newOrganizationService(st *store.Store) *EntityService[models.Organization, *models.Organization] {
	return &EntityService[models.Organization, *models.Organization]{
		kind: models.KindOrganization,
		col:  st.Organizations,
		checkRefs: func(ctx context.Context, o *models.Organization, required bool) error {
			return checkRef(ctx, st.Roles, models.KindRole, o.RoleID, required)
		},
		resolveOne: func(ctx context.Context, o *models.Organization) {
			o.Role = Lookup(ctx, st.Roles, o.RoleID)
		},
		resolveMany: func(ctx context.Context, orgs []*models.Organization) {
			roles := LookupSet(ctx, st.Roles, keysOf(orgs, func(o *models.Organization) string { return o.RoleID }))
			for _, o := range orgs {
				o.Role = roles[o.RoleID]
			}
		},
		beforeCreate: func(ctx context.Context, o *models.Organization) error {
			return preparePrincipal(ctx, st, o.Email, &o.PasswordHash)
		},
		beforeUpdate: func(ctx context.Context, id string, o *models.Organization) error {
			return checkOrganizationEmailChange(ctx, st, id, o.Email)
		},
		redact: func(o *models.Organization) {
			o.PasswordHash = ""
		},
		patch: func(o *models.Organization) store.Patch {
			return store.Patch{
				"name":        o.Name,
				"email":       o.Email,
				"ownerName":   o.OwnerName,
				"contact":     o.Contact,
				"addressLine": o.AddressLine,
				"city":        o.City,
				"state":       o.State,
				"country":     o.Country,
				"roleId":      o.RoleID,
			}
		},
	}
}

func newFacultyService(st *store.Store) *EntityService[models.Faculty, *models.Faculty] {
	return &EntityService[models.Faculty, *models.Faculty]{
		kind: models.KindFaculty,
		col:  st.Faculties,
		checkRefs: func(ctx context.Context, f *models.Faculty, required bool) error {
			if err := checkRef(ctx, st.Roles, models.KindRole, f.RoleID, required); err != nil {
				return err
			}
			return checkRef(ctx, st.Organizations, models.KindOrganization, f.OrganizationID, required)
		},
		resolveOne: func(ctx context.Context, f *models.Faculty) {
			f.Role = Lookup(ctx, st.Roles, f.RoleID)
			f.Organization = lookupOrganization(ctx, st, f.OrganizationID)
		},
		resolveMany: func(ctx context.Context, faculties []*models.Faculty) {
			roles := LookupSet(ctx, st.Roles, keysOf(faculties, func(f *models.Faculty) string { return f.RoleID }))
			orgs := lookupOrganizationSet(ctx, st, keysOf(faculties, func(f *models.Faculty) string { return f.OrganizationID }))
			for _, f := range faculties {
				f.Role = roles[f.RoleID]
				f.Organization = orgs[f.OrganizationID]
			}
		},
		beforeCreate: func(ctx context.Context, f *models.Faculty) error {
			return preparePrincipal(ctx, st, f.Email, &f.PasswordHash)
		},
		redact: func(f *models.Faculty) {
			f.PasswordHash = ""
		},
		patch: func(f *models.Faculty) store.Patch {
			return store.Patch{
				"firstName":      f.FirstName,
				"lastName":       f.LastName,
				"contact":        f.Contact,
				"gender":         f.Gender,
				"addressLine":    f.AddressLine,
				"city":           f.City,
				"state":          f.State,
				"country":        f.Country,
				"organizationId": f.OrganizationID,
				"roleId":         f.RoleID,
			}
		},
	}
}

func newStudentService(st *store.Store) *EntityService[models.Student, *models.Student] {
	return &EntityService[models.Student, *models.Student]{
		kind: models.KindStudent,
		col:  st.Students,
		checkRefs: func(ctx context.Context, s *models.Student, required bool) error {
			if err := checkRef(ctx, st.Roles, models.KindRole, s.RoleID, required); err != nil {
				return err
			}
			return checkRef(ctx, st.Organizations, models.KindOrganization, s.OrganizationID, required)
		},
		resolveOne: func(ctx context.Context, s *models.Student) {
			s.Role = Lookup(ctx, st.Roles, s.RoleID)
			s.Organization = lookupOrganization(ctx, st, s.OrganizationID)
		},
		resolveMany: func(ctx context.Context, students []*models.Student) {
			roles := LookupSet(ctx, st.Roles, keysOf(students, func(s *models.Student) string { return s.RoleID }))
			orgs := lookupOrganizationSet(ctx, st, keysOf(students, func(s *models.Student) string { return s.OrganizationID }))
			for _, s := range students {
				s.Role = roles[s.RoleID]
				s.Organization = orgs[s.OrganizationID]
			}
		},
		beforeCreate: func(ctx context.Context, s *models.Student) error {
			return preparePrincipal(ctx, st, s.Email, &s.PasswordHash)
		},
		redact: func(s *models.Student) {
			s.PasswordHash = ""
		},
		patch: func(s *models.Student) store.Patch {
			return store.Patch{
				"firstName":      s.FirstName,
				"lastName":       s.LastName,
				"contact":        s.Contact,
				"gender":         s.Gender,
				"addressLine":    s.AddressLine,
				"city":           s.City,
				"state":          s.State,
				"country":        s.Country,
				"organizationId": s.OrganizationID,
				"roleId":         s.RoleID,
			}
		},
	}
}
