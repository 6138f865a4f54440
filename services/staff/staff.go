package staff

import (
	"fmt"
	"strings"

	staffRepo "glowdesk/database/repository/staff"
	"glowdesk/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultStaffService implements StaffService over the Mongo repository.
type DefaultStaffService struct {
	Repo staffRepo.UserRepository
}

func hashPassword(plain string) (string, error) {
	if len(plain) < 8 {
		return "", ValidationError{Reason: "password must be at least 8 characters"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// makeSlug derives a URL-safe handle from the account name. A short uuid
// suffix keeps slugs unique without a read-check.
func makeSlug(firstName, lastName string) string {
	base := strings.ToLower(strings.TrimSpace(firstName + " " + lastName))
	base = strings.Join(strings.Fields(base), "-")
	return base + "-" + uuid.New().String()[:8]
}

// Create adds a directory account. Emails are unique among live accounts and
// the role defaults to customer.
func (s *DefaultStaffService) Create(req models.CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, ValidationError{Reason: "firstName and lastName are required"}
	}
	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if !models.ValidRole(role) {
		return nil, ValidationError{Reason: fmt.Sprintf("unknown role %q", role)}
	}

	if req.Email != "" {
		existing, err := s.Repo.GetByEmail(req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			return nil, AlreadyExistsError{Email: req.Email}
		}
	}

	var hash string
	if req.Password != "" {
		var err error
		if hash, err = hashPassword(req.Password); err != nil {
			return nil, err
		}
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Slug:      makeSlug(req.FirstName, req.LastName),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Mobile:    req.Mobile,
		Email:     req.Email,
		Password:  hash,
		Role:      role,
		Image:     req.Image,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update mutates a live account; nil request fields keep their value.
// A new password is re-hashed before storage.
func (s *DefaultStaffService) Update(id string, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NotFoundError{ID: id}
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, ValidationError{Reason: "firstName must not be empty"}
		}
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, ValidationError{Reason: "lastName must not be empty"}
		}
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Mobile != nil {
		user.Mobile = *req.Mobile
	}
	if req.Email != nil && *req.Email != user.Email {
		if *req.Email != "" {
			existing, err := s.Repo.GetByEmail(*req.Email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if existing != nil && existing.ID != user.ID {
				return nil, AlreadyExistsError{Email: *req.Email}
			}
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, ValidationError{Reason: fmt.Sprintf("unknown role %q", *req.Role)}
		}
		user.Role = *req.Role
	}
	if req.Image != nil {
		user.Image = *req.Image
	}

	if err := s.Repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// GetByID returns a live account.
func (s *DefaultStaffService) GetByID(id string) (*models.User, error) {
	user, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NotFoundError{ID: id}
	}
	return user, nil
}

// GetByEmail returns a live account by email, case-insensitively.
func (s *DefaultStaffService) GetByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ValidationError{Reason: "email is required"}
	}
	user, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NotFoundError{ID: email}
	}
	return user, nil
}

// List returns a page of live accounts.
func (s *DefaultStaffService) List(pr models.PageRequest) (*models.Paged[models.User], error) {
	return s.Repo.List(pr)
}

// ListByRole returns a page of live accounts holding the given role.
func (s *DefaultStaffService) ListByRole(role string, pr models.PageRequest) (*models.Paged[models.User], error) {
	if !models.ValidRole(role) {
		return nil, ValidationError{Reason: fmt.Sprintf("unknown role %q", role)}
	}
	return s.Repo.ListByRole(role, pr)
}

// ListTrashed returns a page of soft-deleted accounts.
func (s *DefaultStaffService) ListTrashed(pr models.PageRequest) (*models.Paged[models.User], error) {
	return s.Repo.ListTrashed(pr)
}

// ListActiveStaff returns every live account with the staff role, in stable
// directory order.
func (s *DefaultStaffService) ListActiveStaff() ([]models.User, error) {
	return s.Repo.ListActiveStaff()
}

// Trash soft-deletes a live account. Calendar records and bookings keyed on
// the account are left in place; they simply stop matching queries that join
// through the staff directory.
func (s *DefaultStaffService) Trash(id string) (*models.User, error) {
	user, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NotFoundError{ID: id}
	}
	if err := s.Repo.Trash(id); err != nil {
		return nil, fmt.Errorf("failed to trash user: %w", err)
	}
	return s.Repo.GetTrashedByID(id)
}

// Restore brings a trashed account back.
func (s *DefaultStaffService) Restore(id string) (*models.User, error) {
	user, err := s.Repo.GetTrashedByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NotFoundError{ID: id}
	}
	if err := s.Repo.Restore(id); err != nil {
		return nil, fmt.Errorf("failed to restore user: %w", err)
	}
	return s.Repo.GetByID(id)
}

// Purge permanently removes a trashed account.
func (s *DefaultStaffService) Purge(id string) error {
	user, err := s.Repo.GetTrashedByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return NotFoundError{ID: id}
	}
	return s.Repo.Purge(id)
}
