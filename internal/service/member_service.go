package service

import (
	"context"
	"strings"

	"admindesk/internal/auth"
	"admindesk/internal/models"
	"admindesk/internal/repository"
	"admindesk/internal/validation"
)

// User-facing signup and login messages.
const (
	MsgFieldsRequired     = "필수 항목을 모두 입력해주세요."
	MsgPasswordTooShort   = "비밀번호는 6자 이상이어야 합니다."
	MsgInvalidEmail       = "올바른 이메일 형식이 아닙니다."
	MsgEmailTaken         = "이미 가입된 이메일입니다."
	MsgSignupSuccess      = "회원가입에 성공했습니다."
	MsgSignupFailed       = "회원가입 중 오류가 발생했습니다."
	MsgInvalidCredentials = "이메일 또는 비밀번호가 올바르지 않습니다."
)

// MemberService provides account and member management business logic.
type MemberService struct {
	users repository.UserRepository
}

// NewMemberService returns a new MemberService.
func NewMemberService(users repository.UserRepository) *MemberService {
	return &MemberService{users: users}
}

// SignupInput is the input for self-service registration.
type SignupInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Signup registers a new account. Self-registered accounts always get the
// user role; admin accounts are created only through member management or
// the bootstrap seed. Failed lookups and duplicates both surface as
// validation errors with user-facing messages.
func (s *MemberService) Signup(ctx context.Context, in SignupInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)

	if email == "" || name == "" || in.Password == "" {
		return "", models.NewValidationError(MsgFieldsRequired)
	}
	if len(in.Password) < validation.MinPasswordLength {
		return "", models.NewValidationError(MsgPasswordTooShort)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return "", models.NewValidationError(MsgInvalidEmail)
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewValidationError(MsgEmailTaken)
	}

	return s.users.Create(ctx, repository.CreateUserInput{
		Email:    email,
		Name:     name,
		Password: in.Password,
		Role:     models.RoleUser,
	})
}

// Login verifies email/password credentials. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *MemberService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, models.NewUnauthorizedError(MsgInvalidCredentials)
	}
	return user, nil
}

// FindOrCreateOAuth resolves an OAuth identity to a local account, creating
// one on first login. OAuth accounts get a placeholder digest and can never
// log in with a password.
func (s *MemberService) FindOrCreateOAuth(ctx context.Context, identity auth.Identity) (*models.User, error) {
	if identity.Email == "" {
		return nil, models.NewValidationError("OAuth provider returned no email")
	}

	user, err := s.users.GetByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	id, err := s.users.Create(ctx, repository.CreateUserInput{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  models.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return created, nil
}

// ListMembers returns all member accounts, newest first.
func (s *MemberService) ListMembers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// GetMember fetches a single member by id.
func (s *MemberService) GetMember(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

// CreateMemberInput is the input for admin-side member creation.
type CreateMemberInput struct {
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// CreateMember creates a member with an explicit role. Unlike Signup, the
// role is caller-chosen and the password may be omitted.
func (s *MemberService) CreateMember(ctx context.Context, in CreateMemberInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError("A valid email is required")
	}
	if err := validation.ValidateName(strings.TrimSpace(in.Name)); err != nil {
		return nil, models.NewValidationError("Name is required")
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, models.NewValidationError("Role must be admin or user")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError(MsgEmailTaken)
	}

	id, err := s.users.Create(ctx, repository.CreateUserInput{
		Email:    email,
		Name:     strings.TrimSpace(in.Name),
		Password: in.Password,
		Role:     role,
	})
	if err != nil {
		return nil, err
	}
	return s.GetMember(ctx, id)
}

// UpdateMember applies a partial merge to a member account.
func (s *MemberService) UpdateMember(ctx context.Context, id string, in repository.UpdateUserInput) (*models.User, error) {
	if in.Email != nil {
		if err := validation.ValidateEmail(strings.TrimSpace(*in.Email)); err != nil {
			return nil, models.NewValidationError("A valid email is required")
		}
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	if in.Role != nil && !in.Role.Valid() {
		return nil, models.NewValidationError("Role must be admin or user")
	}

	if err := s.users.Update(ctx, id, in); err != nil {
		return nil, err
	}
	return s.GetMember(ctx, id)
}

// DeleteMember removes a member account.
func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
