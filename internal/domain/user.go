package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role determines which operations an identity may perform. It is a
// closed enumeration and immutable after registration.
type Role string

const (
	RoleRecruiter Role = "RECRUITER"
	RoleCandidate Role = "CANDIDATE"
)

func (r Role) Valid() bool {
	return r == RoleRecruiter || r == RoleCandidate
}

// Gender values accepted on the profile.
type Gender string

const (
	GenderMale         Gender = "MALE"
	GenderFemale       Gender = "FEMALE"
	GenderOther        Gender = "OTHER"
	GenderNotSpecified Gender = "NOT_SPECIFIED"
	GenderNotSet       Gender = "NOT_SET"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderNotSpecified, GenderNotSet:
		return true
	}
	return false
}

type User struct {
	ID            int64        `json:"-"`
	UID           uuid.UUID    `json:"uid"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Phone         string       `json:"phone,omitempty"`
	Role          Role         `json:"role"`
	EmailVerified bool         `json:"is_email_verified"`
	RecordStatus  RecordStatus `json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsRecruiter() bool {
	return u.Role == RoleRecruiter
}

func (u *User) IsCandidate() bool {
	return u.Role == RoleCandidate
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.RecordStatus == RecordStatusActive
}

// Profile is the one-to-one companion record of a User. It is created
// empty alongside the user at registration and mutated only by its owner.
type Profile struct {
	ID              int64      `json:"-"`
	UID             uuid.UUID  `json:"uid"`
	UserID          int64      `json:"-"`
	PhotoURL        string     `json:"photo,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	Gender          Gender     `json:"gender"`
	Address         string     `json:"address,omitempty"`
	City            string     `json:"city,omitempty"`
	Country         string     `json:"country,omitempty"`
	ResumeURL       string     `json:"resume,omitempty"`
	Skills          string     `json:"skills,omitempty"`
	ExperienceYears *int       `json:"experience_years,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SkillsList parses the comma-separated skills field.
func (p *Profile) SkillsList() []string {
	return SplitSkills(p.Skills)
}

// TokenPair is the access/refresh pair issued on register and login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type UserRepository interface {
	// Create persists the user and its empty profile in one transaction.
	// Returns ErrDuplicate when the email or username is already taken.
	Create(ctx context.Context, user *User) error
	GetByUID(ctx context.Context, uid uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
}

// Mailer is the notification collaborator. Delivery is fire-and-forget:
// callers log failures and carry on.
type Mailer interface {
	SendWelcome(to, fullName string) error
	SendPasswordReset(to, fullName, resetLink string) error
	SendNewApplication(to, jobTitle, candidateName string) error
	SendApplicationReceived(to, fullName, jobTitle string) error
}

// AuthTokenStore holds single-use password-reset tokens and the refresh
// token blacklist.
type AuthTokenStore interface {
	SaveResetToken(ctx context.Context, userUID uuid.UUID, tok string, ttl time.Duration) error
	// ConsumeResetToken validates and invalidates the token in one step.
	// Returns false when the token is unknown, expired or already used.
	ConsumeResetToken(ctx context.Context, userUID uuid.UUID, tok string) (bool, error)
	BlacklistRefreshToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRefreshTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

type RegisterInput struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	Password        string
	PasswordConfirm string
	Role            Role
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*User, TokenPair, error)
	Login(ctx context.Context, email, password string) (*User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, userUID uuid.UUID, tok, newPassword, confirm string) error
	GetCurrentUser(ctx context.Context, uid uuid.UUID) (*User, error)
}

type ProfileUpdateInput struct {
	PhotoURL        *string
	Bio             *string
	DateOfBirth     *time.Time
	Gender          *Gender
	Address         *string
	City            *string
	Country         *string
	ResumeURL       *string
	Skills          *string
	ExperienceYears *int
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, user *User) (*Profile, error)
	UpdateProfile(ctx context.Context, user *User, in ProfileUpdateInput) (*Profile, error)
}
