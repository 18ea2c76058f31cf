package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/spotjobs/spotjobs-api/internal/core/domain"
	"github.com/spotjobs/spotjobs-api/internal/core/ports"
)

// UserService covers profile reads and the synchronous profile/resume
// updates. Recruiter profile updates cascade onto the owned company.
type UserService struct {
	users     ports.UserRepository
	companies ports.CompanyRepository
	blobs     BlobStore
	log       zerolog.Logger
}

func NewUserService(users ports.UserRepository, companies ports.CompanyRepository, blobs BlobStore, log zerolog.Logger) *UserService {
	return &UserService{users: users, companies: companies, blobs: blobs, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	var imageURL string
	if in.Image != nil && len(in.Image.Data) > 0 {
		imageURL, err = s.blobs.Upload(ctx, in.Image.Data, in.Image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("update profile: upload image: %w", err)
		}
		user.Image = imageURL
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}

	switch user.Role {
	case domain.RoleApplicant:
		if in.Bio != "" {
			user.Profile.Bio = in.Bio
		}
		if len(in.Skills) > 0 {
			user.Profile.Skills = in.Skills
		}
		if in.Role != "" {
			user.Profile.Role = in.Role
		}
		if in.LinkedIn != "" {
			user.Profile.LinkedIn = in.LinkedIn
		}
		if in.GitHub != "" {
			user.Profile.GitHub = in.GitHub
		}

	case domain.RoleRecruiter:
		if user.Profile.CompanyID == "" {
			return nil, domain.ErrCompanyNotFound
		}
		company, err := s.companies.FindByID(ctx, user.Profile.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		if imageURL != "" {
			company.Image = imageURL
		}
		if in.Name != "" {
			company.Name = in.Name
		}
		if in.CompanyWebsite != "" {
			company.Website = in.CompanyWebsite
		}
		if in.CompanyIndustry != "" {
			company.Industry = in.CompanyIndustry
		}
		if in.CompanySize != "" {
			company.Size = in.CompanySize
		}
		if in.CompanyDescription != "" {
			company.Description = in.CompanyDescription
		}
		if in.CompanyLocation != "" {
			company.Location = in.CompanyLocation
		}
		if in.CompanyContactEmail != "" {
			company.ContactEmail = in.CompanyContactEmail
		}
		company.UpdatedAt = time.Now().UTC()
		if err := s.companies.Update(ctx, company); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateResume(ctx context.Context, userID string, resume ports.FileUpload) (*domain.User, error) {
	if len(resume.Data) == 0 {
		return nil, domain.ErrMissingDetails
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update resume: %w", err)
	}

	url, err := s.blobs.Upload(ctx, resume.Data, resume.ContentType)
	if err != nil {
		return nil, fmt.Errorf("update resume: upload: %w", err)
	}

	user.Profile.Resume = url
	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update resume: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("resume updated")
	return user, nil
}
