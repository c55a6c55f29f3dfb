package services

import (
	"billiard-live/auth"
	"billiard-live/domain"
	"billiard-live/errors"
	"billiard-live/repositories"
)

// BiroRole is carried by tokens issued to scorekeepers.
const BiroRole = "biro"

type IAuthService interface {
	Authorize(credential string) (domain.Profile, error)
	IssueToken(profileID domain.ProfileID) (string, error)
}

// AuthService resolves a credential to a profile and checks it may keep score.
type AuthService struct {
	tokens   *auth.TokenService
	profiles repositories.IProfileRepository
}

func NewAuthService(tokens *auth.TokenService, profiles repositories.IProfileRepository) *AuthService {
	return &AuthService{tokens: tokens, profiles: profiles}
}

func (s *AuthService) Authorize(credential string) (domain.Profile, error) {
	if credential == "" {
		return domain.Profile{}, errors.ErrNoCredential
	}

	claims, err := s.tokens.ValidateToken(credential)
	if err != nil {
		return domain.Profile{}, errors.ErrInvalidCredential
	}

	profile, err := s.profiles.GetProfile(domain.ProfileID(claims.ProfileID))
	if errors.Is(err, errors.ErrNotFound) {
		// A valid signature for a deleted profile resolves to no principal
		return domain.Profile{}, errors.ErrInvalidCredential
	}
	if err != nil {
		return domain.Profile{}, err
	}

	if !profile.IsBiro {
		return domain.Profile{}, errors.ErrForbidden
	}
	return profile, nil
}

// IssueToken signs a credential for an existing profile.
func (s *AuthService) IssueToken(profileID domain.ProfileID) (string, error) {
	profile, err := s.profiles.GetProfile(profileID)
	if err != nil {
		return "", err
	}
	roles := []string{}
	if profile.IsBiro {
		roles = append(roles, BiroRole)
	}
	return s.tokens.GenerateToken(int64(profile.ID), roles)
}
