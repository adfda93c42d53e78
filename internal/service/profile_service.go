package service

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// Profile pairs a user with the viewer's following state.
type Profile struct {
	User      *models.User
	Following bool
}

// ProfileService implements profile lookup and the follow ledger.
type ProfileService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(users repository.UserRepository, follows repository.FollowRepository) *ProfileService {
	return &ProfileService{users: users, follows: follows}
}

// Get returns the named user's profile with following computed for the
// viewer. A viewerID of zero means anonymous, which always reads as not
// following.
func (s *ProfileService) Get(ctx context.Context, username string, viewerID uint) (*Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.IsFollowing(ctx, viewerID, user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Following: following}, nil
}

// Follow subscribes the caller to the named user. Following yourself is
// rejected; following twice changes nothing.
func (s *ProfileService) Follow(ctx context.Context, username string, callerID uint) (*Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.ID == callerID {
		return nil, models.NewInvalidTargetError("you cannot follow yourself")
	}
	if err := s.follows.Follow(ctx, callerID, user.ID); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, username)
	return &Profile{User: user, Following: true}, nil
}

// Unfollow removes the caller's subscription. Unfollowing someone you never
// followed is a no-op, but the self-target rule still applies.
func (s *ProfileService) Unfollow(ctx context.Context, username string, callerID uint) (*Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.ID == callerID {
		return nil, models.NewInvalidTargetError("you cannot unfollow yourself")
	}
	if err := s.follows.Unfollow(ctx, callerID, user.ID); err != nil {
		return nil, err
	}
	cache.InvalidateProfile(ctx, username)
	return &Profile{User: user, Following: false}, nil
}
