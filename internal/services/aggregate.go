package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"dailydare-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// Degraded-section markers reported on partially built aggregates.
const (
	SectionFriends    = "friends"
	SectionRequests   = "friend_requests"
	SectionChallenges = "completed_challenges"
	SectionToday      = "today_challenge"
)

// AggregateService builds the per-session user state snapshot by merging
// the profile with friends, challenges and pending requests.
type AggregateService struct {
	users      UsersStore
	challenges ChallengesStore
	social     *SocialService
	now        func() time.Time
}

// NewAggregateService creates a new aggregate service
func NewAggregateService(users UsersStore, challenges ChallengesStore, social *SocialService) *AggregateService {
	return &AggregateService{
		users:      users,
		challenges: challenges,
		social:     social,
		now:        time.Now,
	}
}

// BuildUserState assembles the aggregate snapshot for uid. A missing
// profile is fatal; failures of the other sections degrade the snapshot and
// are reported in Degraded instead of silently defaulting to empty.
func (s *AggregateService) BuildUserState(ctx context.Context, uid string) (*models.UserState, error) {
	profile, err := s.users.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	today := s.now()
	state := &models.UserState{
		UID:                    profile.UID,
		UserName:               profile.UserName,
		UserHandle:             profile.UserHandle,
		CompletedCount:         profile.CompletedCount,
		ProfilePicture:         profile.ProfilePicture,
		CompletedChallengeRefs: profile.CompletedChallengeRefs,
		StreakCount:            derivedStreak(profile.StreakCount, profile.CompletedChallengeRefs, today),
	}

	friendIDs, err := s.social.FriendIDs(ctx, uid)
	if err != nil {
		log.Warn().Err(err).Str("uid", uid).Msg("Aggregate degraded: friends")
		state.Degraded = append(state.Degraded, SectionFriends)
	} else {
		state.FriendIDs = friendIDs
		state.FriendsCount = len(friendIDs)
		for _, fid := range friendIDs {
			friend, err := s.users.GetByUID(ctx, fid)
			if err != nil {
				// A single unresolvable friend profile is skipped, not fatal.
				log.Warn().Err(err).Str("uid", uid).Str("friend_uid", fid).Msg("Skipping friend profile")
				continue
			}
			state.Friends = append(state.Friends, models.FriendSummaryOf(friend))
		}
	}

	completed, failed := s.resolveChallenges(ctx, profile.CompletedChallengeRefs)
	state.CompletedChallenges = completed
	if failed {
		state.Degraded = append(state.Degraded, SectionChallenges)
	}

	todayChallenge, err := s.TodayChallenge(ctx)
	if err != nil {
		// Absence of today's challenge is a state the client must handle,
		// surfaced the same way as a fetch failure.
		log.Warn().Err(err).Msg("Aggregate degraded: today challenge")
		state.Degraded = append(state.Degraded, SectionToday)
	} else {
		state.TodayChallenge = todayChallenge
	}

	requests, err := s.social.IncomingRequests(ctx, uid)
	if err != nil {
		log.Warn().Err(err).Str("uid", uid).Msg("Aggregate degraded: friend requests")
		state.Degraded = append(state.Degraded, SectionRequests)
	} else {
		state.FriendRequests = requests
	}

	return state, nil
}

// TodayChallenge looks up the challenge keyed by today's date
func (s *AggregateService) TodayChallenge(ctx context.Context) (*models.Challenge, error) {
	id, err := strconv.Atoi(models.DateKey(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to derive today key: %w", err)
	}
	return s.challenges.GetByID(ctx, id)
}

func (s *AggregateService) resolveChallenges(ctx context.Context, refs []string) ([]models.Challenge, bool) {
	var challenges []models.Challenge
	failed := false
	for _, ref := range refs {
		c, err := s.challenges.GetByRef(ctx, ref)
		if err != nil {
			log.Warn().Err(err).Str("ref", ref).Msg("Skipping challenge ref")
			failed = true
			continue
		}
		challenges = append(challenges, *c)
	}
	return challenges, failed
}
