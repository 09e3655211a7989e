package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const votingAge = 18

// AgeAt computes full years between birthDate and now, calendar-accurate
// across month and day boundaries.
func AgeAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// Eligibility is the outcome of a voting-age check.
type Eligibility struct {
	CanVote bool   `json:"canVote"`
	Age     int    `json:"age"`
	Message string `json:"message"`
}

// CheckVotingAge applies the age-18 cutoff.
func CheckVotingAge(age int) Eligibility {
	if age >= votingAge {
		return Eligibility{CanVote: true, Age: age, Message: "You are eligible to vote!"}
	}
	return Eligibility{
		Age:     age,
		Message: fmt.Sprintf("You must be 18 or older to vote. You need to wait %d more year(s).", votingAge-age),
	}
}

// VoterEligibility is the per-voter variant, which also accounts for
// whether the voter already voted.
type VoterEligibility struct {
	UserID   int64  `json:"userId"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	CanVote  bool   `json:"canVote"`
	HasVoted bool   `json:"hasVoted"`
	Message  string `json:"message"`
}

// VotingService manages the demo voter records.
type VotingService struct {
	voters repository.VoterRepository
}

func NewVotingService(voters repository.VoterRepository) *VotingService {
	return &VotingService{voters: voters}
}

func (s *VotingService) List(ctx context.Context) ([]domain.Voter, error) {
	return s.voters.List(ctx)
}

func (s *VotingService) Create(ctx context.Context, name string, age int) (*domain.Voter, error) {
	if name == "" || age < 0 {
		return nil, ErrInvalidInput
	}
	v := &domain.Voter{Name: name, Age: age}
	if err := s.voters.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// CanVote checks a stored voter: eligible iff of age and not yet voted.
func (s *VotingService) CanVote(ctx context.Context, id int64) (*VoterEligibility, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	v, err := s.voters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &VoterEligibility{
		UserID:   v.ID,
		Name:     v.Name,
		Age:      v.Age,
		HasVoted: v.HasVoted,
		CanVote:  v.Age >= votingAge && !v.HasVoted,
	}
	switch {
	case !out.CanVote && v.HasVoted:
		out.Message = "User has already voted"
	case out.CanVote:
		out.Message = "User is eligible to vote"
	default:
		out.Message = "User is not old enough to vote"
	}
	return out, nil
}
