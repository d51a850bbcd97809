package workout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/myrjola/gymplan/internal/errors"
)

// Service handles the business logic of the planner on top of a Repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	// mu serializes load-modify-save cycles and guards unsaved.
	mu sync.Mutex
	// unsaved holds the latest profile when persisting it failed, so callers keep working with it.
	unsaved *Profile
}

// NewService creates a new workout service. A nil now uses time.Now.
func NewService(repo Repository, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    repo,
		logger:  logger,
		now:     now,
		mu:      sync.Mutex{},
		unsaved: nil,
	}
}

// Now returns the current time of the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// load must be called with mu held.
func (s *Service) load(ctx context.Context) (Profile, error) {
	if s.unsaved != nil {
		return *s.unsaved, nil
	}
	p, err := s.repo.Load(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// persist must be called with mu held. A failed save keeps p in memory and the error is returned.
func (s *Service) persist(ctx context.Context, p Profile) error {
	if err := s.repo.Save(ctx, p); err != nil {
		s.unsaved = &p
		return fmt.Errorf("save profile: %w", err)
	}
	s.unsaved = nil
	return nil
}

// Profile returns the stored profile or ErrNotFound.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// SaveProfile validates and stores the profile fields. Logs of an existing profile are kept.
// An unreadable stored profile is replaced and its logs are lost.
func (s *Service) SaveProfile(ctx context.Context, p Profile) (Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		s.logger.LogAttrs(ctx, slog.LevelInfo, "creating profile", slog.String("name", p.Name))
	case errors.Is(err, ErrCorruptData):
		s.logger.LogAttrs(ctx, slog.LevelWarn, "replacing unreadable profile",
			slog.String("name", p.Name), errors.SlogError(err))
	case err != nil:
		return Profile{}, err
	default:
		p.ProgressLog = existing.ProgressLog
		p.WeightLog = existing.WeightLog
	}

	return p, s.persist(ctx, p)
}

// Plan generates the weekly plan for the stored profile.
func (s *Service) Plan(ctx context.Context) (Plan, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return Plan{}, err
	}
	return GeneratePlan(p)
}

// LogWorkout appends a completed plan day to the progress log.
func (s *Service) LogWorkout(ctx context.Context, day int, notes string) (LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx)
	if err != nil {
		return LogEntry{}, err
	}
	if day < 1 || day > p.TrainingDays {
		return LogEntry{}, fmt.Errorf("%w: day must be between 1 and %d", ErrInvalidInput, p.TrainingDays)
	}

	entry := LogEntry{
		Date:  s.now().Truncate(time.Minute),
		Day:   day,
		Notes: strings.TrimSpace(notes),
	}
	p.ProgressLog = append(p.ProgressLog, entry)
	if err = s.persist(ctx, p); err != nil {
		return entry, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "logged workout", slog.Int("day", day))
	return entry, nil
}

// AddWeight appends a weight measurement dated today.
func (s *Service) AddWeight(ctx context.Context, weight float64, unit Unit) (WeightEntry, error) {
	if err := validateWeight(weight); err != nil {
		return WeightEntry{}, err
	}
	if unit != UnitKg && unit != UnitLbs {
		return WeightEntry{}, fmt.Errorf("%w: unit must be 'kg' or 'lbs', got %q", ErrInvalidInput, unit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx)
	if err != nil {
		return WeightEntry{}, err
	}

	now := s.now()
	y, m, d := now.Date()
	entry := WeightEntry{
		Date:   time.Date(y, m, d, 0, 0, 0, 0, now.Location()),
		Weight: weight,
		Unit:   unit,
	}
	p.WeightLog = append(p.WeightLog, entry)
	if err = s.persist(ctx, p); err != nil {
		return entry, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "added weight",
		slog.Float64("weight", weight), slog.String("unit", string(unit)))
	return entry, nil
}

// Statistics summarises the progress log.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return Statistics{}, err
	}
	return ComputeStatistics(p.ProgressLog, s.now())
}

// WeightStatistics summarises the weight log.
func (s *Service) WeightStatistics(ctx context.Context) (WeightStatistics, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return WeightStatistics{}, err
	}
	return ComputeWeightStatistics(p.WeightLog)
}

// WeightTrend returns the direction of the recent weight entries.
func (s *Service) WeightTrend(ctx context.Context) (WeightTrend, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return WeightTrend{}, err
	}
	return ComputeWeightTrend(p.WeightLog), nil
}

// RestAdvice tells whether the user should rest today.
func (s *Service) RestAdvice(ctx context.Context) (RestAdvice, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return RestAdvice{}, err
	}
	return RestRecommendation(p.ProgressLog, p.TrainingDays, s.now()), nil
}

// Calendar lays out the plan over the coming weeks starting today.
func (s *Service) Calendar(ctx context.Context, weeks int) ([]CalendarDay, error) {
	if weeks < 1 {
		return nil, fmt.Errorf("%w: weeks must be at least 1", ErrInvalidInput)
	}
	plan, err := s.Plan(ctx)
	if err != nil {
		return nil, err
	}
	return Calendar(plan, s.now(), weeks), nil
}
