package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	repo "github.com/oksasatya/portfolio-api/internal/domain/repository"
)

type AchievementService struct {
	Repo repo.AchievementRepository
}

func NewAchievementService(r repo.AchievementRepository) *AchievementService {
	return &AchievementService{Repo: r}
}

type AchievementInput struct {
	Title string
	Body  *string
	Date  *time.Time
	Link  *string
}

func (s *AchievementService) List(ctx context.Context, userID string) ([]entity.Achievement, error) {
	list, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entity.Achievement{}
	}
	return list, nil
}

func (s *AchievementService) Get(ctx context.Context, userID, id string) (*entity.Achievement, error) {
	return s.owned(ctx, userID, id)
}

func (s *AchievementService) Create(ctx context.Context, userID string, in AchievementInput) (*entity.Achievement, error) {
	a := &entity.Achievement{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  strings.TrimSpace(in.Title),
		Body:   in.Body,
		Date:   in.Date,
		Link:   in.Link,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AchievementService) Update(ctx context.Context, userID, id string, in AchievementInput) (*entity.Achievement, error) {
	a, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		a.Title = t
	}
	if in.Body != nil {
		a.Body = blankToNil(*in.Body)
	}
	if in.Date != nil {
		a.Date = in.Date
	}
	if in.Link != nil {
		a.Link = blankToNil(*in.Link)
	}
	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AchievementService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// owned loads an achievement and checks it belongs to userID.
func (s *AchievementService) owned(ctx context.Context, userID, id string) (*entity.Achievement, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrAchievementNotFound
		}
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrForbidden
	}
	return a, nil
}
