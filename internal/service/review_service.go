package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"github.com/Eursukkul/hbnb-service/internal/repository"
)

type ReviewService interface {
	CreateReview(ctx context.Context, placeID, userID, text string, rating int) (*models.Review, error)
	ListReviews(ctx context.Context, placeID string) ([]models.Review, error)
	UpdateReview(ctx context.Context, reviewID, actorID string, text *string, rating *int) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID, actorID string, isAdmin bool) error
}

type reviewService struct {
	placeRepo  repository.PlaceRepository
	reviewRepo repository.ReviewRepository
}

func NewReviewService(placeRepo repository.PlaceRepository, reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{placeRepo: placeRepo, reviewRepo: reviewRepo}
}

func (s *reviewService) CreateReview(ctx context.Context, placeID, userID, text string, rating int) (*models.Review, error) {
	text = strings.TrimSpace(text)
	if err := validateReview(text, rating); err != nil {
		return nil, err
	}

	place, err := s.placeRepo.FindByID(ctx, placeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("get place: %w", err)
	}
	if place.IsOwnedBy(userID) {
		return nil, ErrOwnPlaceReview
	}

	exists, err := s.reviewRepo.ExistsForUserAndPlace(ctx, userID, placeID)
	if err != nil {
		return nil, fmt.Errorf("check review: %w", err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{Text: text, Rating: rating, UserID: userID, PlaceID: placeID}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, placeID string) ([]models.Review, error) {
	if _, err := s.placeRepo.FindByID(ctx, placeID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("get place: %w", err)
	}
	return s.reviewRepo.FindByPlace(ctx, placeID)
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID, actorID string, text *string, rating *int) (*models.Review, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actorID {
		return nil, ErrNotReviewAuthor
	}

	if text != nil {
		review.Text = strings.TrimSpace(*text)
	}
	if rating != nil {
		review.Rating = *rating
	}
	if err := validateReview(review.Text, review.Rating); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

// DeleteReview is allowed for the author and for admins.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID, actorID string, isAdmin bool) error {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actorID && !isAdmin {
		return ErrNotReviewAuthor
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *reviewService) findReview(ctx context.Context, id string) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

func validateReview(text string, rating int) error {
	if text == "" {
		return ErrEmptyReview
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
