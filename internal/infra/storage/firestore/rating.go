package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	gfs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	ratingRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/rating"
)

type ratingDoc struct {
	Value     int       `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// RatingRepository оценки хранятся как ratings/{resourceId}/byUser/{userId}
type RatingRepository struct {
	client *gfs.Client
}

func NewRatingRepository(client *gfs.Client) *RatingRepository {
	return &RatingRepository{client: client}
}

func (r *RatingRepository) byUser(resourceID string) *gfs.CollectionRef {
	return r.client.Collection(ratingsCollection).Doc(resourceID).Collection(ratingsByUser)
}

func (r *RatingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	_, err := r.byUser(rating.ResourceID).Doc(rating.UserID).Set(ctx, ratingDoc{
		Value:     rating.Value,
		UpdatedAt: rating.UpdatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: Upsert - %w", ErrWrite, err)
	}
	return nil
}

func (r *RatingRepository) GetUserRating(ctx context.Context, resourceID, userID string) (*domain.Rating, error) {
	snap, err := r.byUser(resourceID).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: resource=%s user=%s", ratingRepo.ErrRatingNotFound, resourceID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserRating - %w", ErrQuery, err)
	}

	var doc ratingDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: GetUserRating - %v", ErrDecode, err)
	}
	return &domain.Rating{ResourceID: resourceID, UserID: userID, Value: doc.Value, UpdatedAt: doc.UpdatedAt}, nil
}

// GetStats суммирует оценки ресурса; значения вне 1..5 пропускаются
func (r *RatingRepository) GetStats(ctx context.Context, resourceID string) (domain.RatingStats, error) {
	it := r.byUser(resourceID).Documents(ctx)
	defer it.Stop()

	sum, count := 0, 0
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return domain.RatingStats{}, fmt.Errorf("%w: GetStats - %w", ErrQuery, err)
		}

		var doc ratingDoc
		if err := snap.DataTo(&doc); err != nil || !domain.ValidRatingValue(doc.Value) {
			continue
		}
		sum += doc.Value
		count++
	}
	return domain.NewRatingStats(sum, count), nil
}
