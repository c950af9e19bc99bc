package mongo

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	checkoutAttemptCollectionName = "checkout_attempts"
	maxPageSize                   = 100
)

type checkoutAttemptRepository struct {
	collection *mongo.Collection
}

func NewCheckoutAttemptRepository(client *mongo.Client, cfg config.MongoDBConfig) repository.CheckoutAttemptRepository {
	return &checkoutAttemptRepository{
		collection: client.Database(cfg.Database).Collection(checkoutAttemptCollectionName),
	}
}

// EnsureIndexes creates the session/created_at index used by List.
func EnsureIndexes(ctx context.Context, client *mongo.Client, cfg config.MongoDBConfig) error {
	collection := client.Database(cfg.Database).Collection(checkoutAttemptCollectionName)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create checkout attempt index: %w", err)
	}
	return nil
}

func (r *checkoutAttemptRepository) Create(ctx context.Context, attempt *entity.CheckoutAttempt) (string, error) {
	if attempt == nil || attempt.ID == "" {
		return "", fmt.Errorf("cannot store checkout attempt without ID")
	}
	if _, err := r.collection.InsertOne(ctx, attempt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("checkout attempt %s already stored: %w", attempt.ID, err)
		}
		return "", fmt.Errorf("failed to create checkout attempt: %w", err)
	}
	return attempt.ID, nil
}

func (r *checkoutAttemptRepository) List(ctx context.Context, params repository.ListCheckoutAttemptsParams) (*repository.ListCheckoutAttemptsResult, error) {
	filter := buildListFilter(params)
	page, pageSize := normalizePage(params.Page, params.PageSize)

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list checkout attempts: %v", repository.ErrQueryFailed, err)
	}
	defer cursor.Close(ctx)

	attempts := make([]entity.CheckoutAttempt, 0, pageSize)
	if err = cursor.All(ctx, &attempts); err != nil {
		return nil, fmt.Errorf("failed to decode checkout attempts: %w", err)
	}

	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to count checkout attempts: %v", repository.ErrQueryFailed, err)
	}

	return &repository.ListCheckoutAttemptsResult{
		Attempts:    attempts,
		TotalCount:  totalCount,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages(totalCount, pageSize),
	}, nil
}

func buildListFilter(params repository.ListCheckoutAttemptsParams) bson.M {
	filter := bson.M{}
	if params.SessionID != "" {
		filter["session_id"] = params.SessionID
	}
	if params.Outcome != "" {
		filter["outcome"] = params.Outcome
	}
	return filter
}

func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func totalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (int(totalCount) + pageSize - 1) / pageSize
}
