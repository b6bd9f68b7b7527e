package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devport/portfolio/internal/core/domain"
)

const collectionInquiryMessages = "inquiry_messages"

// InquiryMessageRepository implements ports.InquiryMessageRepository.
type InquiryMessageRepository struct {
	col *mongo.Collection
}

func NewInquiryMessageRepository(db *mongo.Database) *InquiryMessageRepository {
	return &InquiryMessageRepository{col: db.Collection(collectionInquiryMessages)}
}

func (r *InquiryMessageRepository) Append(ctx context.Context, msg *domain.InquiryMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("insert inquiry message: %w", err)
	}
	return nil
}

// ListByInquiry returns the conversation oldest first.
func (r *InquiryMessageRepository) ListByInquiry(ctx context.Context, inquiryID string) ([]domain.InquiryMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx,
		bson.M{"inquiry_id": inquiryID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list inquiry messages: %w", err)
	}
	out := []domain.InquiryMessage{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode inquiry messages: %w", err)
	}
	return out, nil
}

func (r *InquiryMessageRepository) DeleteByInquiry(ctx context.Context, inquiryID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"inquiry_id": inquiryID})
	return err
}

func (r *InquiryMessageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "inquiry_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
