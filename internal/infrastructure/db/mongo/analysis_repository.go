package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/websiters/gastroreview/internal/core/domain"
)

const analysesCollection = "comment_analyses"

// AnalysisRepository stores sentiment analyses keyed by comment ID. Upsert
// semantics: re-analyzing a comment replaces the previous result.
type AnalysisRepository struct {
	coll *mongo.Collection
}

func NewAnalysisRepository(db *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{coll: db.Collection(analysesCollection)}
}

type mongoAnalysis struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	CommentID     string             `bson:"comment_id"`
	Sentiment     string             `bson:"sentiment"`
	PositiveScore float64            `bson:"positive_score"`
	NeutralScore  float64            `bson:"neutral_score"`
	NegativeScore float64            `bson:"negative_score"`
	KeyPhrases    []string           `bson:"key_phrases,omitempty"`
	AnalyzedAt    time.Time          `bson:"analyzed_at"`
}

func (m mongoAnalysis) toDomain() domain.CommentAnalysis {
	return domain.CommentAnalysis{
		ID:            m.ID.Hex(),
		CommentID:     m.CommentID,
		Sentiment:     m.Sentiment,
		PositiveScore: m.PositiveScore,
		NeutralScore:  m.NeutralScore,
		NegativeScore: m.NegativeScore,
		KeyPhrases:    m.KeyPhrases,
		AnalyzedAt:    m.AnalyzedAt.UTC(),
	}
}

func (r *AnalysisRepository) Upsert(ctx context.Context, a *domain.CommentAnalysis) error {
	filter := bson.M{"comment_id": a.CommentID}
	update := bson.M{"$set": bson.M{
		"comment_id":     a.CommentID,
		"sentiment":      a.Sentiment,
		"positive_score": a.PositiveScore,
		"neutral_score":  a.NeutralScore,
		"negative_score": a.NegativeScore,
		"key_phrases":    a.KeyPhrases,
		"analyzed_at":    a.AnalyzedAt,
	}}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert analysis: %w", err)
	}
	return nil
}

func (r *AnalysisRepository) FindByCommentID(ctx context.Context, commentID string) (*domain.CommentAnalysis, error) {
	var doc mongoAnalysis
	if err := r.coll.FindOne(ctx, bson.M{"comment_id": commentID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find analysis: %w", err)
	}

	analysis := doc.toDomain()
	return &analysis, nil
}
