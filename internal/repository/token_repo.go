package repository

import (
	"context"

	"apebrain-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoResetTokenRepository struct {
	col *mongo.Collection
}

func NewMongoResetTokenRepository(db *mongo.Database) *MongoResetTokenRepository {
	return &MongoResetTokenRepository{col: db.Collection("password_reset_tokens")}
}

func (m *MongoResetTokenRepository) Insert(ctx context.Context, t *model.PasswordResetToken) error {
	_, err := m.col.InsertOne(ctx, t)
	return err
}

// FindUnused returns the token record only while it has not been consumed.
func (m *MongoResetTokenRepository) FindUnused(ctx context.Context, token string) (*model.PasswordResetToken, error) {
	var res model.PasswordResetToken
	err := m.col.FindOne(ctx, bson.M{"token": token, "used": false}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoResetTokenRepository) MarkUsed(ctx context.Context, token string) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"token": token}, bson.M{"$set": bson.M{"used": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
