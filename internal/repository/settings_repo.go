package repository

import (
	"context"
	"time"

	"apebrain-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSettingsRepository struct {
	col *mongo.Collection
}

func NewMongoSettingsRepository(db *mongo.Database) *MongoSettingsRepository {
	return &MongoSettingsRepository{col: db.Collection("settings")}
}

func (m *MongoSettingsRepository) Find(ctx context.Context, key string) (*model.SettingsDoc, error) {
	var res model.SettingsDoc
	err := m.col.FindOne(ctx, bson.M{"key": key}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoSettingsRepository) Upsert(ctx context.Context, key string, values map[string]interface{}) error {
	doc := model.SettingsDoc{Key: key, Values: values, UpdatedAt: time.Now().UTC()}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, bson.M{"key": key}, bson.M{"$set": doc}, opts)
	return err
}
