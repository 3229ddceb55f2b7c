package repository

import (
	"context"
	"time"

	"apebrain-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{col: db.Collection("users")}
}

func (m *MongoUserRepository) Insert(ctx context.Context, u *model.User) error {
	_, err := m.col.InsertOne(ctx, u)
	return err
}

func (m *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var res model.User
	err := m.col.FindOne(ctx, bson.M{"email": email}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var res model.User
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoUserRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	_, err := m.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

func (m *MongoUserRepository) UpdatePassword(ctx context.Context, id, hashed string) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"hashed_password": hashed}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
