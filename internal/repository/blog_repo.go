package repository

import (
	"context"

	"apebrain-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoBlogRepository struct {
	col *mongo.Collection
}

func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{col: db.Collection("blogs")}
}

func (m *MongoBlogRepository) Insert(ctx context.Context, b *model.BlogPost) error {
	_, err := m.col.InsertOne(ctx, b)
	return err
}

func (m *MongoBlogRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	var res model.BlogPost
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// FindByStatus lists posts newest first. An empty status returns everything.
func (m *MongoBlogRepository) FindByStatus(ctx context.Context, status string) ([]*model.BlogPost, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.BlogPost
	for cur.Next(ctx) {
		var v model.BlogPost
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func (m *MongoBlogRepository) Update(ctx context.Context, id string, fields bson.M) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoBlogRepository) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
