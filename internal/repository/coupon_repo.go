package repository

import (
	"context"
	"strings"

	"apebrain-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCouponRepository struct {
	col *mongo.Collection
}

func NewMongoCouponRepository(db *mongo.Database) *MongoCouponRepository {
	return &MongoCouponRepository{col: db.Collection("coupons")}
}

func (m *MongoCouponRepository) Insert(ctx context.Context, c *model.Coupon) error {
	_, err := m.col.InsertOne(ctx, c)
	return err
}

// FindByCode looks up a coupon by code. Codes are stored uppercase, so the
// lookup normalizes first and is effectively case-insensitive.
func (m *MongoCouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var res model.Coupon
	err := m.col.FindOne(ctx, bson.M{"code": strings.ToUpper(strings.TrimSpace(code))}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoCouponRepository) FindByID(ctx context.Context, id string) (*model.Coupon, error) {
	var res model.Coupon
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoCouponRepository) FindAll(ctx context.Context) ([]*model.Coupon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Coupon
	for cur.Next(ctx) {
		var v model.Coupon
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func (m *MongoCouponRepository) FindActive(ctx context.Context) ([]*model.Coupon, error) {
	cur, err := m.col.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Coupon
	for cur.Next(ctx) {
		var v model.Coupon
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func (m *MongoCouponRepository) Update(ctx context.Context, id string, fields bson.M) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoCouponRepository) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
