package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccountService removes a user and everything the user owns.
type AccountService interface {
	DeleteAccount(ctx context.Context, userID string) error
}

type MongoAccountService struct {
	usersCol    *mongo.Collection
	profilesCol *mongo.Collection
	postsCol    *mongo.Collection
}

func NewMongoAccountService(db *mongo.Database) *MongoAccountService {
	return &MongoAccountService{
		usersCol:    db.Collection("users"),
		profilesCol: db.Collection("profiles"),
		postsCol:    db.Collection("posts"),
	}
}

// DeleteAccount deletes the user's posts, profile, and user document, in that
// order. Likes and comments the user left on other authors' posts are
// snapshots inside those aggregates and stay in place. The deletes are not
// transactional; a failure part-way leaves earlier deletes applied.
func (s *MongoAccountService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.postsCol.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return err
	}
	if _, err := s.profilesCol.DeleteOne(ctx, bson.M{"user_id": userID}); err != nil {
		return err
	}
	if _, err := s.usersCol.DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return err
	}
	return nil
}
