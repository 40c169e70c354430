package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnect/backend/internal/models"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrNotPostAuthor    = errors.New("user is not the post author")
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrNotLiked         = errors.New("post has not been liked")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("user is not the comment author")
)

// PostService manages the post aggregate: creation, reads, likes and comments.
type PostService interface {
	Create(ctx context.Context, userID, text string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, postID, userID string) error
	Like(ctx context.Context, postID, userID string) ([]models.Like, error)
	Unlike(ctx context.Context, postID, userID string) ([]models.Like, error)
	AddComment(ctx context.Context, postID, userID, text string) ([]models.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID, userID string) ([]models.Comment, error)
}

type MongoPostService struct {
	postsCol *mongo.Collection
	usersCol *mongo.Collection
}

func NewMongoPostService(db *mongo.Database) *MongoPostService {
	return &MongoPostService{
		postsCol: db.Collection("posts"),
		usersCol: db.Collection("users"),
	}
}

// Create inserts a post carrying a snapshot of the author's current name and
// avatar. Reads never join back to the user.
func (s *MongoPostService) Create(ctx context.Context, userID, text string) (*models.Post, error) {
	var user models.User
	err := s.usersCol.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Likes:     []models.Like{},
		Comments:  []models.Comment{},
		CreatedAt: time.Now(),
	}

	if _, err := s.postsCol.InsertOne(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *MongoPostService) List(ctx context.Context) ([]models.Post, error) {
	cur, err := s.postsCol.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := make([]models.Post, 0)
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *MongoPostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.postsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a post. Only the author may delete it.
func (s *MongoPostService) Delete(ctx context.Context, postID, userID string) error {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotPostAuthor
	}

	_, err = s.postsCol.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}

// Like prepends a like for the user. A user may like a post at most once.
func (s *MongoPostService) Like(ctx context.Context, postID, userID string) ([]models.Like, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.HasLike(userID) {
		return nil, ErrAlreadyLiked
	}

	post.AddLike(userID)
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// Unlike removes the user's like, matching on the user id rather than a
// positional index.
func (s *MongoPostService) Unlike(ctx context.Context, postID, userID string) ([]models.Like, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.RemoveLike(userID) {
		return nil, ErrNotLiked
	}

	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post.Likes, nil
}

// AddComment prepends a comment carrying a snapshot of the commenting user's
// name and a fresh comment id.
func (s *MongoPostService) AddComment(ctx context.Context, postID, userID, text string) ([]models.Comment, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.usersCol.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	post.AddComment(models.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		CreatedAt: time.Now(),
	})
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// RemoveComment removes a comment by id. The comment must exist and belong to
// the calling user.
func (s *MongoPostService) RemoveComment(ctx context.Context, postID, commentID, userID string) ([]models.Comment, error) {
	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrNotCommentAuthor
	}

	post.RemoveComment(commentID)
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// save rewrites the whole aggregate document, last writer wins.
func (s *MongoPostService) save(ctx context.Context, post *models.Post) error {
	_, err := s.postsCol.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	return err
}
