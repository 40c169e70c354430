package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnect/backend/internal/models"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")
)

// UserService manages user records and credential verification.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type MongoUserService struct {
	usersCol *mongo.Collection
}

func NewMongoUserService(ctx context.Context, db *mongo.Database) *MongoUserService {
	col := db.Collection("users")

	// Best-effort unique index.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoUserService{usersCol: col}
}

func (s *MongoUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	var existing models.User
	err := s.usersCol.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		return nil, ErrEmailExists
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Avatar:       GravatarURL(req.Email),
		CreatedAt:    time.Now(),
	}

	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		// The unique index catches a concurrent registration with the same email.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return user, nil
}

// Authenticate verifies email and password. Unknown email and wrong password
// return distinct sentinels, but callers must surface them identically to
// avoid account enumeration.
func (s *MongoUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.usersCol.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

func (s *MongoUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.usersCol.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GravatarURL derives a default avatar from the user's email.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
