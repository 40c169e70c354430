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
	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("experience entry not found")
	ErrEducationNotFound  = errors.New("education entry not found")
)

// ProfileService manages the profile aggregate, one document per user.
type ProfileService interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error)
	AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error)
	RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error)
	AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error)
	RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error)
}

type MongoProfileService struct {
	profilesCol *mongo.Collection
	usersCol    *mongo.Collection
}

func NewMongoProfileService(ctx context.Context, db *mongo.Database) *MongoProfileService {
	col := db.Collection("profiles")

	// Best-effort unique index: at most one profile per user.
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})

	return &MongoProfileService{
		profilesCol: col,
		usersCol:    db.Collection("users"),
	}
}

func (s *MongoProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var prof models.Profile
	err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prof)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	s.attachUser(ctx, &prof)
	return &prof, nil
}

func (s *MongoProfileService) List(ctx context.Context) ([]models.Profile, error) {
	cur, err := s.profilesCol.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	profiles := make([]models.Profile, 0)
	userIDs := make([]string, 0)
	for cur.Next(ctx) {
		var p models.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
		userIDs = append(userIDs, p.UserID)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	summaries, err := s.userSummaries(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if sum, ok := summaries[profiles[i].UserID]; ok {
			profiles[i].User = sum
		}
	}

	return profiles, nil
}

// Upsert creates the profile on first submission and patches it in place
// afterwards. The whole document is rewritten, last writer wins.
func (s *MongoProfileService) Upsert(ctx context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	now := time.Now()

	var prof models.Profile
	err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prof)
	if err == mongo.ErrNoDocuments {
		prof = models.Profile{
			ID:         uuid.New().String(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
			CreatedAt:  now,
		}
	} else if err != nil {
		return nil, err
	}

	prof.ApplyPatch(req)
	if err := s.save(ctx, &prof); err != nil {
		return nil, err
	}

	s.attachUser(ctx, &prof)
	return &prof, nil
}

func (s *MongoProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
	prof, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prof.AddExperience(models.Experience{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err := s.save(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// RemoveExperience removes an entry strictly by id. An unknown id fails with
// ErrExperienceNotFound and leaves the list unchanged.
func (s *MongoProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error) {
	prof, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !prof.RemoveExperience(expID) {
		return nil, ErrExperienceNotFound
	}

	if err := s.save(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

func (s *MongoProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
	prof, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	prof.AddEducation(models.Education{
		ID:           uuid.New().String(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err := s.save(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

func (s *MongoProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error) {
	prof, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !prof.RemoveEducation(eduID) {
		return nil, ErrEducationNotFound
	}

	if err := s.save(ctx, prof); err != nil {
		return nil, err
	}
	return prof, nil
}

// save rewrites the whole profile document, creating it if absent.
func (s *MongoProfileService) save(ctx context.Context, prof *models.Profile) error {
	prof.UpdatedAt = time.Now()
	_, err := s.profilesCol.ReplaceOne(
		ctx,
		bson.M{"user_id": prof.UserID},
		prof,
		options.Replace().SetUpsert(true),
	)
	return err
}

// attachUser resolves the owning user's name/avatar summary. A missing user
// leaves the summary nil rather than failing the read.
func (s *MongoProfileService) attachUser(ctx context.Context, prof *models.Profile) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"_id": prof.UserID}).Decode(&user); err == nil {
		prof.User = &models.UserSummary{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
	}
}

func (s *MongoProfileService) userSummaries(ctx context.Context, userIDs []string) (map[string]*models.UserSummary, error) {
	out := make(map[string]*models.UserSummary, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	cur, err := s.usersCol.Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var user models.User
		if err := cur.Decode(&user); err != nil {
			return nil, err
		}
		out[user.ID] = &models.UserSummary{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
