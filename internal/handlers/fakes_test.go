package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	appMiddleware "github.com/devconnect/backend/internal/middleware"
	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/services"
)

// In-memory stand-ins for the Mongo services. They apply the same aggregate
// methods the real services do, minus persistence.

type fakeUserService struct {
	users   map[string]*models.User
	byEmail map[string]string
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (s *fakeUserService) Register(_ context.Context, req *models.RegisterRequest) (*models.User, error) {
	if _, exists := s.byEmail[req.Email]; exists {
		return nil, services.ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Avatar:       services.GravatarURL(req.Email),
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID
	return user, nil
}

func (s *fakeUserService) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	id, exists := s.byEmail[email]
	if !exists {
		return nil, services.ErrUserNotFound
	}
	user := s.users[id]
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, services.ErrInvalidPassword
	}
	return user, nil
}

func (s *fakeUserService) GetByID(_ context.Context, id string) (*models.User, error) {
	user, exists := s.users[id]
	if !exists {
		return nil, services.ErrUserNotFound
	}
	return user, nil
}

type fakePostService struct {
	users *fakeUserService
	posts []*models.Post // newest first
}

func newFakePostService(users *fakeUserService) *fakePostService {
	return &fakePostService{users: users}
}

func (s *fakePostService) find(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *fakePostService) Create(ctx context.Context, userID, text string) (*models.Post, error) {
	user, err := s.users.GetByID(ctx, userID)
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
	s.posts = append([]*models.Post{post}, s.posts...)
	return post, nil
}

func (s *fakePostService) List(_ context.Context) ([]models.Post, error) {
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakePostService) GetByID(_ context.Context, id string) (*models.Post, error) {
	post := s.find(id)
	if post == nil {
		return nil, services.ErrPostNotFound
	}
	return post, nil
}

func (s *fakePostService) Delete(_ context.Context, postID, userID string) error {
	post := s.find(postID)
	if post == nil {
		return services.ErrPostNotFound
	}
	if post.UserID != userID {
		return services.ErrNotPostAuthor
	}
	for i, p := range s.posts {
		if p.ID == postID {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakePostService) Like(_ context.Context, postID, userID string) ([]models.Like, error) {
	post := s.find(postID)
	if post == nil {
		return nil, services.ErrPostNotFound
	}
	if post.HasLike(userID) {
		return nil, services.ErrAlreadyLiked
	}
	post.AddLike(userID)
	return post.Likes, nil
}

func (s *fakePostService) Unlike(_ context.Context, postID, userID string) ([]models.Like, error) {
	post := s.find(postID)
	if post == nil {
		return nil, services.ErrPostNotFound
	}
	if !post.RemoveLike(userID) {
		return nil, services.ErrNotLiked
	}
	return post.Likes, nil
}

func (s *fakePostService) AddComment(ctx context.Context, postID, userID, text string) ([]models.Comment, error) {
	post := s.find(postID)
	if post == nil {
		return nil, services.ErrPostNotFound
	}
	user, err := s.users.GetByID(ctx, userID)
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
	return post.Comments, nil
}

func (s *fakePostService) RemoveComment(_ context.Context, postID, commentID, userID string) ([]models.Comment, error) {
	post := s.find(postID)
	if post == nil {
		return nil, services.ErrPostNotFound
	}
	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, services.ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, services.ErrNotCommentAuthor
	}
	post.RemoveComment(commentID)
	return post.Comments, nil
}

type fakeProfileService struct {
	users    *fakeUserService
	profiles map[string]*models.Profile // userID -> profile
}

func newFakeProfileService(users *fakeUserService) *fakeProfileService {
	return &fakeProfileService{
		users:    users,
		profiles: make(map[string]*models.Profile),
	}
}

func (s *fakeProfileService) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	prof, exists := s.profiles[userID]
	if !exists {
		return nil, services.ErrProfileNotFound
	}
	return prof, nil
}

func (s *fakeProfileService) List(_ context.Context) ([]models.Profile, error) {
	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *fakeProfileService) Upsert(_ context.Context, userID string, req *models.UpsertProfileRequest) (*models.Profile, error) {
	prof, exists := s.profiles[userID]
	if !exists {
		prof = &models.Profile{
			ID:         uuid.New().String(),
			UserID:     userID,
			Experience: []models.Experience{},
			Education:  []models.Education{},
			CreatedAt:  time.Now(),
		}
		s.profiles[userID] = prof
	}
	prof.ApplyPatch(req)
	return prof, nil
}

func (s *fakeProfileService) AddExperience(ctx context.Context, userID string, req *models.ExperienceRequest) (*models.Profile, error) {
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
	return prof, nil
}

func (s *fakeProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*models.Profile, error) {
	prof, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !prof.RemoveExperience(expID) {
		return nil, services.ErrExperienceNotFound
	}
	return prof, nil
}

func (s *fakeProfileService) AddEducation(ctx context.Context, userID string, req *models.EducationRequest) (*models.Profile, error) {
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
	return prof, nil
}

func (s *fakeProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*models.Profile, error) {
	prof, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !prof.RemoveEducation(eduID) {
		return nil, services.ErrEducationNotFound
	}
	return prof, nil
}

type fakeAccountService struct {
	users    *fakeUserService
	posts    *fakePostService
	profiles *fakeProfileService
}

func (s *fakeAccountService) DeleteAccount(_ context.Context, userID string) error {
	remaining := s.posts.posts[:0]
	for _, p := range s.posts.posts {
		if p.UserID != userID {
			remaining = append(remaining, p)
		}
	}
	s.posts.posts = remaining

	delete(s.profiles.profiles, userID)

	if user, exists := s.users.users[userID]; exists {
		delete(s.users.byEmail, user.Email)
		delete(s.users.users, userID)
	}
	return nil
}

// testEnv wires the handlers into the same route tree the server builds.
type testEnv struct {
	router   *chi.Mux
	tokens   *services.TokenService
	users    *fakeUserService
	posts    *fakePostService
	profiles *fakeProfileService
}

func newTestEnv() *testEnv {
	logger := zap.NewNop()
	tokens := services.NewTokenService("test-secret", time.Hour)
	users := newFakeUserService()
	posts := newFakePostService(users)
	profiles := newFakeProfileService(users)
	accounts := &fakeAccountService{users: users, posts: posts, profiles: profiles}

	authHandler := NewAuthHandler(users, tokens, logger)
	postHandler := NewPostHandler(posts, logger)
	profileHandler := NewProfileHandler(profiles, accounts, logger)

	authenticated := appMiddleware.Authenticated(tokens)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", authHandler.Register)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/", authHandler.Login)
			r.With(authenticated).Get("/", authHandler.CurrentUser)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Use(authenticated)

			r.Post("/", postHandler.Create)
			r.Get("/", postHandler.List)
			r.Get("/{id}", postHandler.Get)
			r.Delete("/{id}", postHandler.Delete)
			r.Put("/like/{id}", postHandler.Like)
			r.Put("/unlike/{id}", postHandler.Unlike)
			r.Put("/comment/{id}", postHandler.AddComment)
			r.Put("/comment/{id}/{comment_id}", postHandler.RemoveComment)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.List)
			r.Get("/user/{user_id}", profileHandler.GetByUserID)

			r.Group(func(r chi.Router) {
				r.Use(authenticated)

				r.Get("/me", profileHandler.Me)
				r.Post("/", profileHandler.Upsert)
				r.Delete("/", profileHandler.DeleteAccount)
				r.Put("/experience", profileHandler.AddExperience)
				r.Delete("/experience/{exp_id}", profileHandler.RemoveExperience)
				r.Put("/education", profileHandler.AddEducation)
				r.Delete("/education/{ed_id}", profileHandler.RemoveEducation)
			})
		})
	})

	return &testEnv{
		router:   r,
		tokens:   tokens,
		users:    users,
		posts:    posts,
		profiles: profiles,
	}
}

// do performs a request against the test router. An empty token leaves the
// Authorization header unset.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates a user through the API and returns the login token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()

	rec := e.do(t, "POST", "/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if rec.Code != 200 {
		t.Fatalf("register %s: status %d, body %s", email, rec.Code, rec.Body.String())
	}

	var resp models.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.Token
}
