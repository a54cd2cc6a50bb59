package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"photohunt-backend/internal/models"
	"photohunt-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	jwtExpDays         = 365
	googleUserinfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	oauthExchangeLimit = 10 * time.Second
)

// UserService handles accounts, session tokens, Google account linking and
// friend-graph resolution
type UserService struct {
	userRepo  repository.UserRepository
	edgeRepo  repository.EdgeRepository
	jwtSecret string
	oauth     *oauth2.Config
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, edgeRepo repository.EdgeRepository,
	jwtSecret, googleClientID, googleClientSecret, googleRedirectURL string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		edgeRepo:  edgeRepo,
		jwtSecret: jwtSecret,
		oauth: &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURL:  googleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateJWT generates a session token for a user
func (s *UserService) GenerateJWT(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": strconv.FormatInt(userID, 10),
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a session token and returns the user ID
func (s *UserService) ValidateJWT(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, fmt.Errorf("user_id not found in token")
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed user_id claim: %w", err)
	}

	return userID, nil
}

type googleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Link    string `json:"link"`
	Picture string `json:"picture"`
}

// LinkGoogleAccount exchanges an authorization code, fetches the Google
// profile and upserts the matching user. Returns the user and a fresh
// session token.
func (s *UserService) LinkGoogleAccount(ctx context.Context, code string) (*models.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, oauthExchangeLimit)
	defer cancel()

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	profile, err := s.fetchProfile(ctx, tok)
	if err != nil {
		return nil, "", err
	}

	user, err := s.upsertFromProfile(ctx, profile, tok)
	if err != nil {
		return nil, "", err
	}

	sessionToken, err := s.GenerateJWT(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return user, sessionToken, nil
}

func (s *UserService) fetchProfile(ctx context.Context, tok *oauth2.Token) (*googleProfile, error) {
	client := s.oauth.Client(ctx, tok)
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode google profile: %w", err)
	}
	return &profile, nil
}

func (s *UserService) upsertFromProfile(ctx context.Context, profile *googleProfile, tok *oauth2.Token) (*models.User, error) {
	user, err := s.userRepo.GetByGoogleUserID(ctx, profile.ID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	isNew := user == nil
	if isNew {
		user = &models.User{
			GoogleUserID: profile.ID,
			CreatedAt:    time.Now(),
		}
	}

	user.Email = profile.Email
	user.GoogleDisplayName = profile.Name
	user.GooglePublicProfileURL = profile.Link
	user.GooglePublicProfilePhotoURL = profile.Picture
	user.GoogleAccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		user.GoogleRefreshToken = tok.RefreshToken
	}
	user.GoogleExpiresIn = int64(time.Until(tok.Expiry).Seconds())
	user.GoogleExpiresAt = tok.Expiry.UnixMilli()

	if isNew {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return user, nil
}

// Get returns a user by id
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdatePushToken registers or clears a user's device token
func (s *UserService) UpdatePushToken(ctx context.Context, userID int64, pushToken *string) error {
	return s.userRepo.UpdatePushToken(ctx, userID, pushToken)
}

// FriendIDs returns the ids of the users the owner has added, in storage
// order. Duplicate edges produce duplicate ids; nothing is collapsed.
func (s *UserService) FriendIDs(ctx context.Context, ownerUserID int64) ([]int64, error) {
	edges, err := s.edgeRepo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend edges: %w", err)
	}
	ids := make([]int64, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.FriendUserID)
	}
	return ids, nil
}

// Friends resolves the owner's friend records. Friends whose user record no
// longer exists are silently omitted, so the result may be shorter than
// FriendIDs. An owner with no edges yields an empty slice.
func (s *UserService) Friends(ctx context.Context, ownerUserID int64) ([]*models.User, error) {
	ids, err := s.FriendIDs(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	return users, nil
}

// AddFriend records a directed owner->friend edge. The reverse edge is
// never implied or created.
func (s *UserService) AddFriend(ctx context.Context, ownerUserID, friendUserID int64) (*models.FriendEdge, error) {
	if _, err := s.userRepo.GetByID(ctx, friendUserID); err != nil {
		return nil, err
	}
	edge := &models.FriendEdge{
		OwnerUserID:  ownerUserID,
		FriendUserID: friendUserID,
		CreatedAt:    time.Now(),
	}
	if err := s.edgeRepo.Create(ctx, edge); err != nil {
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}
	return edge, nil
}

// RemoveFriend removes every owner->friend edge for the pair
func (s *UserService) RemoveFriend(ctx context.Context, ownerUserID, friendUserID int64) error {
	return s.edgeRepo.DeleteByPair(ctx, ownerUserID, friendUserID)
}

// FollowerIDs returns the ids of users who have the given user in their
// circle (reverse edges). Used to fan out live updates.
func (s *UserService) FollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.edgeRepo.ListOwnersOf(ctx, userID)
}
