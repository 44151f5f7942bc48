package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/researchcollab/research-collab-api/internal/config"
	"github.com/researchcollab/research-collab-api/internal/constants"
	"github.com/researchcollab/research-collab-api/internal/models"
	"github.com/researchcollab/research-collab-api/internal/repository"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

var (
	ErrOAuthNotConfigured = errors.New("discord OAuth configuration is missing")
	ErrCodeExchangeFailed = errors.New("failed to exchange code for token")
	ErrProfileFetchFailed = errors.New("failed to get Discord user info")
	ErrUserNotFound       = errors.New("user not found")
	ErrFailedToSaveUser   = errors.New("failed to save user data")
)

// AuthService handles Discord OAuth login and user lookup.
type AuthService struct {
	userRepo repository.UserRepository
	oauth    *oauth2.Config
}

// NewAuthService creates a new AuthService. The oauth config stays nil when
// the Discord credentials are absent; login attempts then fail with
// ErrOAuthNotConfigured while the rest of the API keeps working.
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	var oauthCfg *oauth2.Config
	if cfg.DiscordClientID != "" && cfg.DiscordClientSecret != "" && cfg.DiscordRedirectURI != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURI,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  constants.DiscordAuthorizeURL,
				TokenURL: constants.DiscordTokenURL,
			},
		}
	}

	return &AuthService{
		userRepo: userRepo,
		oauth:    oauthCfg,
	}
}

// AuthorizeURL builds the Discord authorization redirect for the given state.
func (s *AuthService) AuthorizeURL(state string) (string, error) {
	if s.oauth == nil {
		return "", ErrOAuthNotConfigured
	}
	return s.oauth.AuthCodeURL(state), nil
}

type discordProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// HandleCallback exchanges the authorization code, resolves the Discord
// profile and upserts the local user.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*models.User, error) {
	if s.oauth == nil {
		return nil, ErrOAuthNotConfigured
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCodeExchangeFailed, err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		DiscordID: profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		AvatarURL: avatarURL(profile),
	}

	if err := s.userRepo.UpsertByDiscordID(user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToSaveUser, err)
	}

	return user, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*discordProfile, error) {
	client := s.oauth.Client(ctx, token)

	resp, err := client.Get(constants.DiscordUserURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProfileFetchFailed, resp.StatusCode)
	}

	var profile discordProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetchFailed, err)
	}

	return &profile, nil
}

func avatarURL(profile *discordProfile) string {
	if profile.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s.png", constants.DiscordAvatarCDN, profile.ID, profile.Avatar)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
