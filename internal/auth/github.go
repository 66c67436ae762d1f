package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/blogware/auth-service/internal/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubAPIBaseURL = "https://api.github.com"

type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// GitHubClient signs users in through GitHub's OAuth flow. It is thin
// glue: exchange the code, read the profile, upsert the user, and hand
// the result to the caller for session creation.
type GitHubClient struct {
	store      AggregateStoreTx
	logger     *zap.Logger
	oauth      *oauth2.Config
	apiBaseURL string
}

func NewGitHubClient(store AggregateStoreTx, logger *zap.Logger, cfg GitHubConfig) *GitHubClient {
	return &GitHubClient{
		store:  store,
		logger: logger,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     github.Endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
		},
		apiBaseURL: githubAPIBaseURL,
	}
}

func (g *GitHubClient) AuthURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

type githubProfile struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleCallback exchanges the authorization code, fetches the GitHub
// profile and returns the matching local user, creating it on first
// sign-in. GitHub accounts without a public email are rejected.
func (g *GitHubClient) HandleCallback(ctx context.Context, code string) (*model.Profile, error) {
	if code == "" {
		return nil, ErrInvalidInput
	}

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		g.logger.Error("failed to exchange github code", zap.Error(err))
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	profile, err := g.fetchProfile(ctx, token)
	if err != nil {
		g.logger.Error("failed to fetch github profile", zap.Error(err))
		return nil, err
	}
	if profile.Email == "" {
		return nil, errors.New("no email provided from GitHub")
	}

	user, err := g.store.FindUserByEmail(ctx, profile.Email)
	if err != nil {
		g.logger.Error("failed to look up user", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user != nil {
		return user.Profile(), nil
	}

	name, lastName := splitDisplayName(profile.Name, profile.Login)
	user = &model.User{
		Email:    profile.Email,
		Name:     name,
		LastName: lastName,
		Role:     model.RoleUser,
		IsActive: true,
	}
	if err := g.store.CreateUser(ctx, user); err != nil {
		g.logger.Error("failed to create user from github profile", zap.Error(err))
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user.Profile(), nil
}

func (g *GitHubClient) fetchProfile(ctx context.Context, token *oauth2.Token) (*githubProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiBaseURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github profile request returned %s", resp.Status)
	}

	var profile githubProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &profile, nil
}

// splitDisplayName maps a GitHub display name onto the name/lastName
// pair: first word becomes the first name, the rest the last name, with
// the login as fallback when the display name is empty.
func splitDisplayName(displayName, login string) (string, string) {
	full := displayName
	if full == "" {
		full = login
	}

	name, rest, found := strings.Cut(full, " ")
	if !found || rest == "" {
		return name, name
	}
	return name, rest
}
