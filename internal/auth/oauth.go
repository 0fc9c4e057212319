package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"admindesk/internal/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// OAuthIdentity is the email/name assertion fetched from a provider after a
// successful code exchange.
type OAuthIdentity struct {
	Email string
	Name  string
}

// OAuthProvider wraps one configured identity provider.
type OAuthProvider struct {
	Name   string
	Config *oauth2.Config
}

// OAuthProviders builds the registry of enabled providers from config.
// Providers without a client id are omitted.
func OAuthProviders(cfg *config.Config) map[string]*OAuthProvider {
	providers := make(map[string]*OAuthProvider)

	if cfg.GoogleClientID != "" {
		providers[ProviderGoogle] = &OAuthProvider{
			Name: ProviderGoogle,
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.OAuthRedirectBase + "/api/auth/oauth/google/callback",
				Scopes:       []string{"openid", "email", "profile"},
				Endpoint:     google.Endpoint,
			},
		}
	}
	if cfg.GitHubClientID != "" {
		providers[ProviderGitHub] = &OAuthProvider{
			Name: ProviderGitHub,
			Config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				RedirectURL:  cfg.OAuthRedirectBase + "/api/auth/oauth/github/callback",
				Scopes:       []string{"user:email"},
				Endpoint:     github.Endpoint,
			},
		}
	}

	return providers
}

// Exchange trades the authorization code for a token and fetches the
// provider's identity assertion.
func (p *OAuthProvider) Exchange(ctx context.Context, code string) (*OAuthIdentity, error) {
	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s code exchange: %w", p.Name, err)
	}
	return p.fetchIdentity(ctx, token)
}

func (p *OAuthProvider) fetchIdentity(ctx context.Context, token *oauth2.Token) (*OAuthIdentity, error) {
	httpClient := p.Config.Client(ctx, token)

	switch p.Name {
	case ProviderGoogle:
		return fetchGoogleIdentity(httpClient)
	case ProviderGitHub:
		return fetchGitHubIdentity(httpClient)
	}
	return nil, fmt.Errorf("unknown provider %q", p.Name)
}

func fetchGoogleIdentity(httpClient *http.Client) (*OAuthIdentity, error) {
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := getJSON(httpClient, "https://www.googleapis.com/oauth2/v2/userinfo", &info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, fmt.Errorf("google userinfo returned no email")
	}
	if info.Name == "" {
		info.Name = localPart(info.Email)
	}
	return &OAuthIdentity{Email: info.Email, Name: info.Name}, nil
}

func fetchGitHubIdentity(httpClient *http.Client) (*OAuthIdentity, error) {
	var user struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	if err := getJSON(httpClient, "https://api.github.com/user", &user); err != nil {
		return nil, err
	}

	// The profile email may be hidden; fall back to the primary verified one.
	if user.Email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := getJSON(httpClient, "https://api.github.com/user/emails", &emails); err != nil {
			return nil, err
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				user.Email = e.Email
				break
			}
		}
	}
	if user.Email == "" {
		return nil, fmt.Errorf("github account has no accessible email")
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}
	if name == "" {
		name = localPart(user.Email)
	}
	return &OAuthIdentity{Email: user.Email, Name: name}, nil
}

func getJSON(httpClient *http.Client, url string, dest any) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// localPart derives a display name from the part of the email before '@'.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
