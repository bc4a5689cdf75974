package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/kakao"

	"gamecraft/internal/config"
)

const kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"

// KakaoProfile is the subset of the Kakao user-info response the
// identity layer needs.
type KakaoProfile struct {
	KakaoID      string
	Nickname     string
	Email        string
	ProfileImage string
}

// KakaoClient drives the authorization-code flow against Kakao.
type KakaoClient struct {
	oauth *oauth2.Config
	// overridable in tests
	userInfoURL string
}

func NewKakaoClient(cfg config.KakaoConfig) *KakaoClient {
	return &KakaoClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"profile_nickname", "profile_image", "account_email"},
			Endpoint:     kakao.Endpoint,
		},
		userInfoURL: kakaoUserInfoURL,
	}
}

// LoginURL builds the Kakao authorization URL for the given state.
func (k *KakaoClient) LoginURL(state string) string {
	return k.oauth.AuthCodeURL(state)
}

// Exchange trades the callback code for an access token.
func (k *KakaoClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := k.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange kakao code: %w", err)
	}
	return token, nil
}

// FetchProfile loads the user profile with the exchanged token.
func (k *KakaoClient) FetchProfile(ctx context.Context, token *oauth2.Token) (*KakaoProfile, error) {
	client := k.oauth.Client(ctx, token)
	resp, err := client.Get(k.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch kakao profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("kakao user info: status %d: %s", resp.StatusCode, body)
	}

	var raw struct {
		ID           int64 `json:"id"`
		KakaoAccount struct {
			Email   string `json:"email"`
			Profile struct {
				Nickname        string `json:"nickname"`
				ProfileImageURL string `json:"profile_image_url"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode kakao profile: %w", err)
	}
	if raw.ID == 0 {
		return nil, fmt.Errorf("kakao profile missing id")
	}

	return &KakaoProfile{
		KakaoID:      strconv.FormatInt(raw.ID, 10),
		Nickname:     raw.KakaoAccount.Profile.Nickname,
		Email:        raw.KakaoAccount.Email,
		ProfileImage: raw.KakaoAccount.Profile.ProfileImageURL,
	}, nil
}
