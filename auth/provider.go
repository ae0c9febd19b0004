package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ProviderClient talks to the external identity provider's REST API. The
// provider owns all identity records; this service never stores users.
type ProviderClient struct {
	baseURL string
	secret  string
	client  *http.Client
}

func NewProviderClient(baseURL, secret string) *ProviderClient {
	return &ProviderClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type providerUser struct {
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// PrimaryEmail looks up the primary email registered for a user.
func (c *ProviderClient) PrimaryEmail(ctx context.Context, userID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/users/"+userID, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth: identity provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth: identity provider returned status %d", resp.StatusCode)
	}

	var user providerUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("auth: decode identity provider response: %w", err)
	}
	if len(user.EmailAddresses) == 0 || user.EmailAddresses[0].EmailAddress == "" {
		return "", errors.New("auth: user has no email address on record")
	}
	return user.EmailAddresses[0].EmailAddress, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"user_id"`
}

// VerifyIDToken asks the provider to validate an ID token it issued and
// returns the identity it belongs to.
func (c *ProviderClient) VerifyIDToken(ctx context.Context, idToken string) (userID, email string, err error) {
	body, err := json.Marshal(verifyRequest{Token: idToken})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tokens/verify", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("auth: identity provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("auth: token verification returned status %d", resp.StatusCode)
	}

	var verified verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&verified); err != nil {
		return "", "", fmt.Errorf("auth: decode verification response: %w", err)
	}
	if verified.UserID == "" {
		return "", "", errors.New("auth: verification response missing user id")
	}

	email, err = c.PrimaryEmail(ctx, verified.UserID)
	if err != nil {
		return "", "", err
	}
	return verified.UserID, email, nil
}
