package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleUser is the identity asserted by a verified Google ID token.
type GoogleUser struct {
	Email    string
	Name     string
	Picture  string
	GoogleID string
}

// GoogleVerifier validates Google ID tokens presented at login.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleUser, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleUser, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}

	iss, _ := payload.Claims["iss"].(string)
	if iss != "accounts.google.com" && iss != "https://accounts.google.com" {
		return nil, fmt.Errorf("invalid issuer: %s", iss)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if email == "" {
		return nil, fmt.Errorf("id token missing email claim")
	}

	return &GoogleUser{
		Email:    email,
		Name:     name,
		Picture:  picture,
		GoogleID: payload.Subject,
	}, nil
}
