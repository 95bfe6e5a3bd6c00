package services

import (
	"fmt"
	"log"

	"bloglist/internal/models"
)

// CredentialVerifier resolves a bearer token to the id of the account it was issued to.
type CredentialVerifier interface {
	Verify(token string) (string, error)
}

// Guard turns raw credentials into actor ids and enforces blog ownership.
type Guard struct {
	verifier CredentialVerifier
}

// NewGuard creates a Guard backed by verifier.
func NewGuard(verifier CredentialVerifier) *Guard {
	return &Guard{verifier: verifier}
}

// Authenticate returns the actor id for credential, or ErrInvalidCredential.
func (g *Guard) Authenticate(credential string) (string, error) {
	if credential == "" {
		return "", ErrInvalidCredential
	}
	actorID, err := g.verifier.Verify(credential)
	if err != nil || actorID == "" {
		log.Printf("Credential rejected: %v", err)
		return "", ErrInvalidCredential
	}
	return actorID, nil
}

// AuthorizeOwner fails with ErrForbidden unless actorID owns blog.
func (g *Guard) AuthorizeOwner(actorID string, blog *models.Blog) error {
	if blog.UserID != actorID {
		return fmt.Errorf("%w: blog %s", ErrForbidden, blog.ID)
	}
	return nil
}
