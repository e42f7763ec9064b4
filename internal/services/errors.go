package services

import (
	"errors"
	"fmt"

	"github.com/arzan03/ElectricTools/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound        = repository.ErrNotFound
	ErrConflict        = repository.ErrDuplicate
	ErrInvalidInput    = errors.New("invalid input")
	ErrAlreadyPaid     = errors.New("order already paid")
	ErrTransaction     = errors.New("payment transaction failed")
	ErrUpstream        = errors.New("upstream failure")
	ErrStorageDisabled = errors.New("image storage is not configured")
	ErrUnknownIdentity = errors.New("unknown identity")
)

func parseID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", ErrInvalidInput, id)
	}
	return objID, nil
}
