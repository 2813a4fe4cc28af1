package mongo

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
)

// PasswordStaging fetches the pending reset request of a user.
func (s *Storage) PasswordStaging(email domain.Email) (domain.PasswordStaging, error) {
	ctx, cancel := opContext()
	defer cancel()

	var staging domain.PasswordStaging
	err := s.staging().FindOne(ctx, bson.M{"_id": email}).Decode(&staging)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.PasswordStaging{}, internal_errors.New(internal_errors.KindNotFound, "Staging not found")
	}
	if err != nil {
		return domain.PasswordStaging{}, internalErr("staging.find", err)
	}
	return staging, nil
}

// SavePasswordStaging stores a reset request with a conditional write:
// the replace filter only matches an expired record, so an unexpired one
// makes the upsert collide on the primary index instead of racing a
// separate freshness check.
func (s *Storage) SavePasswordStaging(staging domain.PasswordStaging, now time.Time) error {
	ctx, cancel := opContext()
	defer cancel()

	_, err := s.staging().ReplaceOne(ctx,
		bson.M{"_id": staging.Email, "valid_until": bson.M{"$lt": now.UTC()}},
		staging,
		options.Replace().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return internal_errors.New(internal_errors.KindInvalidInput, "Password already requested")
	}
	if err != nil {
		return internalErr("staging.replace", err)
	}
	return nil
}

// DeletePasswordStaging removes a consumed reset request.
func (s *Storage) DeletePasswordStaging(email domain.Email) error {
	ctx, cancel := opContext()
	defer cancel()

	if _, err := s.staging().DeleteOne(ctx, bson.M{"_id": email}); err != nil {
		return internalErr("staging.delete", err)
	}
	return nil
}
