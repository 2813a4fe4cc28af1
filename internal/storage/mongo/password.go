package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accountd-dev/accountd/internal/domain"
)

// PasswordHistory returns the per-user list of retired password hashes.
// A user with no history gets an empty list, not an error.
func (s *Storage) PasswordHistory(email domain.Email) (domain.PasswordHistory, error) {
	ctx, cancel := opContext()
	defer cancel()

	var history domain.PasswordHistory
	err := s.history().FindOne(ctx, bson.M{"_id": email}).Decode(&history)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.PasswordHistory{Email: email}, nil
	}
	if err != nil {
		return domain.PasswordHistory{}, internalErr("passwords.find", err)
	}
	return history, nil
}

// AppendPassword adds one retired hash to the history, creating the
// document on first use. History is append-only.
func (s *Storage) AppendPassword(email domain.Email, entry domain.PasswordEntry) error {
	ctx, cancel := opContext()
	defer cancel()

	_, err := s.history().UpdateOne(ctx,
		bson.M{"_id": email},
		bson.M{"$push": bson.M{"passwords": entry}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return internalErr("passwords.append", err)
	}
	return nil
}
