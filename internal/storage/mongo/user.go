package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
)

// User fetches the account document keyed by email.
func (s *Storage) User(email domain.Email) (domain.User, error) {
	ctx, cancel := opContext()
	defer cancel()

	var user domain.User
	err := s.users().FindOne(ctx, bson.M{"_id": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, internal_errors.New(internal_errors.KindNotFound, "User not found")
	}
	if err != nil {
		return domain.User{}, internalErr("users.find", err)
	}
	return user, nil
}

// SaveUser inserts a new account document. The email is the document key,
// so a concurrent duplicate registration loses on the primary index instead
// of slipping past a read-then-write existence check.
func (s *Storage) SaveUser(user domain.User) error {
	ctx, cancel := opContext()
	defer cancel()

	_, err := s.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return internal_errors.New(internal_errors.KindConflict, "User already exists")
	}
	if err != nil {
		return internalErr("users.insert", err)
	}
	return nil
}

// UpdateVerification overwrites the verification sub-document.
func (s *Storage) UpdateVerification(email domain.Email, verification domain.Verification) error {
	ctx, cancel := opContext()
	defer cancel()

	res, err := s.users().UpdateOne(ctx,
		bson.M{"_id": email},
		bson.M{
			"$set":         bson.M{"verification": verification},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	if err != nil {
		return internalErr("users.update_verification", err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.New(internal_errors.KindNotFound, "User not found")
	}
	return nil
}

// MarkVerified flips the account to verified.
func (s *Storage) MarkVerified(email domain.Email) error {
	ctx, cancel := opContext()
	defer cancel()

	res, err := s.users().UpdateOne(ctx,
		bson.M{"_id": email},
		bson.M{
			"$set":         bson.M{"verification.verified": true},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	if err != nil {
		return internalErr("users.mark_verified", err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.New(internal_errors.KindNotFound, "User not found")
	}
	return nil
}

// UpdatePassword sets a new live password hash and marks the account verified,
// completing a staged reset.
func (s *Storage) UpdatePassword(email domain.Email, passwordHash string) error {
	ctx, cancel := opContext()
	defer cancel()

	res, err := s.users().UpdateOne(ctx,
		bson.M{"_id": email},
		bson.M{
			"$set": bson.M{
				"password":              passwordHash,
				"verification.verified": true,
			},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	if err != nil {
		return internalErr("users.update_password", err)
	}
	if res.MatchedCount == 0 {
		return internal_errors.New(internal_errors.KindNotFound, "User not found")
	}
	return nil
}
