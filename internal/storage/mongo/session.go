package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accountd-dev/accountd/internal/domain"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
)

// Session fetches the single active-token record of a user.
func (s *Storage) Session(email domain.Email) (domain.Session, error) {
	ctx, cancel := opContext()
	defer cancel()

	var session domain.Session
	err := s.sessions().FindOne(ctx, bson.M{"_id": email}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Session{}, internal_errors.New(internal_errors.KindNotFound, "Session not found")
	}
	if err != nil {
		return domain.Session{}, internalErr("sessions.find", err)
	}
	return session, nil
}

// SaveSession upserts the session record, overwriting any previous token.
func (s *Storage) SaveSession(session domain.Session) error {
	ctx, cancel := opContext()
	defer cancel()

	_, err := s.sessions().ReplaceOne(ctx,
		bson.M{"_id": session.Email},
		session,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return internalErr("sessions.replace", err)
	}
	return nil
}
