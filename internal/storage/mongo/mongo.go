package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/accountd-dev/accountd/internal/config"
	internal_errors "github.com/accountd-dev/accountd/internal/errors"
	"github.com/accountd-dev/accountd/internal/logger"
)

const (
	usersCollection    = "users"
	sessionsCollection = "sessions"
	historyCollection  = "passwords"
	stagingCollection  = "passwords_staging"
)

const opTimeout = 5 * time.Second

// Storage owns the document collections of the account service.
// A single instance is shared by all requests; the underlying client
// is pooled and safe for concurrent use.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(cfg *config.Mongo) (*Storage, error) {
	logger.Log.Info("connecting to mongo", "database", cfg.Database)

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(cfg.MaxConnIdleTime)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.Timeout > 0 {
		// bounds every operation, including waiting on an exhausted pool
		opts.SetTimeout(cfg.Timeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to mongo")

	return &Storage{client: client, db: client.Database(cfg.Database)}, nil
}

// Ping reports whether the backing database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Cleanup() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Storage) users() *mongo.Collection    { return s.db.Collection(usersCollection) }
func (s *Storage) sessions() *mongo.Collection { return s.db.Collection(sessionsCollection) }
func (s *Storage) history() *mongo.Collection  { return s.db.Collection(historyCollection) }
func (s *Storage) staging() *mongo.Collection  { return s.db.Collection(stagingCollection) }

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// internalErr hides driver faults from callers: the cause is logged,
// the client only ever sees the taxonomy error.
func internalErr(op string, err error) error {
	logger.Log.Error("storage failure", "op", op, "error", err)
	return internal_errors.New(internal_errors.KindInternal, "")
}
