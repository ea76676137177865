package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vendwatch/fleet-gateway/internal/core/domain"
)

const directoryCollection = "directory"

// DirectoryStore keeps each collection (user directory, machine registry) as
// a single replaceable document, preserving the store contract the rest of
// the gateway assumes: read the whole collection, replace the whole
// collection atomically. ReplaceOne with upsert gives the atomic swap.
type DirectoryStore struct {
	coll *mongo.Collection
}

type userDoc struct {
	ID    string       `bson:"_id"`
	Users []storedUser `bson:"users"`
}

type storedUser struct {
	Username       string           `bson:"username"`
	Password       string           `bson:"password"`
	Role           string           `bson:"role"`
	SeeAllMachines bool             `bson:"see_all_machines"`
	Machines       []domain.Machine `bson:"machines"`
}

type machineDoc struct {
	ID       string           `bson:"_id"`
	Machines []domain.Machine `bson:"machines"`
}

func NewDirectoryStore(db *mongo.Database) *DirectoryStore {
	return &DirectoryStore{coll: db.Collection(directoryCollection)}
}

func (s *DirectoryStore) Users(ctx context.Context) ([]domain.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": "users"}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []domain.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	users := make([]domain.User, len(doc.Users))
	for i, u := range doc.Users {
		users[i] = domain.User{
			Username:       u.Username,
			Password:       u.Password,
			Role:           u.Role,
			SeeAllMachines: u.SeeAllMachines,
			Machines:       u.Machines,
		}
	}
	return users, nil
}

func (s *DirectoryStore) ReplaceUsers(ctx context.Context, users []domain.User) error {
	stored := make([]storedUser, len(users))
	for i, u := range users {
		stored[i] = storedUser{
			Username:       u.Username,
			Password:       u.Password,
			Role:           u.Role,
			SeeAllMachines: u.SeeAllMachines,
			Machines:       u.Machines,
		}
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": "users"},
		userDoc{ID: "users", Users: stored},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace users: %w", err)
	}
	return nil
}

func (s *DirectoryStore) Machines(ctx context.Context) ([]domain.Machine, error) {
	var doc machineDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": "machines"}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []domain.Machine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find machines: %w", err)
	}
	return doc.Machines, nil
}

func (s *DirectoryStore) ReplaceMachines(ctx context.Context, machines []domain.Machine) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": "machines"},
		machineDoc{ID: "machines", Machines: machines},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace machines: %w", err)
	}
	return nil
}
