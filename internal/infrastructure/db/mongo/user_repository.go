package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicore/identity-service/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements the UserDirectory port on MongoDB. Email
// uniqueness is enforced by a unique index, the only strong consistency
// guarantee the workflows rely on.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           string `bson:"_id"`
	FirstName    string `bson:"first_name"`
	LastName     string `bson:"last_name"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	Active       bool   `bson:"active"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func toDoc(u *domain.User) mongoUser {
	return mongoUser{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email.String(),
		PasswordHash: u.PasswordHash.String(),
		Role:         string(u.Role),
		Active:       u.Active,
		CreatedAt:    u.CreatedAt.Unix(),
		UpdatedAt:    u.UpdatedAt.Unix(),
	}
}

func fromDoc(mu mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID,
		FirstName:    mu.FirstName,
		LastName:     mu.LastName,
		Email:        domain.Email(mu.Email),
		PasswordHash: domain.PasswordHash(mu.PasswordHash),
		Role:         domain.Role(mu.Role),
		Active:       mu.Active,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	_, err := r.coll.InsertOne(ctx, toDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email.String()})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromDoc(mu), nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"role": string(role)})
	if err != nil {
		return nil, fmt.Errorf("find users by role: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var mu mongoUser
		if err := cursor.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, fromDoc(mu))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.update(ctx, id, bson.M{"active": active})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id string, hash domain.PasswordHash) error {
	return r.update(ctx, id, bson.M{"password_hash": hash.String()})
}

func (r *UserRepository) update(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC().Unix()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
