package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fullstack/libreria-system/internal/core/domain"
)

const accountsCollection = "accounts"

// AccountRepository persists accounts in MongoDB. A unique index on the
// normalized email field is the authoritative uniqueness guard: a racing
// duplicate insert or update is rejected by the index even when the
// service-level pre-check passed, and surfaces as the same Conflict.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"full_name"`
	Email        string             `bson:"email"`
	EmailNorm    string             `bson:"email_norm"`
	PasswordHash string             `bson:"password_hash"`
	Phone        string             `bson:"phone,omitempty"`
	RegisterDate time.Time          `bson:"register_date"`
	Role         string             `bson:"role"`
}

func toDoc(a *domain.Account) accountDoc {
	return accountDoc{
		FullName:     a.FullName,
		Email:        a.Email,
		EmailNorm:    domain.NormalizeEmail(a.Email),
		PasswordHash: a.PasswordHash,
		Phone:        a.Phone,
		RegisterDate: a.RegisterDate.UTC(),
		Role:         a.Role,
	}
}

func (d accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID.Hex(),
		FullName:     d.FullName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		RegisterDate: d.RegisterDate.UTC(),
		Role:         d.Role,
	}
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer cur.Close(ctx)

	return decodeAccounts(ctx, cur)
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &domain.NotFoundError{Resource: "account", Key: id}
	}

	var doc accountDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &domain.NotFoundError{Resource: "account", Key: id}
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByEmail looks up by the normalized email, making the search
// case-insensitive regardless of how the address was stored.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	filter := bson.M{"email_norm": domain.NormalizeEmail(email)}
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &domain.NotFoundError{Resource: "account", Key: email}
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByRole(ctx context.Context, role string) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, fmt.Errorf("find accounts by role: %w", err)
	}
	defer cur.Close(ctx)

	return decodeAccounts(ctx, cur)
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.ConflictError{Email: account.Email}
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	created := *account
	created.ID = oid.Hex()
	return &created, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return nil, &domain.NotFoundError{Resource: "account", Key: account.ID}
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toDoc(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &domain.ConflictError{Email: account.Email}
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, &domain.NotFoundError{Resource: "account", Key: account.ID}
	}
	return account, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &domain.NotFoundError{Resource: "account", Key: id}
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return &domain.NotFoundError{Resource: "account", Key: id}
	}
	return nil
}

func (r *AccountRepository) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the unique index backing the email invariant plus
// a secondary index for role listings.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_norm", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeAccounts(ctx context.Context, cur *mongo.Cursor) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)
	for cur.Next(ctx) {
		var doc accountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return accounts, nil
}
