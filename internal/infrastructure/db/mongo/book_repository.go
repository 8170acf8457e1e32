package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fullstack/libreria-system/internal/core/domain"
)

const booksCollection = "books"

// BookRepository implements the generic catalog store for books.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

type bookDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Author      string             `bson:"author"`
	Genre       string             `bson:"genre"`
	Publication int                `bson:"publication"`
}

func toBookDoc(b domain.Book) bookDoc {
	return bookDoc{
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Publication: b.Publication,
	}
}

func (d bookDoc) toDomain() domain.Book {
	return domain.Book{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Author:      d.Author,
		Genre:       d.Genre,
		Publication: d.Publication,
	}
}

func (r *BookRepository) FindAll(ctx context.Context) ([]domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cur.Close(ctx)

	books := make([]domain.Book, 0)
	for cur.Next(ctx) {
		var doc bookDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Book{}, &domain.NotFoundError{Resource: "book", Key: id}
	}

	var doc bookDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Book{}, &domain.NotFoundError{Resource: "book", Key: id}
		}
		return domain.Book{}, fmt.Errorf("find book: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookRepository) Insert(ctx context.Context, book domain.Book) (domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toBookDoc(book))
	if err != nil {
		return domain.Book{}, fmt.Errorf("insert book: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	book.ID = oid.Hex()
	return book, nil
}

func (r *BookRepository) Update(ctx context.Context, id string, book domain.Book) (domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Book{}, &domain.NotFoundError{Resource: "book", Key: id}
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toBookDoc(book))
	if err != nil {
		return domain.Book{}, fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.Book{}, &domain.NotFoundError{Resource: "book", Key: id}
	}

	book.ID = id
	return book, nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &domain.NotFoundError{Resource: "book", Key: id}
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return &domain.NotFoundError{Resource: "book", Key: id}
	}
	return nil
}
