package todos

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

// mongoTodo is the stored document. priorityRank mirrors Priority so the
// server can sort by it.
type mongoTodo struct {
	ID           string     `bson:"_id"`
	Title        string     `bson:"title"`
	Description  string     `bson:"description"`
	Status       string     `bson:"status"`
	Priority     string     `bson:"priority"`
	PriorityRank int        `bson:"priorityRank"`
	DueDate      *time.Time `bson:"dueDate,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt"`
}

func toMongo(t *Todo) mongoTodo {
	return mongoTodo{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		PriorityRank: t.Priority.Rank(),
		DueDate:      t.DueDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (d mongoTodo) entity() Todo {
	t := Todo{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Status:      Status(d.Status),
		Priority:    Priority(d.Priority),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		t.DueDate = &due
	}
	return t
}

// titleCollation orders titles case-insensitively, like the in-memory engine.
var titleCollation = &options.Collation{Locale: "en", Strength: 2}

type MongoRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoRepository binds the todos collection and ensures its indexes.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	collection := db.Collection("todos")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
		{Keys: bson.D{{Key: "dueDate", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create todo indexes: %w", err)
	}

	return &MongoRepository{collection: collection, now: time.Now}, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Todo, error) {
	var doc mongoTodo
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("could not find todo: %w", err)
	}
	todo := doc.entity()
	return &todo, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]Todo, error) {
	return r.ListFiltered(ctx, newestFirst)
}

func (r *MongoRepository) ListFiltered(ctx context.Context, q Query) ([]Todo, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: mongoFilter(q)}}}

	dir := 1
	if q.Descending() {
		dir = -1
	}

	var sortDoc bson.D
	switch q.Field() {
	case SortByTitle:
		sortDoc = bson.D{{Key: "title", Value: dir}}
	case SortByPriority:
		sortDoc = bson.D{{Key: "priorityRank", Value: dir}}
	case SortByDueDate:
		pipeline = append(pipeline, bson.D{{Key: "$addFields", Value: bson.M{
			"dueMissing": bson.M{"$cond": bson.A{bson.M{"$ifNull": bson.A{"$dueDate", false}}, 0, 1}},
		}}})
		sortDoc = bson.D{{Key: "dueMissing", Value: 1}, {Key: "dueDate", Value: dir}}
	case SortByUpdatedAt:
		sortDoc = bson.D{{Key: "updatedAt", Value: dir}}
	default:
		sortDoc = bson.D{{Key: "createdAt", Value: dir}}
	}
	if q.Field() != SortByCreatedAt {
		sortDoc = append(sortDoc, bson.E{Key: "createdAt", Value: 1})
	}
	sortDoc = append(sortDoc, bson.E{Key: "_id", Value: 1})
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sortDoc}})

	opts := options.Aggregate().SetCollation(titleCollation)
	cursor, err := r.collection.Aggregate(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoTodo
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("could not decode todos: %w", err)
	}

	todos := make([]Todo, 0, len(docs))
	for _, d := range docs {
		todos = append(todos, d.entity())
	}
	return todos, nil
}

func mongoFilter(q Query) bson.M {
	filter := bson.M{}
	if q.Status != nil {
		filter["status"] = string(*q.Status)
	}
	if q.Priority != nil {
		filter["priority"] = string(*q.Priority)
	}
	if q.HasSearch() {
		pattern := bson.M{"$regex": regexp.QuoteMeta(q.Search), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

func (r *MongoRepository) Create(ctx context.Context, todo *Todo) error {
	prepareForInsert(todo, r.now())

	if _, err := r.collection.InsertOne(ctx, toMongo(todo)); err != nil {
		return fmt.Errorf("could not insert todo: %w", err)
	}
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, todo *Todo) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": todo.ID}, toMongo(todo))
	if err != nil {
		return fmt.Errorf("could not update todo: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("could not delete todo: %w", err)
	}
	return nil
}

func (r *MongoRepository) DeleteCompleted(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"status": string(StatusCompleted)})
	if err != nil {
		return 0, fmt.Errorf("could not delete completed todos: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *MongoRepository) Exists(ctx context.Context, id string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("could not check todo: %w", err)
	}
	return count > 0, nil
}

func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, readpref.Primary())
}
