package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskboard/internal/model"
)

// MongoRepo is the durable store: one document per task in a single
// collection. It shares patch and filter semantics with MemoryRepo;
// the translation to bson lives in listQuery and updateDoc so it can
// be tested without a running server.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{col: db.Collection("tasks")}
}

// DialMongo connects, pings, and returns a repo bound to the tasks
// collection of the named database.
func DialMongo(ctx context.Context, uri, dbName string) (*MongoRepo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return NewMongoRepo(client.Database(dbName)), nil
}

func listQuery(f ListFilter) bson.M {
	q := bson.M{}
	if s, ok := f.wantStatus(); ok {
		q["status"] = s
	}
	if p, ok := f.wantPriority(); ok {
		q["priority"] = p
	}
	return q
}

// updateDoc translates a Patch into a $set/$unset pair with the same
// drop-invalid semantics as applyPatch. Both maps may be empty, in which
// case the update is a no-op and the caller just reads the record back.
func updateDoc(p Patch) (set, unset bson.M) {
	set, unset = bson.M{}, bson.M{}

	if p.Title != nil {
		if v := strings.TrimSpace(*p.Title); v != "" {
			set["title"] = v
		}
	}
	if p.Description != nil {
		set["description"] = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil && p.Priority.Valid() {
		set["priority"] = *p.Priority
	}
	if p.Status != nil && p.Status.Valid() {
		set["status"] = *p.Status
	}
	if p.DueDate != nil {
		if *p.DueDate == "" {
			unset["dueDate"] = ""
		} else {
			set["dueDate"] = *p.DueDate
		}
	}
	return set, unset
}

func (r *MongoRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t.ID = newID()
	t.CreatedAt = time.Now().UTC()
	normalizeNew(&t)

	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *MongoRepo) List(ctx context.Context, filter ListFilter) ([]model.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, listQuery(filter), opts)
	if err != nil {
		return nil, err
	}

	out := []model.Task{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) Update(ctx context.Context, id model.TaskID, p Patch) (model.Task, error) {
	set, unset := updateDoc(p)
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var t model.Task

	// A patch with no surviving fields is not an error; return the
	// record unchanged.
	if len(update) == 0 {
		err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Task{}, ErrNotFound
		}
		if err != nil {
			return model.Task{}, err
		}
		return t, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Task{}, ErrNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id model.TaskID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore upserts the given tasks by id; see MemoryRepo.Restore.
func (r *MongoRepo) Restore(ctx context.Context, tasks []model.Task) error {
	opts := options.Replace().SetUpsert(true)
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = newID()
		}
		normalizeNew(&t)
		if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t, opts); err != nil {
			return err
		}
	}
	return nil
}
