package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/stacking-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// requirementDocument stores one product requirement; BSON map keys must
// be strings so the product map is kept as an array.
type requirementDocument struct {
	ProductID int64 `bson:"product_id"`
	Quantity  int   `bson:"quantity"`
}

// groupDocument is the persisted shape of a GroupDefinition.
type groupDocument struct {
	ID              string                `bson:"_id"`
	Name            string                `bson:"name,omitempty"`
	Required        []requirementDocument `bson:"required"`
	StackingMode    string                `bson:"stacking_mode"`
	BaseHeight      float64               `bson:"base_height"`
	BaseWidth       float64               `bson:"base_width"`
	BaseLength      float64               `bson:"base_length"`
	BaseWeight      float64               `bson:"base_weight"`
	HeightIncrement float64               `bson:"height_increment"`
	WidthIncrement  float64               `bson:"width_increment"`
	LengthIncrement float64               `bson:"length_increment"`
	MaxQuantity     int                   `bson:"max_quantity"`
	Position        int                   `bson:"position"`
	CreatedAt       time.Time             `bson:"created_at"`
	UpdatedAt       time.Time             `bson:"updated_at"`
}

func toDocument(g model.GroupDefinition) groupDocument {
	doc := groupDocument{
		ID:              g.ID,
		Name:            g.Name,
		Required:        make([]requirementDocument, 0, len(g.Required)),
		StackingMode:    string(g.StackingMode),
		BaseHeight:      g.BaseHeight,
		BaseWidth:       g.BaseWidth,
		BaseLength:      g.BaseLength,
		BaseWeight:      g.BaseWeight,
		HeightIncrement: g.HeightIncrement,
		WidthIncrement:  g.WidthIncrement,
		LengthIncrement: g.LengthIncrement,
		MaxQuantity:     g.MaxQuantity,
		Position:        g.Position,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
	for pid, qty := range g.Required {
		doc.Required = append(doc.Required, requirementDocument{ProductID: pid, Quantity: qty})
	}
	return doc
}

func (d groupDocument) toModel() model.GroupDefinition {
	g := model.GroupDefinition{
		ID:              d.ID,
		Name:            d.Name,
		Required:        make(map[int64]int, len(d.Required)),
		StackingMode:    model.StackingMode(d.StackingMode),
		BaseHeight:      d.BaseHeight,
		BaseWidth:       d.BaseWidth,
		BaseLength:      d.BaseLength,
		BaseWeight:      d.BaseWeight,
		HeightIncrement: d.HeightIncrement,
		WidthIncrement:  d.WidthIncrement,
		LengthIncrement: d.LengthIncrement,
		MaxQuantity:     d.MaxQuantity,
		Position:        d.Position,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	for _, r := range d.Required {
		g.Required[r.ProductID] += r.Quantity
	}
	return g
}

// MongoGroupCatalog stores stacking groups in MongoDB.
type MongoGroupCatalog struct {
	collection *mongo.Collection
}

// NewMongoGroupCatalog creates a catalog backed by the stacking_groups collection.
func NewMongoGroupCatalog(db *MongoDB) *MongoGroupCatalog {
	return &MongoGroupCatalog{collection: db.StackingGroups}
}

// Load returns every group in catalog order.
func (r *MongoGroupCatalog) Load(ctx context.Context) ([]model.GroupDefinition, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "position", Value: 1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []groupDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	groups := make([]model.GroupDefinition, 0, len(docs))
	for _, d := range docs {
		groups = append(groups, d.toModel())
	}
	return groups, nil
}

// Get returns a single group or ErrGroupNotFound.
func (r *MongoGroupCatalog) Get(ctx context.Context, id string) (*model.GroupDefinition, error) {
	var doc groupDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	g := doc.toModel()
	return &g, nil
}

// Save inserts a new group (empty id) or replaces an existing one.
func (r *MongoGroupCatalog) Save(ctx context.Context, group model.GroupDefinition) (*model.GroupDefinition, error) {
	now := time.Now().UTC()
	if group.ID == "" {
		group.ID = uuid.NewString()
		group.CreatedAt = now
	} else if group.CreatedAt.IsZero() {
		existing, err := r.Get(ctx, group.ID)
		if err != nil && !errors.Is(err, ErrGroupNotFound) {
			return nil, err
		}
		if existing != nil {
			group.CreatedAt = existing.CreatedAt
		} else {
			group.CreatedAt = now
		}
	}
	group.UpdatedAt = now

	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": group.ID},
		toDocument(group),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes a group or returns ErrGroupNotFound.
func (r *MongoGroupCatalog) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrGroupNotFound
	}
	return nil
}
