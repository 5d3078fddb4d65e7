package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brightpixel/agency-backend/internal/model"
)

// CustomerRepositoryInterface defines the store operations the services need.
type CustomerRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error)
	Insert(ctx context.Context, c *model.Customer) error
	UpsertInquiry(ctx context.Context, email string, contact model.ContactUpdate, inquiry model.Inquiry) (*model.Customer, error)
	ApplyPatch(ctx context.Context, id primitive.ObjectID, patch *model.CustomerPatch) (*model.Customer, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context, status, service string, skip, limit int64) ([]model.Customer, error)
	Count(ctx context.Context, status, service string) (int64, error)
	FindAll(ctx context.Context) ([]model.Customer, error)
	FindByEmails(ctx context.Context, emails []string) ([]model.Customer, error)
	FindByService(ctx context.Context, service string) ([]model.Customer, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Customer, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
	ServiceCounts(ctx context.Context) ([]model.ServiceCount, error)
}

// CustomerRepository is the MongoDB implementation.
type CustomerRepository struct {
	Collection *mongo.Collection
}

// NewCustomerRepository binds the repository to the customers collection.
func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{Collection: db.Collection("customers")}
}

// EnsureIndexes creates the unique email key and the query indexes.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

// FindByEmail looks a customer up by normalized email. Missing is (nil, nil).
func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var c model.Customer
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByID fetches a customer by ObjectID. Missing is (nil, nil).
func (r *CustomerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error) {
	var c model.Customer
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert stores a new customer and fills in its generated ID and timestamps.
func (r *CustomerRepository) Insert(ctx context.Context, c *model.Customer) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := r.Collection.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return nil
}

// UpsertInquiry overwrites the contact fields of the customer owning email
// and appends one inquiry to its history, atomically in a single document
// update. It returns the updated customer, or (nil, nil) when no customer
// owns the email.
func (r *CustomerRepository) UpsertInquiry(ctx context.Context, email string, contact model.ContactUpdate, inquiry model.Inquiry) (*model.Customer, error) {
	update := bson.M{
		"$set": bson.M{
			"firstName": contact.FirstName,
			"lastName":  contact.LastName,
			"phone":     contact.Phone,
			"company":   contact.Company,
			"updatedAt": time.Now().UTC(),
		},
		"$push": bson.M{"inquiries": inquiry},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c model.Customer
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ApplyPatch updates only the fields the patch supplies and returns the
// post-update customer, or (nil, nil) when the id does not exist.
func (r *CustomerRepository) ApplyPatch(ctx context.Context, id primitive.ObjectID, patch *model.CustomerPatch) (*model.Customer, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Company != nil {
		set["company"] = *patch.Company
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.IsContacted != nil {
		set["isContacted"] = *patch.IsContacted
	}
	if patch.Notes != nil {
		set["notes"] = *patch.Notes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c model.Customer
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the customer and its embedded inquiry history in one
// document delete. It reports whether a document was actually removed.
func (r *CustomerRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func listFilter(status, service string) bson.M {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if service != "" {
		// Matches any inquiry in the history citing the service.
		filter["inquiries.servicesInterested"] = service
	}
	return filter
}

// List returns one page of customers, newest first.
func (r *CustomerRepository) List(ctx context.Context, status, service string, skip, limit int64) ([]model.Customer, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, listFilter(status, service), opts)
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

// Count returns the number of customers matching the listing filter.
func (r *CustomerRepository) Count(ctx context.Context, status, service string) (int64, error) {
	return r.Collection.CountDocuments(ctx, listFilter(status, service))
}

// FindAll returns every customer.
func (r *CustomerRepository) FindAll(ctx context.Context) ([]model.Customer, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

// FindByEmails returns the customers owning any of the given addresses.
func (r *CustomerRepository) FindByEmails(ctx context.Context, emails []string) ([]model.Customer, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"email": bson.M{"$in": emails}})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

// FindByService returns customers whose inquiry history cites the service.
func (r *CustomerRepository) FindByService(ctx context.Context, service string) ([]model.Customer, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"inquiries.servicesInterested": service})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

// FindByIDs returns the customers with any of the given identifiers.
func (r *CustomerRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Customer, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

// CountAll returns the total customer count.
func (r *CustomerRepository) CountAll(ctx context.Context) (int64, error) {
	return r.Collection.CountDocuments(ctx, bson.M{})
}

// CountByStatus groups customers by status.
func (r *CustomerRepository) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []model.StatusCount
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ServiceCounts flattens every inquiry's service interests across all
// customers and groups by service, most cited first.
func (r *CustomerRepository) ServiceCounts(ctx context.Context) ([]model.ServiceCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$inquiries"}},
		{{Key: "$unwind", Value: "$inquiries.servicesInterested"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$inquiries.servicesInterested",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []model.ServiceCount
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]model.Customer, error) {
	defer cursor.Close(ctx)
	customers := []model.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
