package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/openngo/fieldpunch/internal/app/system/normalize"
	"github.com/openngo/fieldpunch/internal/app/system/status"
	"github.com/openngo/fieldpunch/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateUser is returned when the email or mobile number is taken.
	ErrDuplicateUser = errors.New("a user with this email or mobile number already exists")
	errBadRole       = errors.New(`role must be "admin"|"member"`)
	errBadStatus     = errors.New(`status must be "active"|"disabled"`)
	errOrgNeeded     = errors.New("member must have organization_id")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByMobileNo looks up a user by normalized mobile number, the login
// identity for field members. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByMobileNo(ctx context.Context, mobileNo string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"mobile_no": normalize.MobileNo(mobileNo)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields and
// hashing the given plain-text password. Username defaults to the first two
// characters of the full name plus the last two digits of the mobile number
// when not supplied.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.MobileNo = normalize.MobileNo(u.MobileNo)
	u.Role = normalize.Role(u.Role)
	if u.Status == "" {
		u.Status = status.Active
	}
	if u.Username == "" {
		u.Username = generatedUsername(u.FullName, u.MobileNo)
	}

	switch u.Role {
	case "admin", "member":
		// ok
	default:
		return models.User{}, errBadRole
	}
	if !status.IsValid(u.Status) {
		return models.User{}, errBadStatus
	}
	if u.Role == "member" && u.OrganizationID == nil {
		return models.User{}, errOrgNeeded
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = string(hash)

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateUser
		}
		return models.User{}, err
	}
	return u, nil
}

// generatedUsername follows the registration rule inherited from the mobile
// app: two leading name characters plus the trailing two mobile digits.
func generatedUsername(fullName, mobileNo string) string {
	name := []rune(fullName)
	if len(name) > 2 {
		name = name[:2]
	}
	tail := mobileNo
	if len(tail) > 2 {
		tail = tail[len(tail)-2:]
	}
	return string(name) + tail
}

// CheckPassword compares a plain-text password against the stored hash.
func (s *Store) CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword hashes and stores a new password for the user.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash": string(hash),
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// VerifyDevice records the handset a user punches in from and marks it verified.
func (s *Store) VerifyDevice(ctx context.Context, id primitive.ObjectID, info models.DeviceInfo) (*models.User, error) {
	after := options.After
	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"device_info":     info,
			"device_verified": true,
			"updated_at":      time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AssignOrganization moves a user into the given organization.
func (s *Store) AssignOrganization(ctx context.Context, userID, orgID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, userID, bson.M{"$set": bson.M{
		"organization_id": orgID,
		"updated_at":      time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UnassignOrganization clears the organization link on every member of the
// given organization. Used when an organization is deleted.
func (s *Store) UnassignOrganization(ctx context.Context, orgID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"organization_id": orgID},
		bson.M{"$unset": bson.M{"organization_id": ""}, "$set": bson.M{"updated_at": time.Now().UTC()}})
	return err
}

// MembersByOrganization lists the active members of an organization, the
// population the absentee sweep compares against the day's ledger.
func (s *Store) MembersByOrganization(ctx context.Context, orgID primitive.ObjectID) ([]models.User, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"role": "member", "organization_id": orgID, "status": status.Active},
		options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
