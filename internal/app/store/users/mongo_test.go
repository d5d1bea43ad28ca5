package userstore_test

import (
	"testing"

	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
	"github.com/dalemusser/stratahr/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMongo_FindByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.NewMongo(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	oid := primitive.NewObjectID()
	_, err := db.Collection("users").InsertOne(ctx, bson.M{
		"_id":        oid,
		"email":      "admin@test.com",
		"password":   "admin123",
		"full_name":  "Ada Admin",
		"department": "HR",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	rec, err := store.FindByEmail(ctx, "admin@test.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if rec.ID() != oid.Hex() {
		t.Errorf("ID() = %q, want %q", rec.ID(), oid.Hex())
	}
	if _, ok := rec["_id"]; ok {
		t.Error("record still carries _id")
	}
	if rec.Secret() != "admin123" {
		t.Errorf("Secret() = %q", rec.Secret())
	}
	if rec["department"] != "HR" {
		t.Errorf("department = %v, want HR", rec["department"])
	}
}

func TestMongo_FindByEmail_KeepsOwnID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.NewMongo(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("users").InsertOne(ctx, bson.M{"id": "emp-42", "email": "e@x.com"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	rec, err := store.FindByEmail(ctx, "e@x.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if rec.ID() != "emp-42" {
		t.Errorf("ID() = %q, want emp-42", rec.ID())
	}
}

func TestMongo_FindByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.NewMongo(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.FindByEmail(ctx, "nobody@x.com")
	if err != userstore.ErrNotFound {
		t.Errorf("FindByEmail() error = %v, want ErrNotFound", err)
	}
}

func TestMongo_FindByEmail_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.NewMongo(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("users").InsertMany(ctx, []any{
		bson.M{"email": "dup@x.com"},
		bson.M{"email": "dup@x.com"},
	})
	if err != nil {
		t.Fatalf("seed users: %v", err)
	}

	_, err = store.FindByEmail(ctx, "dup@x.com")
	if !userstore.IsQueryError(err) {
		t.Errorf("FindByEmail() error = %v, want QueryError", err)
	}
}

func TestMongo_Ping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.NewMongo(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
