package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCollectionIndexes_UniqueEmailOnUsers(t *testing.T) {
	indexes := collectionIndexes()

	models, ok := indexes[usersCollection]
	if !ok {
		t.Fatalf("no indexes declared for %q", usersCollection)
	}
	if len(models) != 1 {
		t.Fatalf("expected one users index, got %d", len(models))
	}

	model := models[0]
	if model.Options == nil || model.Options.Unique == nil || !*model.Options.Unique {
		t.Fatalf("users email index must be unique")
	}
	keys, ok := model.Keys.(interface{ Map() bson.M })
	if !ok {
		t.Fatalf("unexpected keys type %T", model.Keys)
	}
	if _, ok := keys.Map()["email"]; !ok {
		t.Fatalf("users index must cover the email field, got %v", keys.Map())
	}
}

func TestCollectionIndexes_ProfileLookups(t *testing.T) {
	indexes := collectionIndexes()

	for _, coll := range []string{patientsCollection, doctorsCollection} {
		models, ok := indexes[coll]
		if !ok || len(models) == 0 {
			t.Fatalf("no indexes declared for %q", coll)
		}
	}
}
