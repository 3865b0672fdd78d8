package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/dalemusser/raizes/internal/backend/store/storetest"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// TestMongoStore runs against RAIZES_TEST_MONGO_URI and is skipped without it.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("RAIZES_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("RAIZES_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("raizes_test_%d", time.Now().UnixNano())
	s, err := Connect(ctx, uri, dbName, zap.NewNop())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() {
		_ = s.db.Drop(context.Background())
		_ = s.Close(context.Background())
	})
	if err := s.EnsureIndexes(ctx, []string{"saberes", "cartas"}); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	storetest.Run(t, s)
}

func TestToRecord_NormalisesBSON(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := bson.M{
		"_id":  "1",
		"_seq": primitive.NewObjectID(),
		"id":   int32(1),
		"n":    int64(3),
		"when": primitive.NewDateTimeFromTime(ts),
		"tags": bson.A{"a", int32(2)},
		"regioes": bson.A{
			bson.D{{Key: "nome", Value: "Vão"}, {Key: "latitude", Value: -13.5}},
		},
	}
	got := toRecord(doc)

	if _, ok := got["_id"]; ok {
		t.Error("_id leaked into record")
	}
	if got["id"] != float64(1) || got["n"] != float64(3) {
		t.Errorf("numbers not normalised: %v %v", got["id"], got["n"])
	}
	if got["when"] != "2024-05-01T12:00:00Z" {
		t.Errorf("when = %v", got["when"])
	}
	tags := got["tags"].([]any)
	if tags[1] != float64(2) {
		t.Errorf("tags = %v", tags)
	}
	reg := got["regioes"].([]any)[0].(map[string]any)
	if reg["nome"] != "Vão" || reg["latitude"] != -13.5 {
		t.Errorf("regioes = %v", reg)
	}
}
