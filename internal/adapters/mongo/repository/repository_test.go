package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rafaelleal24/orders/internal/adapters/config"
	mongoadapter "github.com/rafaelleal24/orders/internal/adapters/mongo"
)

var (
	testDB     *mongo.Database
	testClient *mongo.Client
)

// Transactions need a replica set, so the container runs as a single-node rs0.
func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	if err != nil {
		log.Fatalf("failed to start mongodb container: %v", err)
	}

	endpoint, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	testClient, err = mongoadapter.NewConnection(config.MongoConfig{
		URI:                    endpoint,
		Timeout:                30 * time.Second,
		MaxPoolSize:            20,
		ConnectTimeout:         30 * time.Second,
		ServerSelectionTimeout: 30 * time.Second,
		Direct:                 true,
	})
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}

	testDB = testClient.Database("test_db")

	code := m.Run()

	_ = mongoadapter.Disconnect(testClient)
	_ = container.Terminate(ctx)

	os.Exit(code)
}
