package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB connects to MongoDB and returns the client and database handle.
// An unreachable store at startup is fatal; the process does not degrade.
func ConnectDB(uri, dbName string) (*mongo.Client, *mongo.Database) {
	if uri == "" {
		log.Fatal("MONGO_URI not set in env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("mongo.Connect error: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("mongo.Ping error: %v", err)
	}

	log.Println("Connected to MongoDB:", dbName)
	return client, client.Database(dbName)
}
