package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	CarsCollection *mongo.Collection
	UserCollection *mongo.Collection
	Client         *mongo.Client
)

// Initialize MongoDB connection
func init() {
	_ = godotenv.Load()

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	CarsCollection = Client.Database("vroomly").Collection("cars")
	UserCollection = Client.Database("vroomly").Collection("users")
}
