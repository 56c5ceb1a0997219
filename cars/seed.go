package cars

import (
	"context"
	"log"
	"time"

	"vroomly/db"
	"vroomly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Seed inserts the starter fleet when the catalog is empty, so a fresh
// deployment has something to rent.
func Seed(ctx context.Context) error {
	count, err := db.CarsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	fleet := []models.Car{
		{
			CarID: "car_1", Name: "BMW X5", Type: "SUV", Year: "2006", Price: 300,
			Seats: 4, Fuel: "Hybrid", Transmission: "Semi-Automatic", Location: "New York",
			Image:       "/static/carpic/bmw_x5.jpg",
			Description: "The BMW X5 is a mid-size luxury SUV that debuted in 1999 as BMW's first SUV. It offers a perfect blend of luxury, performance, and versatility for both city driving and off-road adventures.",
			Features:    []string{"360 Camera", "GPS", "Rear View Mirror", "Bluetooth", "Heated Seats"},
		},
		{
			CarID: "car_2", Name: "Toyota Corolla", Type: "Sedan", Year: "2022", Price: 150,
			Seats: 5, Fuel: "Petrol", Transmission: "Automatic", Location: "Los Angeles",
			Image:       "/static/carpic/toyota_corolla.jpg",
			Description: "The Toyota Corolla is a reliable and fuel-efficient sedan perfect for daily commuting and city driving. Known for its durability and low maintenance costs.",
			Features:    []string{"Bluetooth", "Backup Camera", "Lane Departure Warning", "Apple CarPlay", "Android Auto"},
		},
		{
			CarID: "car_3", Name: "Ford Neo 6", Type: "Hatchback", Year: "2023", Price: 180,
			Seats: 5, Fuel: "Electric", Transmission: "Automatic", Location: "Chicago",
			Image:       "/static/carpic/ford_neo.jpg",
			Description: "The Ford Neo 6 is a modern electric hatchback offering excellent range and performance. Perfect for eco-conscious drivers who want style and sustainability.",
			Features:    []string{"Electric Range 300+ miles", "Fast Charging", "Regenerative Braking", "Smart Connectivity", "Advanced Safety Features"},
		},
		{
			CarID: "car_4", Name: "Honda Civic", Type: "Sedan", Year: "2021", Price: 140,
			Seats: 5, Fuel: "Petrol", Transmission: "Manual", Location: "Miami",
			Image:       "/static/carpic/honda_civic.jpg",
			Description: "The Honda Civic is a popular compact sedan known for its reliability, fuel efficiency, and sporty handling. A great choice for both daily driving and weekend trips.",
			Features:    []string{"Honda Sensing", "Apple CarPlay", "Android Auto", "Bluetooth", "Backup Camera"},
		},
		{
			CarID: "car_5", Name: "Audi A6", Type: "Sedan", Year: "2022", Price: 350,
			Seats: 5, Fuel: "Petrol", Transmission: "Automatic", Location: "New York",
			Image:       "/static/carpic/audi_a6.jpg",
			Description: "The Audi A6 is an executive sedan pairing refined comfort with modern driver assistance. Built for long highway days.",
			Features:    []string{"Virtual Cockpit", "Adaptive Cruise", "Matrix LED", "Bluetooth", "Heated Seats"},
		},
	}

	docs := make([]interface{}, 0, len(fleet))
	for _, car := range fleet {
		car.CreatedAt = now
		car.UpdatedAt = now
		docs = append(docs, car)
	}

	if _, err := db.CarsCollection.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Printf("Seeded %d cars into the catalog", len(docs))
	return nil
}
