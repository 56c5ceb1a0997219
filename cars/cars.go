package cars

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vroomly/db"
	"vroomly/dates"
	"vroomly/models"
	"vroomly/rental"
	"vroomly/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetCars lists the fleet, honoring the search filters of the catalog page:
// free-text query, car type, location and a daily-rate range.
func GetCars(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	q := r.URL.Query()

	if carType := q.Get("type"); carType != "" && carType != "All" {
		filter["type"] = carType
	}
	if location := q.Get("location"); location != "" {
		filter["location"] = location
	}
	if search := q.Get("q"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	price := bson.M{}
	if minStr := q.Get("minPrice"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			price["$gte"] = min
		}
	}
	if maxStr := q.Get("maxPrice"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			price["$lte"] = max
		}
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := db.CarsCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"carid": 1}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load cars")
		return
	}
	defer cur.Close(ctx)

	cars := []models.Car{}
	for cur.Next(ctx) {
		var c models.Car
		if err := cur.Decode(&c); err != nil {
			continue
		}
		cars = append(cars, c)
	}
	utils.RespondWithJSON(w, http.StatusOK, cars)
}

// GetCar returns one vehicle by id.
func GetCar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var car models.Car
	err := db.CarsCollection.FindOne(ctx, bson.M{"carid": ps.ByName("carid")}).Decode(&car)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Car not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, car)
}

// GetQuote prices a prospective rental of the car between the given dates.
// Missing dates fall back to the default pickup/return pair the detail page
// opens with. An inverted or empty range is a zero quote, not an error.
func GetQuote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var car models.Car
	err := db.CarsCollection.FindOne(ctx, bson.M{"carid": ps.ByName("carid")}).Decode(&car)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Car not found")
		return
	}

	pickupStr := r.URL.Query().Get("pickup")
	returnStr := r.URL.Query().Get("return")
	if pickupStr == "" || returnStr == "" {
		pickupStr, returnStr = dates.DefaultRange(time.Now().UTC())
	}

	pickup, err := parseEither(pickupStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid pickup date. Use DD-MM-YYYY")
		return
	}
	ret, err := parseEither(returnStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid return date. Use DD-MM-YYYY")
		return
	}

	quote := rental.Compute(pickup, ret, car.Price)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"carId":      car.CarID,
		"pickupDate": dates.Format(pickup),
		"returnDate": dates.Format(ret),
		"dailyRate":  car.Price,
		"days":       quote.Days,
		"total":      quote.Total,
	})
}

// parseEither accepts both the app's DD-MM-YYYY form and the date-picker's
// ISO form.
func parseEither(s string) (time.Time, error) {
	d, err := dates.Parse(s)
	if err == nil {
		return d, nil
	}
	if strings.Count(s, "-") == 2 && len(s) >= 8 && len(strings.Split(s, "-")[0]) == 4 {
		return dates.FromISO(s)
	}
	return time.Time{}, err
}
