package cars

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"vroomly/db"
	"vroomly/models"
	"vroomly/utils"

	"github.com/julienschmidt/httprouter"
)

var carUploadPath = "./static/carpic"

// CreateCar adds a vehicle to the fleet, with an optional photo that gets a
// listing thumbnail.
func CreateCar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Parse the multipart form data (with a 10MB limit)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Unable to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	if len(name) == 0 || len(name) > 100 {
		http.Error(w, "Name must be between 1 and 100 characters.", http.StatusBadRequest)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price <= 0 {
		http.Error(w, "Invalid price value. Must be a positive number.", http.StatusBadRequest)
		return
	}

	seats, err := strconv.Atoi(r.FormValue("seats"))
	if err != nil || seats <= 0 {
		seats = 5
	}

	car := models.Car{
		CarID:        "car_" + utils.GenerateID(14),
		Name:         name,
		Type:         r.FormValue("type"),
		Year:         r.FormValue("year"),
		Price:        price,
		Seats:        seats,
		Fuel:         r.FormValue("fuel"),
		Transmission: r.FormValue("transmission"),
		Location:     r.FormValue("location"),
		Description:  r.FormValue("description"),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	imageFile, imageHeader, err := r.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		http.Error(w, "Error retrieving image file: "+err.Error(), http.StatusBadRequest)
		return
	}
	if imageFile != nil {
		defer imageFile.Close()
		if !utils.ValidateImageFileType(w, imageHeader) {
			return
		}
		filename, err := utils.SaveImage(imageFile, imageHeader, carUploadPath, car.CarID)
		if err != nil {
			http.Error(w, "Error saving image: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err := utils.CreateThumb(carUploadPath, filename, car.CarID, 300, 200); err != nil {
			log.Printf("thumbnail for %s failed: %v", car.CarID, err)
		}
		car.Image = "/static/carpic/" + filename
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if _, err := db.CarsCollection.InsertOne(ctx, car); err != nil {
		http.Error(w, "db insert failed", http.StatusInternalServerError)
		return
	}

	utils.SendResponse(w, http.StatusCreated, car, "Car added to fleet", nil)
}
