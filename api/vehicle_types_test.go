package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_fleet/models"
	"backend_fleet/testutils"
)

func setupVehicleTypeTestRouter(t *testing.T) (*gorm.DB, *gin.Engine) {
	db, err := testutils.SetupTestDB()
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	typeAPI := NewVehicleTypeAPI(db)
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/vehicle-types", typeAPI.GetVehicleTypes)
		apiGroup.POST("/vehicle-types", typeAPI.CreateVehicleType)
		apiGroup.GET("/vehicle-types/:id", typeAPI.GetVehicleType)
		apiGroup.PUT("/vehicle-types/:id", typeAPI.UpdateVehicleType)
		apiGroup.POST("/vehicle-types/:id/delete", typeAPI.DeleteVehicleType)
	}

	return db, router
}

func TestCreateVehicleType(t *testing.T) {
	db, router := setupVehicleTypeTestRouter(t)

	body, _ := json.Marshal(gin.H{"name": "Трактор"})
	req, _ := http.NewRequest("POST", "/api/vehicle-types", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var vehicleType models.VehicleType
	require.NoError(t, db.Where("name = ?", "Трактор").First(&vehicleType).Error)
	assert.False(t, vehicleType.IsDeleted)
}

func TestCreateVehicleType_MissingName(t *testing.T) {
	_, router := setupVehicleTypeTestRouter(t)

	body, _ := json.Marshal(gin.H{})
	req, _ := http.NewRequest("POST", "/api/vehicle-types", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVehicleTypes_ExcludesDeleted(t *testing.T) {
	db, router := setupVehicleTypeTestRouter(t)

	active := models.VehicleType{Name: "Трактор"}
	require.NoError(t, db.Create(&active).Error)
	deleted := models.VehicleType{Name: "Самосвал", IsDeleted: true}
	require.NoError(t, db.Create(&deleted).Error)

	req, _ := http.NewRequest("GET", "/api/vehicle-types", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data []models.VehicleType `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "Трактор", response.Data[0].Name)
}

func TestUpdateVehicleType(t *testing.T) {
	db, router := setupVehicleTypeTestRouter(t)

	vehicleType := models.VehicleType{Name: "Трактор"}
	require.NoError(t, db.Create(&vehicleType).Error)

	body, _ := json.Marshal(gin.H{"name": "Экскаватор"})
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/vehicle-types/%d", vehicleType.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.VehicleType
	require.NoError(t, db.First(&reloaded, vehicleType.ID).Error)
	assert.Equal(t, "Экскаватор", reloaded.Name)
}

func TestDeleteVehicleType_CascadesVehiclesAndImages(t *testing.T) {
	db, router := setupVehicleTypeTestRouter(t)

	vehicleType := models.VehicleType{Name: "Трактор"}
	require.NoError(t, db.Create(&vehicleType).Error)

	vehicle := models.Vehicle{
		RegNumber:       "A123BC",
		Brand:           "УРАЛ",
		DatePurchase:    time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		TypeID:          vehicleType.ID,
		Mileage:         decimal.NewFromInt(15000),
		OperationStatus: models.VehicleStatusInOperation,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	image := models.VehicleImage{File: "vehicle_images/a.jpg", VehicleID: vehicle.ID}
	require.NoError(t, db.Create(&image).Error)

	req, _ := http.NewRequest("POST", fmt.Sprintf("/api/vehicle-types/%d/delete", vehicleType.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var reloadedType models.VehicleType
	db.First(&reloadedType, vehicleType.ID)
	assert.True(t, reloadedType.IsDeleted)

	var reloadedVehicle models.Vehicle
	db.First(&reloadedVehicle, vehicle.ID)
	assert.True(t, reloadedVehicle.IsDeleted)

	var reloadedImage models.VehicleImage
	db.First(&reloadedImage, image.ID)
	assert.True(t, reloadedImage.IsDeleted)
}

func TestDeleteVehicleType_NotFound(t *testing.T) {
	_, router := setupVehicleTypeTestRouter(t)

	req, _ := http.NewRequest("POST", "/api/vehicle-types/999/delete", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
