package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"backend_fleet/models"
	"backend_fleet/services"
)

// VehicleAPI представляет API для работы с техникой
type VehicleAPI struct {
	DB        *gorm.DB
	Cascade   *services.CascadeService
	UploadDir string
}

// NewVehicleAPI создает новый экземпляр VehicleAPI
func NewVehicleAPI(db *gorm.DB, uploadDir string) *VehicleAPI {
	return &VehicleAPI{DB: db, Cascade: services.NewCascadeService(db), UploadDir: uploadDir}
}

// VehicleRequest тело запроса создания/обновления техники
type VehicleRequest struct {
	RegNumber       string          `json:"reg_number" binding:"required"`
	Brand           string          `json:"brand" binding:"required"`
	DatePurchase    string          `json:"date_purchase" binding:"required"` // Формат: 2006-01-02
	TypeID          uint            `json:"type_id" binding:"required"`
	Mileage         decimal.Decimal `json:"mileage"`
	OperationStatus string          `json:"operation_status"`
}

func (api *VehicleAPI) applyVehicleRequest(vehicle *models.Vehicle, req *VehicleRequest) (int, string) {
	datePurchase, err := time.Parse("2006-01-02", req.DatePurchase)
	if err != nil {
		return http.StatusBadRequest, "Некорректная дата покупки, ожидается формат ГГГГ-ММ-ДД"
	}

	if req.OperationStatus == "" {
		req.OperationStatus = models.VehicleStatusInOperation
	}
	if !models.IsValidVehicleStatus(req.OperationStatus) {
		return http.StatusBadRequest, "Недопустимый статус техники: " + req.OperationStatus
	}

	// Тип техники выбирается только из активных записей
	var vehicleType models.VehicleType
	if err := api.DB.Where("is_deleted = ?", false).First(&vehicleType, req.TypeID).Error; err != nil {
		return http.StatusBadRequest, "Указанный тип техники не найден"
	}

	vehicle.RegNumber = req.RegNumber
	vehicle.Brand = req.Brand
	vehicle.DatePurchase = datePurchase
	vehicle.TypeID = req.TypeID
	vehicle.Mileage = req.Mileage
	vehicle.OperationStatus = req.OperationStatus
	return 0, ""
}

// CreateVehicle создает новую единицу техники
func (api *VehicleAPI) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	var vehicle models.Vehicle
	if status, message := api.applyVehicleRequest(&vehicle, &req); status != 0 {
		c.JSON(status, gin.H{"error": message})
		return
	}

	if err := api.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании техники: " + err.Error()})
		return
	}

	api.DB.Preload("Type").First(&vehicle, vehicle.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Техника успешно создана",
		"data":    vehicle,
	})
}

// GetVehicles возвращает список техники с фильтрацией по бренду
func (api *VehicleAPI) GetVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	query := api.DB.Model(&models.Vehicle{}).Preload("Type").Where("is_deleted = ?", false)

	// Фильтр по бренду: подстрока без учета регистра
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("LOWER(brand) LIKE LOWER(?)", "%"+brand+"%")
	}

	pagination := GetPagination(c)

	var total int64
	query.Count(&total)

	if err := query.Order("id").Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка техники"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       vehicles,
		"pagination": PaginationResponse(pagination, total),
	})
}

// GetVehicle возвращает информацию о конкретной технике с активными фотографиями
func (api *VehicleAPI) GetVehicle(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := api.DB.Preload("Type").
		Preload("Images", "is_deleted = ?", false).
		Where("is_deleted = ?", false).First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Техника не найдена"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске техники"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

// UpdateVehicle обновляет технику
func (api *VehicleAPI) UpdateVehicle(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := api.DB.Where("is_deleted = ?", false).First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Техника не найдена"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске техники"})
		}
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if status, message := api.applyVehicleRequest(&vehicle, &req); status != 0 {
		c.JSON(status, gin.H{"error": message})
		return
	}

	if err := api.DB.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении техники: " + err.Error()})
		return
	}

	api.DB.Preload("Type").First(&vehicle, vehicle.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Техника успешно обновлена",
		"data":    vehicle,
	})
}

// DeleteVehicle помечает технику удаленной вместе с ее фотографиями.
// Запчасти, связанные с техникой, не затрагиваются.
func (api *VehicleAPI) DeleteVehicle(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.Cascade.SoftDeleteVehicle(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Техника не найдена"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении техники"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Техника успешно удалена"})
}

// UploadVehicleImage загружает фотографию техники
func (api *VehicleAPI) UploadVehicleImage(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicle models.Vehicle
	if err := api.DB.Where("is_deleted = ?", false).First(&vehicle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Техника не найдена"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл не передан"})
		return
	}

	path, err := SaveUploadedImage(c, file, api.UploadDir, "vehicle_images")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	image := models.VehicleImage{File: path, VehicleID: vehicle.ID}
	if err := api.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении фотографии: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Фотография успешно загружена",
		"data":    image,
	})
}

// DeleteVehicleImage помечает фотографию техники удаленной
func (api *VehicleAPI) DeleteVehicleImage(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var image models.VehicleImage
	if err := api.DB.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Фотография не найдена"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске фотографии"})
		}
		return
	}

	if err := api.DB.Model(&image).Update("is_deleted", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении фотографии"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Фотография успешно удалена"})
}
