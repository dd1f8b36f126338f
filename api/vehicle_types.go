package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_fleet/models"
	"backend_fleet/services"
)

// VehicleTypeAPI представляет API для работы с типами техники
type VehicleTypeAPI struct {
	DB      *gorm.DB
	Cascade *services.CascadeService
}

// NewVehicleTypeAPI создает новый экземпляр VehicleTypeAPI
func NewVehicleTypeAPI(db *gorm.DB) *VehicleTypeAPI {
	return &VehicleTypeAPI{DB: db, Cascade: services.NewCascadeService(db)}
}

// VehicleTypeRequest тело запроса создания/обновления типа техники
type VehicleTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateVehicleType создает новый тип техники
func (api *VehicleTypeAPI) CreateVehicleType(c *gin.Context) {
	var req VehicleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	vehicleType := models.VehicleType{Name: req.Name}
	if err := api.DB.Create(&vehicleType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании типа техники: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Тип техники успешно создан",
		"data":    vehicleType,
	})
}

// GetVehicleTypes возвращает список типов техники
func (api *VehicleTypeAPI) GetVehicleTypes(c *gin.Context) {
	var vehicleTypes []models.VehicleType
	query := api.DB.Model(&models.VehicleType{}).Where("is_deleted = ?", false)

	pagination := GetPagination(c)

	var total int64
	query.Count(&total)

	if err := query.Order("id").Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&vehicleTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка типов техники"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       vehicleTypes,
		"pagination": PaginationResponse(pagination, total),
	})
}

// GetVehicleType возвращает информацию о конкретном типе техники
func (api *VehicleTypeAPI) GetVehicleType(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicleType models.VehicleType
	if err := api.DB.Where("is_deleted = ?", false).First(&vehicleType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип техники не найден"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске типа техники"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicleType})
}

// UpdateVehicleType обновляет тип техники
func (api *VehicleTypeAPI) UpdateVehicleType(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var vehicleType models.VehicleType
	if err := api.DB.Where("is_deleted = ?", false).First(&vehicleType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип техники не найден"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске типа техники"})
		}
		return
	}

	var req VehicleTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	vehicleType.Name = req.Name
	if err := api.DB.Save(&vehicleType).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении типа техники: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Тип техники успешно обновлен",
		"data":    vehicleType,
	})
}

// DeleteVehicleType помечает тип техники удаленным вместе с техникой
// этого типа и ее фотографиями
func (api *VehicleTypeAPI) DeleteVehicleType(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.Cascade.SoftDeleteVehicleType(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип техники не найден"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении типа техники"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Тип техники успешно удален"})
}
