package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_fleet/models"
	"backend_fleet/services"
)

// AttributeAPI представляет API для работы с каталогом атрибутов
type AttributeAPI struct {
	DB      *gorm.DB
	Cascade *services.CascadeService
}

// NewAttributeAPI создает новый экземпляр AttributeAPI
func NewAttributeAPI(db *gorm.DB) *AttributeAPI {
	return &AttributeAPI{DB: db, Cascade: services.NewCascadeService(db)}
}

// AttributeRequest тело запроса создания/обновления атрибута
type AttributeRequest struct {
	Name     string `json:"name" binding:"required"`
	Unit     string `json:"unit"`
	DataType string `json:"data_type" binding:"required"`
}

// CreateAttribute создает новый атрибут каталога
func (api *AttributeAPI) CreateAttribute(c *gin.Context) {
	var req AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if !models.IsValidAttributeDataType(req.DataType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип данных: " + req.DataType})
		return
	}

	attribute := models.Attribute{Name: req.Name, Unit: req.Unit, DataType: req.DataType}
	if err := api.DB.Create(&attribute).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании атрибута: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Атрибут успешно создан",
		"data":    attribute,
	})
}

// GetAttributes возвращает список атрибутов каталога
func (api *AttributeAPI) GetAttributes(c *gin.Context) {
	var attributes []models.Attribute
	query := api.DB.Model(&models.Attribute{}).Where("is_deleted = ?", false)

	pagination := GetPagination(c)

	var total int64
	query.Count(&total)

	if err := query.Order("id").Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&attributes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка атрибутов"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       attributes,
		"pagination": PaginationResponse(pagination, total),
	})
}

// GetAttribute возвращает информацию о конкретном атрибуте
func (api *AttributeAPI) GetAttribute(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var attribute models.Attribute
	if err := api.DB.Where("is_deleted = ?", false).First(&attribute, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Атрибут не найден"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске атрибута"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": attribute})
}

// UpdateAttribute обновляет атрибут каталога
func (api *AttributeAPI) UpdateAttribute(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var attribute models.Attribute
	if err := api.DB.Where("is_deleted = ?", false).First(&attribute, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Атрибут не найден"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске атрибута"})
		}
		return
	}

	var req AttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if !models.IsValidAttributeDataType(req.DataType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Недопустимый тип данных: " + req.DataType})
		return
	}

	attribute.Name = req.Name
	attribute.Unit = req.Unit
	attribute.DataType = req.DataType
	if err := api.DB.Save(&attribute).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении атрибута: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Атрибут успешно обновлен",
		"data":    attribute,
	})
}

// DeleteAttribute помечает атрибут удаленным вместе со всеми его значениями
func (api *AttributeAPI) DeleteAttribute(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.Cascade.SoftDeleteAttribute(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Атрибут не найден"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении атрибута"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Атрибут успешно удален"})
}
