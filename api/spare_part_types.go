package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_fleet/models"
	"backend_fleet/services"
)

// SparePartTypeAPI представляет API для работы с типами запчастей
type SparePartTypeAPI struct {
	DB         *gorm.DB
	Cascade    *services.CascadeService
	Attributes *services.AttributeService
	UploadDir  string
}

// NewSparePartTypeAPI создает новый экземпляр SparePartTypeAPI
func NewSparePartTypeAPI(db *gorm.DB, uploadDir string) *SparePartTypeAPI {
	return &SparePartTypeAPI{
		DB:         db,
		Cascade:    services.NewCascadeService(db),
		Attributes: services.NewAttributeService(db),
		UploadDir:  uploadDir,
	}
}

// SparePartTypeRequest тело запроса создания/обновления типа запчасти.
// Поле attributes содержит пакет привязки по всему каталогу атрибутов.
type SparePartTypeRequest struct {
	Name       string                        `json:"name" binding:"required"`
	Attributes []services.AttributeSelection `json:"attributes"`
}

// CreateSparePartType создает новый тип запчасти вместе с выбранными
// значениями атрибутов. Тип и значения записываются в одной транзакции:
// невалидный пакет атрибутов не оставляет следов в БД.
func (api *SparePartTypeAPI) CreateSparePartType(c *gin.Context) {
	var req SparePartTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if err := api.Attributes.ValidateSelections(req.Attributes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sparePartType := models.SparePartType{Name: req.Name}
	err := api.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sparePartType).Error; err != nil {
			return err
		}
		return api.Attributes.ReplaceValues(tx, sparePartType.ID, req.Attributes)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании типа запчасти: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Тип запчасти успешно создан",
		"data":    sparePartType,
	})
}

// GetSparePartTypes возвращает список типов запчастей
func (api *SparePartTypeAPI) GetSparePartTypes(c *gin.Context) {
	var sparePartTypes []models.SparePartType
	query := api.DB.Model(&models.SparePartType{}).Where("is_deleted = ?", false)

	pagination := GetPagination(c)

	var total int64
	query.Count(&total)

	if err := query.Order("id").Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&sparePartTypes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка типов запчастей"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       sparePartTypes,
		"pagination": PaginationResponse(pagination, total),
	})
}

// GetSparePartType возвращает тип запчасти вместе с активными фотографиями
// и снимком каталога атрибутов с текущими значениями
func (api *SparePartTypeAPI) GetSparePartType(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sparePartType models.SparePartType
	if err := api.DB.Preload("Images", "is_deleted = ?", false).
		Where("is_deleted = ?", false).First(&sparePartType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип запчасти не найден"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске типа запчасти"})
		}
		return
	}

	catalog, err := api.Attributes.GetCatalog(sparePartType.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       sparePartType,
		"attributes": catalog,
	})
}

// UpdateSparePartType обновляет тип запчасти и атомарно заменяет набор
// значений атрибутов на выбранные в пакете
func (api *SparePartTypeAPI) UpdateSparePartType(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sparePartType models.SparePartType
	if err := api.DB.Where("is_deleted = ?", false).First(&sparePartType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип запчасти не найден"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске типа запчасти"})
		}
		return
	}

	var req SparePartTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if err := api.Attributes.ValidateSelections(req.Attributes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sparePartType.Name = req.Name
	err = api.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&sparePartType).Error; err != nil {
			return err
		}
		return api.Attributes.ReplaceValues(tx, sparePartType.ID, req.Attributes)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении типа запчасти: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Тип запчасти успешно обновлен",
		"data":    sparePartType,
	})
}

// DeleteSparePartType помечает тип запчасти удаленным вместе с запчастями
// этого типа, их историей, фотографиями и значениями атрибутов
func (api *SparePartTypeAPI) DeleteSparePartType(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.Cascade.SoftDeleteSparePartType(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Тип запчасти не найден"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении типа запчасти"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Тип запчасти успешно удален"})
}

// UploadSparePartImage загружает фотографию типа запчасти
func (api *SparePartTypeAPI) UploadSparePartImage(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sparePartType models.SparePartType
	if err := api.DB.Where("is_deleted = ?", false).First(&sparePartType, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Тип запчасти не найден"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл не передан"})
		return
	}

	path, err := SaveUploadedImage(c, file, api.UploadDir, "spare_part_images")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	image := models.SparePartImage{File: path, SparePartTypeID: sparePartType.ID}
	if err := api.DB.Create(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при сохранении фотографии: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Фотография успешно загружена",
		"data":    image,
	})
}

// DeleteSparePartImage помечает фотографию типа запчасти удаленной
func (api *SparePartTypeAPI) DeleteSparePartImage(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var image models.SparePartImage
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
