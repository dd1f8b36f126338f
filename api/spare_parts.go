package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_fleet/models"
	"backend_fleet/services"
)

// SparePartAPI представляет API для работы с запчастями
type SparePartAPI struct {
	DB         *gorm.DB
	Cascade    *services.CascadeService
	ChangeLog  *services.SparePartLogService
	Attributes *services.AttributeService
}

// NewSparePartAPI создает новый экземпляр SparePartAPI
func NewSparePartAPI(db *gorm.DB) *SparePartAPI {
	return &SparePartAPI{
		DB:         db,
		Cascade:    services.NewCascadeService(db),
		ChangeLog:  services.NewSparePartLogService(db),
		Attributes: services.NewAttributeService(db),
	}
}

// SparePartRequest тело запроса создания/обновления запчасти
type SparePartRequest struct {
	SparePartTypeID uint   `json:"spare_part_type_id" binding:"required"`
	VehicleID       uint   `json:"vehicle_id" binding:"required"`
	Status          string `json:"status"`
}

func (api *SparePartAPI) validateSparePartRequest(req *SparePartRequest) (int, string) {
	if req.Status == "" {
		req.Status = models.SparePartStatusInstalled
	}
	if !models.IsValidSparePartStatus(req.Status) {
		return http.StatusBadRequest, "Недопустимый статус запчасти: " + req.Status
	}

	// Связи выбираются только из активных записей
	var sparePartType models.SparePartType
	if err := api.DB.Where("is_deleted = ?", false).First(&sparePartType, req.SparePartTypeID).Error; err != nil {
		return http.StatusBadRequest, "Указанный тип запчасти не найден"
	}
	var vehicle models.Vehicle
	if err := api.DB.Where("is_deleted = ?", false).First(&vehicle, req.VehicleID).Error; err != nil {
		return http.StatusBadRequest, "Указанная техника не найдена"
	}

	return 0, ""
}

// CreateSparePart создает новую запчасть и добавляет запись истории
// о создании; запчасть и запись фиксируются одной транзакцией
func (api *SparePartAPI) CreateSparePart(c *gin.Context) {
	var req SparePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if status, message := api.validateSparePartRequest(&req); status != 0 {
		c.JSON(status, gin.H{"error": message})
		return
	}

	sparePart := models.SparePart{
		SparePartTypeID: req.SparePartTypeID,
		VehicleID:       req.VehicleID,
		Status:          req.Status,
	}

	err := api.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sparePart).Error; err != nil {
			return err
		}
		if err := tx.Preload("SparePartType").Preload("Vehicle").
			First(&sparePart, sparePart.ID).Error; err != nil {
			return err
		}
		return api.ChangeLog.RecordCreate(tx, &sparePart)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании запчасти: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Запчасть успешно создана",
		"data":    sparePart,
	})
}

// GetSpareParts возвращает список запчастей
func (api *SparePartAPI) GetSpareParts(c *gin.Context) {
	var spareParts []models.SparePart
	query := api.DB.Model(&models.SparePart{}).
		Preload("SparePartType").Preload("Vehicle").
		Where("is_deleted = ?", false)

	pagination := GetPagination(c)

	var total int64
	query.Count(&total)

	if err := query.Order("id").Limit(pagination.Limit).Offset(pagination.Offset).
		Find(&spareParts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка запчастей"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       spareParts,
		"pagination": PaginationResponse(pagination, total),
	})
}

// GetSparePart возвращает запчасть вместе с фотографиями типа, значениями
// атрибутов типа и историей изменений (новые записи первыми)
func (api *SparePartAPI) GetSparePart(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sparePart models.SparePart
	if err := api.DB.Preload("SparePartType").Preload("Vehicle").
		Where("is_deleted = ?", false).First(&sparePart, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Запчасть не найдена"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске запчасти"})
		}
		return
	}

	var images []models.SparePartImage
	api.DB.Where("spare_part_type_id = ? AND is_deleted = ?", sparePart.SparePartTypeID, false).
		Find(&images)

	var changeLogs []models.SparePartLog
	api.DB.Where("spare_part_id = ? AND is_deleted = ?", sparePart.ID, false).
		Order("timestamp DESC, id DESC").Find(&changeLogs)

	var attributeValues []models.AttributeValue
	api.DB.Preload("Attribute").
		Where("spare_part_type_id = ? AND is_deleted = ?", sparePart.SparePartTypeID, false).
		Find(&attributeValues)

	c.JSON(http.StatusOK, gin.H{
		"data":             sparePart,
		"images":           images,
		"change_logs":      changeLogs,
		"attribute_values": attributeValues,
	})
}

// UpdateSparePart обновляет запчасть; при изменении отслеживаемых полей
// добавляется запись истории с перечнем изменений
func (api *SparePartAPI) UpdateSparePart(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Снимок состояния до обновления, со связями для текста истории
	var old models.SparePart
	if err := api.DB.Preload("SparePartType").Preload("Vehicle").
		Where("is_deleted = ?", false).First(&old, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Запчасть не найдена"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при поиске запчасти"})
		}
		return
	}

	var req SparePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if status, message := api.validateSparePartRequest(&req); status != 0 {
		c.JSON(status, gin.H{"error": message})
		return
	}

	updated := old
	updated.SparePartType = nil
	updated.Vehicle = nil
	updated.SparePartTypeID = req.SparePartTypeID
	updated.VehicleID = req.VehicleID
	updated.Status = req.Status

	err = api.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		if err := tx.Preload("SparePartType").Preload("Vehicle").
			First(&updated, updated.ID).Error; err != nil {
			return err
		}
		return api.ChangeLog.RecordUpdate(tx, &old, &updated)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при обновлении запчасти: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Запчасть успешно обновлена",
		"data":    updated,
	})
}

// DeleteSparePart помечает запчасть удаленной вместе с ее историей изменений
func (api *SparePartAPI) DeleteSparePart(c *gin.Context) {
	id, err := ParseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.Cascade.SoftDeleteSparePart(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Запчасть не найдена"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при удалении запчасти"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Запчасть успешно удалена"})
}
