package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_fleet/models"
)

// ItemAPI представляет REST API для ресурса Item
type ItemAPI struct {
	DB *gorm.DB
}

// NewItemAPI создает новый экземпляр ItemAPI
func NewItemAPI(db *gorm.DB) *ItemAPI {
	return &ItemAPI{DB: db}
}

// ItemRequest тело запроса создания записи
type ItemRequest struct {
	Text string `json:"text"`
}

// GetItems возвращает все записи, новые первыми
func (api *ItemAPI) GetItems(c *gin.Context) {
	var items []models.Item
	if err := api.DB.Order("pub_date DESC, id DESC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при получении списка записей"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateItem создает новую запись
func (api *ItemAPI) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{"text": []string{"Некорректное тело запроса."}},
		})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": gin.H{"text": []string{"Обязательное поле."}},
		})
		return
	}

	item := models.Item{Text: req.Text}
	if err := api.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка при создании записи: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}
