package api

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"backend_fleet/services"
)

// ExportAPI представляет API выгрузки инвентаря в файлы
type ExportAPI struct {
	Export *services.ExportService
}

// NewExportAPI создает новый экземпляр ExportAPI
func NewExportAPI(db *gorm.DB, exportDir string) *ExportAPI {
	return &ExportAPI{Export: services.NewExportService(db, exportDir)}
}

// ExportVehicles выгружает список техники в файл указанного формата
// (query-параметр format: csv, xlsx, pdf; по умолчанию xlsx)
func (api *ExportAPI) ExportVehicles(c *gin.Context) {
	data, err := api.Export.BuildVehicleExport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	api.sendFile(c, data, "vehicles")
}

// ExportSpareParts выгружает список запчастей в файл указанного формата
func (api *ExportAPI) ExportSpareParts(c *gin.Context) {
	data, err := api.Export.BuildSparePartExport()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	api.sendFile(c, data, "spare_parts")
}

func (api *ExportAPI) sendFile(c *gin.Context, data *services.ExportData, name string) {
	format := c.DefaultQuery("format", services.ExportFormatExcel)

	filePath, err := api.Export.GenerateFile(data, name, format)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.FileAttachment(filePath, filepath.Base(filePath))
}
