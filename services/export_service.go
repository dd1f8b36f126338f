package services

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"backend_fleet/models"
)

// Поддерживаемые форматы экспорта
const (
	ExportFormatCSV   = "csv"
	ExportFormatExcel = "xlsx"
	ExportFormatPDF   = "pdf"
)

// ExportData представляет табличные данные для выгрузки
type ExportData struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ExportService формирует выгрузки инвентаря в файлы
type ExportService struct {
	DB        *gorm.DB
	ExportDir string
}

// NewExportService создает новый экземпляр ExportService
func NewExportService(db *gorm.DB, exportDir string) *ExportService {
	return &ExportService{DB: db, ExportDir: exportDir}
}

// BuildVehicleExport собирает данные по активной технике
func (es *ExportService) BuildVehicleExport() (*ExportData, error) {
	var vehicles []models.Vehicle
	if err := es.DB.Preload("Type").Where("is_deleted = ?", false).
		Order("id").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("ошибка при получении списка техники: %w", err)
	}

	data := &ExportData{
		Title:   "Техника",
		Headers: []string{"ID", "Рег. номер", "Бренд", "Тип", "Дата покупки", "Пробег", "Статус"},
	}
	for _, vehicle := range vehicles {
		typeName := ""
		if vehicle.Type != nil {
			typeName = vehicle.Type.Name
		}
		data.Rows = append(data.Rows, []string{
			fmt.Sprintf("%d", vehicle.ID),
			vehicle.RegNumber,
			vehicle.Brand,
			typeName,
			vehicle.DatePurchase.Format("02.01.2006"),
			vehicle.Mileage.String(),
			vehicle.StatusLabel(),
		})
	}

	return data, nil
}

// BuildSparePartExport собирает данные по активным запчастям
func (es *ExportService) BuildSparePartExport() (*ExportData, error) {
	var spareParts []models.SparePart
	if err := es.DB.Preload("SparePartType").Preload("Vehicle").
		Where("is_deleted = ?", false).Order("id").Find(&spareParts).Error; err != nil {
		return nil, fmt.Errorf("ошибка при получении списка запчастей: %w", err)
	}

	data := &ExportData{
		Title:   "Запчасти",
		Headers: []string{"ID", "Тип запчасти", "Техника", "Статус", "Дата создания"},
	}
	for _, sparePart := range spareParts {
		typeName := ""
		if sparePart.SparePartType != nil {
			typeName = sparePart.SparePartType.Name
		}
		vehicleName := ""
		if sparePart.Vehicle != nil {
			vehicleName = sparePart.Vehicle.DisplayName()
		}
		data.Rows = append(data.Rows, []string{
			fmt.Sprintf("%d", sparePart.ID),
			typeName,
			vehicleName,
			sparePart.StatusLabel(),
			sparePart.CreatedAt.Format("02.01.2006"),
		})
	}

	return data, nil
}

// GenerateFile записывает данные в файл указанного формата и возвращает путь
func (es *ExportService) GenerateFile(data *ExportData, name, format string) (string, error) {
	if err := os.MkdirAll(es.ExportDir, 0755); err != nil {
		return "", fmt.Errorf("ошибка при создании каталога выгрузок: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	fileName := fmt.Sprintf("%s_%s", name, timestamp)

	switch format {
	case ExportFormatCSV:
		return es.generateCSV(data, filepath.Join(es.ExportDir, fileName+".csv"))
	case ExportFormatExcel:
		return es.generateExcel(data, filepath.Join(es.ExportDir, fileName+".xlsx"))
	case ExportFormatPDF:
		return es.generatePDF(data, filepath.Join(es.ExportDir, fileName+".pdf"))
	default:
		return "", NewValidationError("format", "Неподдерживаемый формат выгрузки: "+format)
	}
}

// generateCSV генерирует CSV файл выгрузки
func (es *ExportService) generateCSV(data *ExportData, filePath string) (string, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(data.Headers); err != nil {
		return "", err
	}
	for _, row := range data.Rows {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}

	return filePath, nil
}

// generateExcel генерирует Excel файл выгрузки
func (es *ExportService) generateExcel(data *ExportData, filePath string) (string, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Ошибка при закрытии Excel файла: %v", err)
		}
	}()

	sheetName := data.Title
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range data.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIdx, row := range data.Rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	endCell, _ := excelize.CoordinatesToCellName(len(data.Headers), len(data.Rows)+1)
	f.AutoFilter(sheetName, "A1:"+endCell, []excelize.AutoFilterOptions{})

	if err := f.SaveAs(filePath); err != nil {
		return "", err
	}

	return filePath, nil
}

// generatePDF генерирует PDF файл выгрузки
func (es *ExportService) generatePDF(data *ExportData, filePath string) (string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(60, 10, data.Title)
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 9)
	for _, header := range data.Headers {
		pdf.Cell(38, 8, header)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, value := range row {
			pdf.Cell(38, 8, value)
		}
		pdf.Ln(8)
	}

	return filePath, pdf.OutputFileAndClose(filePath)
}
