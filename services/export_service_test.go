package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"backend_fleet/models"
	"backend_fleet/testutils"
)

func setupExportServiceTest(t *testing.T) (*gorm.DB, *ExportService) {
	db, err := testutils.SetupTestDB()
	require.NoError(t, err)

	vehicleType := models.VehicleType{Name: "Трактор"}
	require.NoError(t, db.Create(&vehicleType).Error)

	vehicle := models.Vehicle{
		RegNumber:       "A123BC",
		Brand:           "УРАЛ",
		DatePurchase:    time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		TypeID:          vehicleType.ID,
		Mileage:         decimal.NewFromFloat(15000.50),
		OperationStatus: models.VehicleStatusInOperation,
	}
	require.NoError(t, db.Create(&vehicle).Error)

	// Удаленная техника не попадает в выгрузку
	deleted := models.Vehicle{
		RegNumber:       "B456DE",
		Brand:           "КАМАЗ",
		DatePurchase:    time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		TypeID:          vehicleType.ID,
		Mileage:         decimal.NewFromInt(90000),
		OperationStatus: models.VehicleStatusRepair,
		IsDeleted:       true,
	}
	require.NoError(t, db.Create(&deleted).Error)

	sparePartType := models.SparePartType{Name: "Шина"}
	require.NoError(t, db.Create(&sparePartType).Error)
	sparePart := models.SparePart{
		SparePartTypeID: sparePartType.ID,
		VehicleID:       vehicle.ID,
		Status:          models.SparePartStatusInstalled,
	}
	require.NoError(t, db.Create(&sparePart).Error)

	return db, NewExportService(db, t.TempDir())
}

func TestExportService_BuildVehicleExport(t *testing.T) {
	_, es := setupExportServiceTest(t)

	data, err := es.BuildVehicleExport()
	require.NoError(t, err)

	assert.Equal(t, "Техника", data.Title)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, "A123BC", data.Rows[0][1])
	assert.Equal(t, "УРАЛ", data.Rows[0][2])
	assert.Equal(t, "Трактор", data.Rows[0][3])
	assert.Equal(t, "В работе", data.Rows[0][6])
}

func TestExportService_BuildSparePartExport(t *testing.T) {
	_, es := setupExportServiceTest(t)

	data, err := es.BuildSparePartExport()
	require.NoError(t, err)

	require.Len(t, data.Rows, 1)
	assert.Equal(t, "Шина", data.Rows[0][1])
	assert.Equal(t, "УРАЛ (A123BC)", data.Rows[0][2])
	assert.Equal(t, "Установлено", data.Rows[0][3])
}

func TestExportService_GenerateFile_CSV(t *testing.T) {
	_, es := setupExportServiceTest(t)

	data, err := es.BuildVehicleExport()
	require.NoError(t, err)

	filePath, err := es.GenerateFile(data, "vehicles", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(filePath))

	content, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "A123BC")
}

func TestExportService_GenerateFile_Excel(t *testing.T) {
	_, es := setupExportServiceTest(t)

	data, err := es.BuildVehicleExport()
	require.NoError(t, err)

	filePath, err := es.GenerateFile(data, "vehicles", ExportFormatExcel)
	require.NoError(t, err)

	f, err := excelize.OpenFile(filePath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Техника")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Рег. номер", rows[0][1])
	assert.Equal(t, "A123BC", rows[1][1])
}

func TestExportService_GenerateFile_PDF(t *testing.T) {
	_, es := setupExportServiceTest(t)

	data, err := es.BuildSparePartExport()
	require.NoError(t, err)

	filePath, err := es.GenerateFile(data, "spare_parts", ExportFormatPDF)
	require.NoError(t, err)

	info, err := os.Stat(filePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportService_GenerateFile_UnsupportedFormat(t *testing.T) {
	_, es := setupExportServiceTest(t)

	data, err := es.BuildVehicleExport()
	require.NoError(t, err)

	_, err = es.GenerateFile(data, "vehicles", "docx")
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
