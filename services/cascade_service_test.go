package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_fleet/models"
	"backend_fleet/testutils"
)

func setupCascadeServiceTest(t *testing.T) (*gorm.DB, *CascadeService) {
	db, err := testutils.SetupTestDB()
	require.NoError(t, err)
	return db, NewCascadeService(db)
}

func createTestVehicle(t *testing.T, db *gorm.DB, typeID uint) models.Vehicle {
	vehicle := models.Vehicle{
		RegNumber:       "A123BC",
		Brand:           "УРАЛ",
		DatePurchase:    time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC),
		TypeID:          typeID,
		Mileage:         decimal.NewFromInt(15000),
		OperationStatus: models.VehicleStatusInOperation,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}

func TestCascadeService_SoftDeleteVehicleType(t *testing.T) {
	db, cs := setupCascadeServiceTest(t)

	vehicleType := models.VehicleType{Name: "Трактор"}
	require.NoError(t, db.Create(&vehicleType).Error)

	vehicle := createTestVehicle(t, db, vehicleType.ID)
	image := models.VehicleImage{File: "vehicle_images/a.jpg", VehicleID: vehicle.ID}
	require.NoError(t, db.Create(&image).Error)

	// Техника другого типа не должна пострадать
	otherType := models.VehicleType{Name: "Самосвал"}
	require.NoError(t, db.Create(&otherType).Error)
	otherVehicle := createTestVehicle(t, db, otherType.ID)

	require.NoError(t, cs.SoftDeleteVehicleType(vehicleType.ID))

	var reloadedType models.VehicleType
	db.First(&reloadedType, vehicleType.ID)
	assert.True(t, reloadedType.IsDeleted)

	var reloadedVehicle models.Vehicle
	db.First(&reloadedVehicle, vehicle.ID)
	assert.True(t, reloadedVehicle.IsDeleted)

	var reloadedImage models.VehicleImage
	db.First(&reloadedImage, image.ID)
	assert.True(t, reloadedImage.IsDeleted)

	var untouched models.Vehicle
	db.First(&untouched, otherVehicle.ID)
	assert.False(t, untouched.IsDeleted)
}

func TestCascadeService_SoftDeleteVehicle(t *testing.T) {
	db, cs := setupCascadeServiceTest(t)

	vehicleType := models.VehicleType{Name: "Трактор"}
	require.NoError(t, db.Create(&vehicleType).Error)
	vehicle := createTestVehicle(t, db, vehicleType.ID)

	image := models.VehicleImage{File: "vehicle_images/a.jpg", VehicleID: vehicle.ID}
	require.NoError(t, db.Create(&image).Error)

	// Запчасть, установленная на технике
	sparePartType := models.SparePartType{Name: "Шина"}
	require.NoError(t, db.Create(&sparePartType).Error)
	sparePart := models.SparePart{
		SparePartTypeID: sparePartType.ID,
		VehicleID:       vehicle.ID,
		Status:          models.SparePartStatusInstalled,
	}
	require.NoError(t, db.Create(&sparePart).Error)

	require.NoError(t, cs.SoftDeleteVehicle(vehicle.ID))

	var reloadedVehicle models.Vehicle
	db.First(&reloadedVehicle, vehicle.ID)
	assert.True(t, reloadedVehicle.IsDeleted)

	var reloadedImage models.VehicleImage
	db.First(&reloadedImage, image.ID)
	assert.True(t, reloadedImage.IsDeleted)

	// Запчасти техники не каскадируются
	var reloadedPart models.SparePart
	db.First(&reloadedPart, sparePart.ID)
	assert.False(t, reloadedPart.IsDeleted)

	// Тип техники остается активным
	var reloadedType models.VehicleType
	db.First(&reloadedType, vehicleType.ID)
	assert.False(t, reloadedType.IsDeleted)
}

func TestCascadeService_SoftDeleteSparePartType(t *testing.T) {
	db, cs := setupCascadeServiceTest(t)

	vehicleType := models.VehicleType{Name: "Трактор"}
	require.NoError(t, db.Create(&vehicleType).Error)
	vehicle := createTestVehicle(t, db, vehicleType.ID)

	sparePartType := models.SparePartType{Name: "Шина"}
	require.NoError(t, db.Create(&sparePartType).Error)

	sparePart := models.SparePart{
		SparePartTypeID: sparePartType.ID,
		VehicleID:       vehicle.ID,
		Status:          models.SparePartStatusInstalled,
	}
	require.NoError(t, db.Create(&sparePart).Error)

	logEntry := models.SparePartLog{SparePartID: sparePart.ID, Message: "Создано"}
	require.NoError(t, db.Create(&logEntry).Error)

	image := models.SparePartImage{File: "spare_part_images/a.jpg", SparePartTypeID: sparePartType.ID}
	require.NoError(t, db.Create(&image).Error)

	attribute1 := models.Attribute{Name: "Диаметр", Unit: "мм", DataType: models.AttributeDataTypeInt}
	attribute2 := models.Attribute{Name: "Вес", Unit: "кг", DataType: models.AttributeDataTypeFloat}
	require.NoError(t, db.Create(&attribute1).Error)
	require.NoError(t, db.Create(&attribute2).Error)

	value1 := models.AttributeValue{AttributeID: attribute1.ID, SparePartTypeID: sparePartType.ID, Value: "235"}
	value2 := models.AttributeValue{AttributeID: attribute2.ID, SparePartTypeID: sparePartType.ID, Value: "12.5"}
	require.NoError(t, db.Create(&value1).Error)
	require.NoError(t, db.Create(&value2).Error)

	require.NoError(t, cs.SoftDeleteSparePartType(sparePartType.ID))

	var reloadedType models.SparePartType
	db.First(&reloadedType, sparePartType.ID)
	assert.True(t, reloadedType.IsDeleted)

	var reloadedPart models.SparePart
	db.First(&reloadedPart, sparePart.ID)
	assert.True(t, reloadedPart.IsDeleted)

	var reloadedLog models.SparePartLog
	db.First(&reloadedLog, logEntry.ID)
	assert.True(t, reloadedLog.IsDeleted)

	var reloadedImage models.SparePartImage
	db.First(&reloadedImage, image.ID)
	assert.True(t, reloadedImage.IsDeleted)

	var deletedValues int64
	db.Model(&models.AttributeValue{}).
		Where("spare_part_type_id = ? AND is_deleted = ?", sparePartType.ID, true).
		Count(&deletedValues)
	assert.Equal(t, int64(2), deletedValues)

	// Сами атрибуты каталога остаются активными
	var reloadedAttribute models.Attribute
	db.First(&reloadedAttribute, attribute1.ID)
	assert.False(t, reloadedAttribute.IsDeleted)
}

func TestCascadeService_SoftDeleteSparePart(t *testing.T) {
	db, cs := setupCascadeServiceTest(t)

	vehicleType := models.VehicleType{Name: "Трактор"}
	require.NoError(t, db.Create(&vehicleType).Error)
	vehicle := createTestVehicle(t, db, vehicleType.ID)

	sparePartType := models.SparePartType{Name: "Шина"}
	require.NoError(t, db.Create(&sparePartType).Error)

	sparePart := models.SparePart{
		SparePartTypeID: sparePartType.ID,
		VehicleID:       vehicle.ID,
		Status:          models.SparePartStatusInstalled,
	}
	require.NoError(t, db.Create(&sparePart).Error)

	logEntry := models.SparePartLog{SparePartID: sparePart.ID, Message: "Создано"}
	require.NoError(t, db.Create(&logEntry).Error)

	require.NoError(t, cs.SoftDeleteSparePart(sparePart.ID))

	var reloadedPart models.SparePart
	db.First(&reloadedPart, sparePart.ID)
	assert.True(t, reloadedPart.IsDeleted)

	var reloadedLog models.SparePartLog
	db.First(&reloadedLog, logEntry.ID)
	assert.True(t, reloadedLog.IsDeleted)
}

func TestCascadeService_SoftDeleteAttribute(t *testing.T) {
	db, cs := setupCascadeServiceTest(t)

	sparePartType := models.SparePartType{Name: "Шина"}
	require.NoError(t, db.Create(&sparePartType).Error)

	attribute := models.Attribute{Name: "Диаметр", Unit: "мм", DataType: models.AttributeDataTypeInt}
	require.NoError(t, db.Create(&attribute).Error)

	value := models.AttributeValue{AttributeID: attribute.ID, SparePartTypeID: sparePartType.ID, Value: "235"}
	require.NoError(t, db.Create(&value).Error)

	require.NoError(t, cs.SoftDeleteAttribute(attribute.ID))

	var reloadedAttribute models.Attribute
	db.First(&reloadedAttribute, attribute.ID)
	assert.True(t, reloadedAttribute.IsDeleted)

	var reloadedValue models.AttributeValue
	db.First(&reloadedValue, value.ID)
	assert.True(t, reloadedValue.IsDeleted)
}

func TestCascadeService_NotFound(t *testing.T) {
	_, cs := setupCascadeServiceTest(t)

	assert.ErrorIs(t, cs.SoftDeleteVehicleType(999), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, cs.SoftDeleteVehicle(999), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, cs.SoftDeleteSparePartType(999), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, cs.SoftDeleteSparePart(999), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, cs.SoftDeleteAttribute(999), gorm.ErrRecordNotFound)
}
