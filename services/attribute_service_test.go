package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend_fleet/models"
	"backend_fleet/testutils"
)

func setupAttributeServiceTest(t *testing.T) (*gorm.DB, *AttributeService, models.SparePartType, []models.Attribute) {
	db, err := testutils.SetupTestDB()
	require.NoError(t, err)

	sparePartType := models.SparePartType{Name: "Шина"}
	require.NoError(t, db.Create(&sparePartType).Error)

	attributes := []models.Attribute{
		{Name: "Диаметр", Unit: "мм", DataType: models.AttributeDataTypeInt},
		{Name: "Вес", Unit: "кг", DataType: models.AttributeDataTypeFloat},
		{Name: "Производитель", DataType: models.AttributeDataTypeString},
	}
	for i := range attributes {
		require.NoError(t, db.Create(&attributes[i]).Error)
	}

	return db, NewAttributeService(db), sparePartType, attributes
}

func activeValues(db *gorm.DB, sparePartTypeID uint) map[uint]string {
	var values []models.AttributeValue
	db.Where("spare_part_type_id = ? AND is_deleted = ?", sparePartTypeID, false).Find(&values)
	result := make(map[uint]string, len(values))
	for _, value := range values {
		result[value.AttributeID] = value.Value
	}
	return result
}

func TestAttributeService_SetAttributeValues(t *testing.T) {
	db, as, sparePartType, attributes := setupAttributeServiceTest(t)

	selections := []AttributeSelection{
		{AttributeID: attributes[0].ID, IsSelected: true, Value: "235"},
		{AttributeID: attributes[1].ID, IsSelected: false},
		{AttributeID: attributes[2].ID, IsSelected: true, Value: "Nokian"},
	}
	require.NoError(t, as.SetAttributeValues(sparePartType.ID, selections))

	active := activeValues(db, sparePartType.ID)
	assert.Equal(t, map[uint]string{
		attributes[0].ID: "235",
		attributes[2].ID: "Nokian",
	}, active)
}

func TestAttributeService_SetAttributeValues_ReplacesSet(t *testing.T) {
	db, as, sparePartType, attributes := setupAttributeServiceTest(t)

	first := []AttributeSelection{
		{AttributeID: attributes[0].ID, IsSelected: true, Value: "235"},
		{AttributeID: attributes[1].ID, IsSelected: true, Value: "12.5"},
	}
	require.NoError(t, as.SetAttributeValues(sparePartType.ID, first))

	// Повторная форма: один атрибут снят, у другого новое значение
	second := []AttributeSelection{
		{AttributeID: attributes[0].ID, IsSelected: true, Value: "245"},
		{AttributeID: attributes[1].ID, IsSelected: false},
		{AttributeID: attributes[2].ID, IsSelected: true, Value: "Nokian"},
	}
	require.NoError(t, as.SetAttributeValues(sparePartType.ID, second))

	active := activeValues(db, sparePartType.ID)
	assert.Equal(t, map[uint]string{
		attributes[0].ID: "245",
		attributes[2].ID: "Nokian",
	}, active)

	// Строка реактивируется, а не дублируется: на пару (атрибут, тип)
	// приходится не более одной строки независимо от числа сохранений
	var rows int64
	db.Model(&models.AttributeValue{}).
		Where("attribute_id = ? AND spare_part_type_id = ?", attributes[0].ID, sparePartType.ID).
		Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestAttributeService_SetAttributeValues_Idempotent(t *testing.T) {
	db, as, sparePartType, attributes := setupAttributeServiceTest(t)

	selections := []AttributeSelection{
		{AttributeID: attributes[0].ID, IsSelected: true, Value: "235"},
		{AttributeID: attributes[1].ID, IsSelected: true, Value: "12.5"},
	}
	require.NoError(t, as.SetAttributeValues(sparePartType.ID, selections))
	require.NoError(t, as.SetAttributeValues(sparePartType.ID, selections))
	require.NoError(t, as.SetAttributeValues(sparePartType.ID, selections))

	active := activeValues(db, sparePartType.ID)
	assert.Equal(t, map[uint]string{
		attributes[0].ID: "235",
		attributes[1].ID: "12.5",
	}, active)

	var rows int64
	db.Model(&models.AttributeValue{}).
		Where("spare_part_type_id = ?", sparePartType.ID).Count(&rows)
	assert.Equal(t, int64(2), rows)
}

func TestAttributeService_SetAttributeValues_ValidationAtomic(t *testing.T) {
	db, as, sparePartType, attributes := setupAttributeServiceTest(t)

	require.NoError(t, as.SetAttributeValues(sparePartType.ID, []AttributeSelection{
		{AttributeID: attributes[0].ID, IsSelected: true, Value: "235"},
	}))

	// Выбранный атрибут без значения делает невалидным весь пакет
	invalid := []AttributeSelection{
		{AttributeID: attributes[0].ID, IsSelected: true, Value: "245"},
		{AttributeID: attributes[1].ID, IsSelected: true, Value: "   "},
	}
	err := as.SetAttributeValues(sparePartType.ID, invalid)
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Указанный атрибут требует значения.", validationErr.Message)

	// Прежний активный набор остался нетронутым
	active := activeValues(db, sparePartType.ID)
	assert.Equal(t, map[uint]string{attributes[0].ID: "235"}, active)
}

func TestAttributeService_GetCatalog(t *testing.T) {
	db, as, sparePartType, attributes := setupAttributeServiceTest(t)

	require.NoError(t, as.SetAttributeValues(sparePartType.ID, []AttributeSelection{
		{AttributeID: attributes[1].ID, IsSelected: true, Value: "12.5"},
	}))

	catalog, err := as.GetCatalog(sparePartType.ID)
	require.NoError(t, err)
	require.Len(t, catalog, 3)

	byID := make(map[uint]AttributeCatalogEntry)
	for _, entry := range catalog {
		byID[entry.Attribute.ID] = entry
	}

	assert.False(t, byID[attributes[0].ID].IsSelected)
	assert.True(t, byID[attributes[1].ID].IsSelected)
	assert.Equal(t, "12.5", byID[attributes[1].ID].Value)
	assert.False(t, byID[attributes[2].ID].IsSelected)

	// Удаленный атрибут исчезает из каталога
	require.NoError(t, db.Model(&attributes[2]).Update("is_deleted", true).Error)
	catalog, err = as.GetCatalog(sparePartType.ID)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)

	// Для нового типа каталог возвращается без выбранных строк
	catalog, err = as.GetCatalog(0)
	require.NoError(t, err)
	for _, entry := range catalog {
		assert.False(t, entry.IsSelected)
	}
}
