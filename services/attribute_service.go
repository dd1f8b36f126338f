package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"backend_fleet/models"
)

// AttributeSelection описывает один элемент формы привязки атрибутов:
// атрибут из каталога, флаг выбора и введенное значение
type AttributeSelection struct {
	AttributeID uint   `json:"attribute_id"`
	IsSelected  bool   `json:"is_selected"`
	Value       string `json:"value"`
}

// AttributeCatalogEntry описывает строку каталога атрибутов для типа
// запчасти: атрибут целиком плюс текущее активное значение, если оно есть
type AttributeCatalogEntry struct {
	Attribute  models.Attribute `json:"attribute"`
	IsSelected bool             `json:"is_selected"`
	Value      string           `json:"value"`
}

// AttributeService управляет привязкой значений атрибутов к типам запчастей.
// Активный набор значений типа всегда в точности соответствует последней
// сохраненной форме: перед записью весь прежний набор помечается удаленным.
type AttributeService struct {
	DB *gorm.DB
}

// NewAttributeService создает новый экземпляр AttributeService
func NewAttributeService(db *gorm.DB) *AttributeService {
	return &AttributeService{DB: db}
}

// GetCatalog возвращает снимок полного каталога активных атрибутов вместе
// с текущими значениями для указанного типа запчасти. Для нового типа
// (sparePartTypeID == 0) все строки возвращаются невыбранными.
func (as *AttributeService) GetCatalog(sparePartTypeID uint) ([]AttributeCatalogEntry, error) {
	var attributes []models.Attribute
	if err := as.DB.Where("is_deleted = ?", false).Order("id").Find(&attributes).Error; err != nil {
		return nil, fmt.Errorf("ошибка при получении каталога атрибутов: %w", err)
	}

	existing := make(map[uint]models.AttributeValue)
	if sparePartTypeID != 0 {
		var values []models.AttributeValue
		if err := as.DB.Where("spare_part_type_id = ? AND is_deleted = ?", sparePartTypeID, false).
			Find(&values).Error; err != nil {
			return nil, fmt.Errorf("ошибка при получении значений атрибутов: %w", err)
		}
		for _, value := range values {
			existing[value.AttributeID] = value
		}
	}

	entries := make([]AttributeCatalogEntry, 0, len(attributes))
	for _, attribute := range attributes {
		entry := AttributeCatalogEntry{Attribute: attribute}
		if value, ok := existing[attribute.ID]; ok {
			entry.IsSelected = true
			entry.Value = value.Value
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// ValidateSelections проверяет весь пакет выбранных атрибутов до записи.
// Выбранный атрибут с пустым значением делает невалидным весь пакет.
func (as *AttributeService) ValidateSelections(selections []AttributeSelection) error {
	for _, selection := range selections {
		if selection.IsSelected && strings.TrimSpace(selection.Value) == "" {
			return NewValidationError("value", "Указанный атрибут требует значения.")
		}
	}
	return nil
}

// SetAttributeValues атомарно заменяет активный набор значений атрибутов
// типа запчасти на выбранные элементы пакета. Прежние значения помечаются
// удаленными; для выбранных атрибутов строка либо создается, либо
// реактивируется с новым значением. Повторное применение того же пакета
// идемпотентно.
func (as *AttributeService) SetAttributeValues(sparePartTypeID uint, selections []AttributeSelection) error {
	if err := as.ValidateSelections(selections); err != nil {
		return err
	}

	return as.DB.Transaction(func(tx *gorm.DB) error {
		return as.ReplaceValues(tx, sparePartTypeID, selections)
	})
}

// ReplaceValues выполняет замену набора значений в рамках переданной
// транзакции. Валидацию пакета выполняет вызывающая сторона.
func (as *AttributeService) ReplaceValues(tx *gorm.DB, sparePartTypeID uint, selections []AttributeSelection) error {
	// Сбрасываем весь набор целиком: активными останутся только строки,
	// выбранные в текущем пакете
	if err := tx.Model(&models.AttributeValue{}).
		Where("spare_part_type_id = ?", sparePartTypeID).
		Update("is_deleted", true).Error; err != nil {
		return fmt.Errorf("ошибка при сбросе значений атрибутов: %w", err)
	}

	for _, selection := range selections {
		if !selection.IsSelected {
			continue
		}

		var value models.AttributeValue
		err := tx.Where("attribute_id = ? AND spare_part_type_id = ?",
			selection.AttributeID, sparePartTypeID).First(&value).Error
		switch {
		case err == nil:
			if err := tx.Model(&value).Updates(map[string]interface{}{
				"value":      selection.Value,
				"is_deleted": false,
			}).Error; err != nil {
				return fmt.Errorf("ошибка при обновлении значения атрибута: %w", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			value = models.AttributeValue{
				AttributeID:     selection.AttributeID,
				SparePartTypeID: sparePartTypeID,
				Value:           selection.Value,
			}
			if err := tx.Create(&value).Error; err != nil {
				return fmt.Errorf("ошибка при создании значения атрибута: %w", err)
			}
		default:
			return fmt.Errorf("ошибка при поиске значения атрибута: %w", err)
		}
	}

	return nil
}
