package models

import (
	"time"
)

// Типы данных атрибутов
const (
	AttributeDataTypeString = "str"
	AttributeDataTypeInt    = "int"
	AttributeDataTypeFloat  = "float"
)

// IsValidAttributeDataType проверяет, что тип данных входит в список допустимых
func IsValidAttributeDataType(dataType string) bool {
	switch dataType {
	case AttributeDataTypeString, AttributeDataTypeInt, AttributeDataTypeFloat:
		return true
	}
	return false
}

// Attribute представляет атрибут из общего каталога (диаметр, вес и т.д.).
// Каталог не привязан к конкретному типу запчасти: любой атрибут можно
// связать с любым типом через AttributeValue.
type Attribute struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null;type:varchar(255)" binding:"required"` // Название атрибута
	Unit      string    `json:"unit" gorm:"type:varchar(50)"`                              // Единицы измерения
	DataType  string    `json:"data_type" gorm:"not null;type:varchar(50)"`                // str, int, float
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`

	// Связи
	Values []AttributeValue `json:"values,omitempty" gorm:"foreignKey:AttributeID"`
}

// TableName задает имя таблицы для модели Attribute
func (Attribute) TableName() string {
	return "attributes"
}

// AttributeValue представляет значение атрибута для типа запчасти.
// Для каждой пары (атрибут, тип запчасти) существует не более одной строки:
// при повторном сохранении формы строка помечается удаленной и затем
// реактивируется с новым значением, а не создается заново.
type AttributeValue struct {
	ID              uint           `json:"id" gorm:"primarykey"`
	AttributeID     uint           `json:"attribute_id" gorm:"not null;uniqueIndex:idx_attribute_spare_part_type"`
	Attribute       *Attribute     `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
	SparePartTypeID uint           `json:"spare_part_type_id" gorm:"not null;uniqueIndex:idx_attribute_spare_part_type"`
	SparePartType   *SparePartType `json:"spare_part_type,omitempty" gorm:"foreignKey:SparePartTypeID"`
	Value           string         `json:"value" gorm:"not null;type:varchar(255)"` // Значение
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	IsDeleted       bool           `json:"is_deleted" gorm:"not null;default:false;index"`
}

// TableName задает имя таблицы для модели AttributeValue
func (AttributeValue) TableName() string {
	return "attribute_values"
}
