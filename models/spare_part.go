package models

import (
	"time"
)

// Статусы запчастей
const (
	SparePartStatusInstalled      = "INSTALLED"
	SparePartStatusInStock        = "IN_STOCK"
	SparePartStatusRepair         = "REPAIR"
	SparePartStatusAwaitingRepair = "AWAITING_REPAIR"
)

// SparePartStatusLabels отображаемые названия статусов запчастей
var SparePartStatusLabels = map[string]string{
	SparePartStatusInstalled:      "Установлено",
	SparePartStatusInStock:        "На складе",
	SparePartStatusRepair:         "В ремонте",
	SparePartStatusAwaitingRepair: "Ожидает ремонт",
}

// IsValidSparePartStatus проверяет, что статус входит в список допустимых
func IsValidSparePartStatus(status string) bool {
	_, ok := SparePartStatusLabels[status]
	return ok
}

// SparePartType представляет тип запчасти (шина, фильтр и т.д.)
type SparePartType struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null;type:varchar(255)" binding:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`

	// Связи
	SpareParts      []SparePart      `json:"spare_parts,omitempty" gorm:"foreignKey:SparePartTypeID"`
	Images          []SparePartImage `json:"images,omitempty" gorm:"foreignKey:SparePartTypeID"`
	AttributeValues []AttributeValue `json:"attribute_values,omitempty" gorm:"foreignKey:SparePartTypeID"`
}

// TableName задает имя таблицы для модели SparePartType
func (SparePartType) TableName() string {
	return "spare_part_types"
}

// SparePart представляет конкретную запчасть, связанную с техникой
type SparePart struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`

	// Тип запчасти
	SparePartTypeID uint           `json:"spare_part_type_id" gorm:"not null;index"`
	SparePartType   *SparePartType `json:"spare_part_type,omitempty" gorm:"foreignKey:SparePartTypeID"`

	// Техника, на которой установлена запчасть
	VehicleID uint     `json:"vehicle_id" gorm:"not null;index"`
	Vehicle   *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`

	// Статус: INSTALLED, IN_STOCK, REPAIR, AWAITING_REPAIR
	Status string `json:"status" gorm:"default:'INSTALLED';type:varchar(20)"`

	// История изменений
	ChangeLogs []SparePartLog `json:"change_logs,omitempty" gorm:"foreignKey:SparePartID"`
}

// TableName задает имя таблицы для модели SparePart
func (SparePart) TableName() string {
	return "spare_parts"
}

// StatusLabel возвращает отображаемое название статуса
func (s *SparePart) StatusLabel() string {
	if label, ok := SparePartStatusLabels[s.Status]; ok {
		return label
	}
	return s.Status
}

// SparePartImage представляет фотографию типа запчасти
type SparePartImage struct {
	ID              uint           `json:"id" gorm:"primarykey"`
	File            string         `json:"file" gorm:"not null;type:varchar(255)"` // Путь к файлу
	SparePartTypeID uint           `json:"spare_part_type_id" gorm:"not null;index"`
	SparePartType   *SparePartType `json:"spare_part_type,omitempty" gorm:"foreignKey:SparePartTypeID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	IsDeleted       bool           `json:"is_deleted" gorm:"not null;default:false;index"`
}

// TableName задает имя таблицы для модели SparePartImage
func (SparePartImage) TableName() string {
	return "spare_part_images"
}

// SparePartLog представляет запись истории изменений запчасти.
// Записи создаются один раз и никогда не редактируются; единственное
// изменение — пометка об удалении при каскадном удалении родителя.
type SparePartLog struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	SparePartID uint       `json:"spare_part_id" gorm:"not null;index"`
	SparePart   *SparePart `json:"spare_part,omitempty" gorm:"foreignKey:SparePartID"`
	Timestamp   time.Time  `json:"timestamp" gorm:"autoCreateTime;index"` // Дата изменения
	Message     string     `json:"message" gorm:"not null;type:text"`     // Комментарий об изменении
	IsDeleted   bool       `json:"is_deleted" gorm:"not null;default:false;index"`
}

// TableName задает имя таблицы для модели SparePartLog
func (SparePartLog) TableName() string {
	return "spare_part_logs"
}
