package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Статусы техники
const (
	VehicleStatusInOperation = "IN_OP"
	VehicleStatusIdle        = "IDLE"
	VehicleStatusRepair      = "REPAIR"
)

// VehicleStatusLabels отображаемые названия статусов техники
var VehicleStatusLabels = map[string]string{
	VehicleStatusInOperation: "В работе",
	VehicleStatusIdle:        "Простой",
	VehicleStatusRepair:      "Ремонт",
}

// IsValidVehicleStatus проверяет, что статус входит в список допустимых
func IsValidVehicleStatus(status string) bool {
	_, ok := VehicleStatusLabels[status]
	return ok
}

// VehicleType представляет тип техники (трактор, самосвал и т.д.)
type VehicleType struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"not null;type:varchar(100)" binding:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`

	// Связи
	Vehicles []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:TypeID"`
}

// TableName задает имя таблицы для модели VehicleType
func (VehicleType) TableName() string {
	return "vehicle_types"
}

// Vehicle представляет единицу техники автопарка
type Vehicle struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`

	// Основная информация
	RegNumber    string    `json:"reg_number" gorm:"not null;type:varchar(20)"` // Регистрационный номер
	Brand        string    `json:"brand" gorm:"not null;type:varchar(50)"`      // Бренд
	DatePurchase time.Time `json:"date_purchase" gorm:"type:date"`              // Дата покупки

	// Тип техники
	TypeID uint         `json:"type_id" gorm:"not null;index"`
	Type   *VehicleType `json:"type,omitempty" gorm:"foreignKey:TypeID"`

	// Эксплуатация
	Mileage         decimal.Decimal `json:"mileage" gorm:"type:decimal(10,2)"`                        // Пробег
	OperationStatus string          `json:"operation_status" gorm:"default:'IN_OP';type:varchar(20)"` // IN_OP, IDLE, REPAIR

	// Связи
	Images     []VehicleImage `json:"images,omitempty" gorm:"foreignKey:VehicleID"`
	SpareParts []SparePart    `json:"spare_parts,omitempty" gorm:"foreignKey:VehicleID"`
}

// TableName задает имя таблицы для модели Vehicle
func (Vehicle) TableName() string {
	return "vehicles"
}

// DisplayName возвращает отображаемое название техники
func (v *Vehicle) DisplayName() string {
	return v.Brand + " (" + v.RegNumber + ")"
}

// StatusLabel возвращает отображаемое название статуса
func (v *Vehicle) StatusLabel() string {
	if label, ok := VehicleStatusLabels[v.OperationStatus]; ok {
		return label
	}
	return v.OperationStatus
}

// VehicleImage представляет фотографию техники
type VehicleImage struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	File      string    `json:"file" gorm:"not null;type:varchar(255)"` // Путь к файлу
	VehicleID uint      `json:"vehicle_id" gorm:"not null;index"`
	Vehicle   *Vehicle  `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`
}

// TableName задает имя таблицы для модели VehicleImage
func (VehicleImage) TableName() string {
	return "vehicle_images"
}
