package models

// Room represents a rentable room in the accommodation
type Room struct {
	BaseModel
	RoomNumber    int `gorm:"type:int;not null" json:"room_number"`
	MaxTenants    int `gorm:"type:int;not null" json:"max_tenants"`
	RentPerTenant int `gorm:"type:int;not null" json:"rent_per_tenant"`

	// Relations
	Tenants []User `gorm:"foreignKey:RoomID" json:"tenants,omitempty"`
}
