package entity

import "time"

// CompanySettings configuración operativa por empresa.
type CompanySettings struct {
	SLAHours      int  `json:"slaHours"`
	AutoDispatch  bool `json:"autoDispatch"`
	RequirePhotos int  `json:"requirePhotos"`
	RequireVideos int  `json:"requireVideos"`
}

// DefaultCompanySettings valores con los que nace toda empresa.
func DefaultCompanySettings() CompanySettings {
	return CompanySettings{
		SLAHours:      24,
		AutoDispatch:  true,
		RequirePhotos: 3,
		RequireVideos: 1,
	}
}

// Company representa un tenant: dueña de membresías, clientes, órdenes, cobros y auditoría.
// Nunca se borra; se desactiva con IsActive=false.
type Company struct {
	ID        string
	Name      string
	CNPJ      string
	Address   string
	Phone     string
	Email     string
	Settings  CompanySettings
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
