package models

// APIResponse is the standard JSON envelope for all API responses.
type APIResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total int `json:"total,omitempty"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// Product is a tracked manufactured item and its inspection status.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Specs        string `json:"specs"`
	Defects      string `json:"defects"`
	Status       string `json:"status"`
	Image        string `json:"image"`
}

// Product inspection statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Employee is a member of the quality team roster.
type Employee struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employeeCode"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	JoinedDate   string `json:"joinedDate"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Image        string `json:"image,omitempty"`
	StampData    string `json:"stampData,omitempty"`
}

// Employee departments.
const (
	DeptManagement = "management"
	DeptQC         = "qc"
	DeptQA         = "qa"
)

// KPIData is one monthly quality report. Identity is the (month, year)
// pair; there is at most one record per pair.
type KPIData struct {
	Month                   string  `json:"month"`
	Year                    string  `json:"year"`
	QualityRate             float64 `json:"qualityRate"`
	Defects                 int     `json:"defects"`
	ReservedBlowPieces      int     `json:"reservedBlowPieces"`
	ReservedBlowWeight      float64 `json:"reservedBlowWeight"`
	ReservedInjectionPieces int     `json:"reservedInjectionPieces"`
	ReservedInjectionWeight float64 `json:"reservedInjectionWeight"`
	ScrappedPieces          float64 `json:"scrappedPieces"`
	ScrappedWeight          float64 `json:"scrappedWeight"`
	ScrappedBlow            int     `json:"scrappedBlow"`
	ScrappedInjection       int     `json:"scrappedInjection"`
	InternalScrapPpm        float64 `json:"internalScrapPpm"`
	ExternalScrapPpm        float64 `json:"externalScrapPpm"`
	NcrShift1               int     `json:"ncrShift1"`
	NcrShift2               int     `json:"ncrShift2"`
	NcrShift3               int     `json:"ncrShift3"`
	TotalSupplied           int     `json:"totalSupplied"`
	TotalReturned           int     `json:"totalReturned"`
	TotalComplaints         int     `json:"totalComplaints"`
}

// DocumentFile is an entry in the document archive.
type DocumentFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
	Date string `json:"date"`
	URL  string `json:"url"`
}

// CompanySettings is the singleton company profile record.
type CompanySettings struct {
	Name               string `json:"name"`
	Slogan             string `json:"slogan"`
	Address            string `json:"address"`
	Logo               string `json:"logo"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Website            string `json:"website"`
	RegistrationNumber string `json:"registrationNumber"`
	Certificates       string `json:"certificates"`
}

// Bundle is the snapshot shape used for database export and import.
// Nil slices mean the key was absent from an imported document, which
// is how partial imports leave collections untouched.
type Bundle struct {
	Products        []Product        `json:"products"`
	Team            []Employee       `json:"team"`
	Documents       []DocumentFile   `json:"documents"`
	KPIData         []KPIData        `json:"kpiData"`
	CompanySettings *CompanySettings `json:"companySettings"`
}

// StorageUsage is the bytes-used readout for the database screen. It is
// computed by scanning stored key sizes, never from write outcomes.
type StorageUsage struct {
	Used     int64 `json:"used"`
	Capacity int64 `json:"capacity"`
	Percent  int   `json:"percent"`
}
