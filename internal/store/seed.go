package store

import "tqm/internal/models"

// Seed data shown on first run, before any records are saved.

// SeedProducts returns the initial product collection.
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "محرك كهربائي X500", Manufacturer: "سيمنز الألمانية", Specs: "5000 RPM, 220V, عزل حراري", Defects: "", Status: models.StatusApproved, Image: "https://images.unsplash.com/photo-1562259920-47afc305f369?w=800&auto=format&fit=crop"},
		{ID: "2", Name: "لوحة تحكم صناعية", Manufacturer: "شنايدر إلكتريك", Specs: "IP65, شاشة لمس 7 بوصة", Defects: "خدش في الإطار الخارجي", Status: models.StatusRejected, Image: "https://images.unsplash.com/photo-1555664424-778a69032054?w=800&auto=format&fit=crop"},
		{ID: "3", Name: "مستشعر حرارة دقيق", Manufacturer: "بوش الصناعية", Specs: "نطاق -50 إلى 500 درجة", Defects: "", Status: models.StatusPending, Image: "https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=800&auto=format&fit=crop"},
		{ID: "4", Name: "صمام هيدروليكي", Manufacturer: "ريكسروث", Specs: "ضغط عالي 300 بار", Defects: "", Status: models.StatusApproved, Image: "https://images.unsplash.com/photo-1532187643603-ba119ca4109e?w=800&auto=format&fit=crop"},
	}
}

// SeedTeam returns the initial team roster.
func SeedTeam() []models.Employee {
	return []models.Employee{
		{ID: "1", Name: "محمد علي", EmployeeCode: "1001", Role: "مدير الجودة", Department: models.DeptManagement, JoinedDate: "2023-01-15", Email: "m.ali@tqm-sys.com", Phone: "+966 50 123 4567"},
		{ID: "2", Name: "سارة خالد", EmployeeCode: "2050", Role: "مراقب جودة أول", Department: models.DeptQC, JoinedDate: "2023-03-10", Email: "s.khaled@tqm-sys.com", Phone: "+966 55 987 6543"},
		{ID: "3", Name: "أحمد حسن", EmployeeCode: "3012", Role: "أخصائي توكيد جودة", Department: models.DeptQA, JoinedDate: "2023-06-20", Email: "a.hassan@tqm-sys.com", Phone: "+966 54 111 2222"},
	}
}

// SeedDocuments returns the initial document archive.
func SeedDocuments() []models.DocumentFile {
	return []models.DocumentFile{
		{ID: "1", Name: "دليل معايير ISO 9001", Type: "pdf", Size: "2.5 MB", Date: "2024-01-10", URL: "#"},
		{ID: "2", Name: "تقرير التدقيق الداخلي Q1", Type: "excel", Size: "1.1 MB", Date: "2024-04-05", URL: "#"},
	}
}

// SeedKPIData returns the initial (empty) monthly report list.
func SeedKPIData() []models.KPIData {
	return []models.KPIData{}
}

// SeedCompany returns the initial company profile.
func SeedCompany() models.CompanySettings {
	return models.CompanySettings{
		Name:    "الشركة المتطورة للصناعة",
		Slogan:  "الجودة أولاً",
		Address: "الرياض، المملكة العربية السعودية",
		Email:   "info@factory.com",
	}
}
