package store

import (
	"encoding/json"
	"log"

	"tqm/internal/models"
	"tqm/internal/storage"
)

// Load populates the collections from durable storage, migrating from
// the legacy backend the first time the sqlite backend is seen empty.
// Any unexpected failure degrades to seed data; the app always becomes
// usable, and readiness is signaled exactly once on every path.
func (s *Store) Load() {
	s.mu.Lock()
	defer func() {
		s.ready = true
		s.mu.Unlock()
	}()

	if err := s.load(); err != nil {
		log.Printf("store: load failed, falling back to seed data: %v", err)
		s.applySeeds()
	}
}

func (s *Store) load() error {
	_, found, err := s.backend.Read(s.keys.Products)
	if err != nil {
		return err
	}

	if !found && s.legacy != nil {
		if _, legacyFound, _ := s.legacy.Read(s.keys.Products); legacyFound {
			s.migrateLegacy()
			return nil
		}
	}

	s.loadFrom(s.backend)
	return nil
}

// migrateLegacy copies the five keys from the legacy backend into the
// sqlite backend, exactly once. Each key decodes independently: one
// corrupt or missing key degrades to its seed without aborting the
// rest. Legacy copies are left in place as a fallback audit trail.
func (s *Store) migrateLegacy() {
	log.Printf("store: migrating legacy data to sqlite backend")
	s.loadFrom(s.legacy)

	migrated := map[string]interface{}{
		s.keys.Products:  s.products,
		s.keys.Team:      s.team,
		s.keys.Documents: s.documents,
		s.keys.KPIData:   s.kpiList(),
		s.keys.Company:   s.company,
	}
	for key, v := range migrated {
		data, err := json.Marshal(v)
		if err != nil {
			log.Printf("store: migrate encode %s: %v", key, err)
			continue
		}
		if err := s.backend.Write(key, data); err != nil {
			log.Printf("store: migrate write %s: %v", key, err)
		}
	}
}

// loadFrom populates every collection from one backend, defaulting each
// key to its seed when absent or corrupt.
func (s *Store) loadFrom(b storage.Backend) {
	var products []models.Product
	if decodeKey(b, s.keys.Products, &products) {
		s.products = products
	} else {
		s.products = SeedProducts()
	}

	var team []models.Employee
	if decodeKey(b, s.keys.Team, &team) {
		s.team = team
	} else {
		s.team = SeedTeam()
	}

	var documents []models.DocumentFile
	if decodeKey(b, s.keys.Documents, &documents) {
		s.documents = documents
	} else {
		s.documents = SeedDocuments()
	}

	var kpi []models.KPIData
	if decodeKey(b, s.keys.KPIData, &kpi) {
		s.setKPIList(kpi)
	} else {
		s.setKPIList(SeedKPIData())
	}

	var company models.CompanySettings
	if decodeKey(b, s.keys.Company, &company) {
		s.company = company
	} else {
		s.company = SeedCompany()
	}
}

func decodeKey(b storage.Backend, key string, v interface{}) bool {
	data, found, err := b.Read(key)
	if err != nil {
		log.Printf("store: read %s: %v", key, err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("store: decode %s: %v", key, err)
		return false
	}
	return true
}
