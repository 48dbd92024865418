// Package store holds the five live collections and auto-persists every
// mutation through a storage backend. Handlers mutate only through the
// entry points here; nothing else touches storage.
package store

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"tqm/internal/models"
	"tqm/internal/storage"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidBundle is returned for import bundles missing the
	// minimally required products and team collections.
	ErrInvalidBundle = errors.New("invalid bundle: products and team are required")
)

// Known view identifiers. DefaultView is the screen shown after login,
// logout and reset.
const DefaultView = "dashboard"

var validViews = map[string]bool{
	"dashboard": true,
	"products":  true,
	"team":      true,
	"kpi":       true,
	"documents": true,
	"database":  true,
	"settings":  true,
	"about":     true,
}

// Keys names the five persistence entries.
type Keys struct {
	Products  string
	Team      string
	Documents string
	KPIData   string
	Company   string
}

// KeysWithPrefix derives the five key names from a namespace prefix,
// e.g. "tqm" -> "tqm_products".
func KeysWithPrefix(prefix string) Keys {
	return Keys{
		Products:  prefix + "_products",
		Team:      prefix + "_team",
		Documents: prefix + "_documents",
		KPIData:   prefix + "_kpiData",
		Company:   prefix + "_company",
	}
}

func (k Keys) all() []string {
	return []string{k.Products, k.Team, k.Documents, k.KPIData, k.Company}
}

type kpiKey struct {
	month string
	year  string
}

// ChangeFunc receives a collection name, an action (create/update/
// delete/replace) and the affected record id after every mutation.
type ChangeFunc func(collection, action string, id any)

// Store owns the five collections. All access goes through its mutex;
// persistence is suppressed until Load has signaled readiness so a
// half-initialized render can never clobber freshly migrated data.
type Store struct {
	mu       sync.RWMutex
	backend  storage.Backend
	legacy   storage.Backend
	keys     Keys
	ready    bool
	view     string
	onChange ChangeFunc

	products  []models.Product
	team      []models.Employee
	documents []models.DocumentFile
	kpi       map[kpiKey]models.KPIData
	kpiOrder  []kpiKey
	company   models.CompanySettings
}

// New creates a Store persisting through backend, with legacy available
// for one-time migration. Call Load before serving.
func New(backend, legacy storage.Backend, keys Keys) *Store {
	return &Store{
		backend: backend,
		legacy:  legacy,
		keys:    keys,
		view:    DefaultView,
		kpi:     make(map[kpiKey]models.KPIData),
	}
}

// OnChange registers a hook invoked after each successful mutation.
func (s *Store) OnChange(fn ChangeFunc) {
	s.onChange = fn
}

func (s *Store) notify(collection, action string, id any) {
	if s.onChange != nil {
		s.onChange(collection, action, id)
	}
}

// persist writes one collection's encoded value. Capacity overflow and
// any other write failure are logged and swallowed: the in-memory
// collection stays correct, only that write is skipped.
func (s *Store) persist(key string, v interface{}) {
	if !s.ready {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("store: encode %s: %v", key, err)
		return
	}
	if err := s.backend.Write(key, data); err != nil {
		log.Printf("store: persist %s: %v", key, err)
	}
}

// Products returns a copy of the product collection.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// AddProduct appends a product, generating an id when absent.
func (s *Store) AddProduct(p models.Product) models.Product {
	s.mu.Lock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.StatusPending
	}
	s.products = append(s.products, p)
	s.persist(s.keys.Products, s.products)
	s.mu.Unlock()
	s.notify("products", "create", p.ID)
	return p
}

// UpdateProduct replaces the product with the given id.
func (s *Store) UpdateProduct(id string, p models.Product) error {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	p.ID = id
	s.products[idx] = p
	s.persist(s.keys.Products, s.products)
	s.mu.Unlock()
	s.notify("products", "update", id)
	return nil
}

// DeleteProduct removes the product with the given id.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	s.persist(s.keys.Products, s.products)
	s.mu.Unlock()
	s.notify("products", "delete", id)
	return nil
}

// Team returns a copy of the team roster.
func (s *Store) Team() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Employee, len(s.team))
	copy(out, s.team)
	return out
}

// AddEmployee appends an employee, generating an id when absent.
func (s *Store) AddEmployee(e models.Employee) models.Employee {
	s.mu.Lock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.team = append(s.team, e)
	s.persist(s.keys.Team, s.team)
	s.mu.Unlock()
	s.notify("team", "create", e.ID)
	return e
}

// UpdateEmployee replaces the employee record wholesale; no sub-field
// diffing is preserved.
func (s *Store) UpdateEmployee(id string, e models.Employee) error {
	s.mu.Lock()
	idx := -1
	for i := range s.team {
		if s.team[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	e.ID = id
	s.team[idx] = e
	s.persist(s.keys.Team, s.team)
	s.mu.Unlock()
	s.notify("team", "update", id)
	return nil
}

// DeleteEmployee removes the employee with the given id.
func (s *Store) DeleteEmployee(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.team {
		if s.team[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.team = append(s.team[:idx], s.team[idx+1:]...)
	s.persist(s.keys.Team, s.team)
	s.mu.Unlock()
	s.notify("team", "delete", id)
	return nil
}

// Documents returns a copy of the document archive.
func (s *Store) Documents() []models.DocumentFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.DocumentFile, len(s.documents))
	copy(out, s.documents)
	return out
}

// AddDocument appends an archive entry, generating an id when absent.
func (s *Store) AddDocument(d models.DocumentFile) models.DocumentFile {
	s.mu.Lock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	s.documents = append(s.documents, d)
	s.persist(s.keys.Documents, s.documents)
	s.mu.Unlock()
	s.notify("documents", "create", d.ID)
	return d
}

// DeleteDocument removes the archive entry with the given id.
func (s *Store) DeleteDocument(id string) error {
	s.mu.Lock()
	idx := -1
	for i := range s.documents {
		if s.documents[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.documents = append(s.documents[:idx], s.documents[idx+1:]...)
	s.persist(s.keys.Documents, s.documents)
	s.mu.Unlock()
	s.notify("documents", "delete", id)
	return nil
}

// KPIList returns the monthly records in insertion order. A record
// re-submitted for an existing (month, year) pair moves to the end.
func (s *Store) KPIList() []models.KPIData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kpiList()
}

func (s *Store) kpiList() []models.KPIData {
	out := make([]models.KPIData, 0, len(s.kpiOrder))
	for _, k := range s.kpiOrder {
		out = append(out, s.kpi[k])
	}
	return out
}

// UpsertKPI inserts or replaces the record for (month, year). The
// collection never holds two records for the same pair.
func (s *Store) UpsertKPI(d models.KPIData) {
	key := kpiKey{month: d.Month, year: d.Year}
	s.mu.Lock()
	if _, exists := s.kpi[key]; exists {
		for i, k := range s.kpiOrder {
			if k == key {
				s.kpiOrder = append(s.kpiOrder[:i], s.kpiOrder[i+1:]...)
				break
			}
		}
	}
	s.kpi[key] = d
	s.kpiOrder = append(s.kpiOrder, key)
	s.persist(s.keys.KPIData, s.kpiList())
	s.mu.Unlock()
	s.notify("kpiData", "update", d.Month+" "+d.Year)
}

func (s *Store) setKPIList(list []models.KPIData) {
	s.kpi = make(map[kpiKey]models.KPIData, len(list))
	s.kpiOrder = s.kpiOrder[:0]
	for _, d := range list {
		key := kpiKey{month: d.Month, year: d.Year}
		if _, exists := s.kpi[key]; !exists {
			s.kpiOrder = append(s.kpiOrder, key)
		}
		s.kpi[key] = d
	}
}

// Company returns the singleton company profile.
func (s *Store) Company() models.CompanySettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

// SetCompany replaces the company profile.
func (s *Store) SetCompany(c models.CompanySettings) {
	s.mu.Lock()
	s.company = c
	s.persist(s.keys.Company, s.company)
	s.mu.Unlock()
	s.notify("company", "update", nil)
}

// Snapshot returns the full export bundle.
func (s *Store) Snapshot() models.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	company := s.company
	return models.Bundle{
		Products:        append([]models.Product(nil), s.products...),
		Team:            append([]models.Employee(nil), s.team...),
		Documents:       append([]models.DocumentFile(nil), s.documents...),
		KPIData:         s.kpiList(),
		CompanySettings: &company,
	}
}

// Import wholesale-replaces each collection present in the bundle and
// leaves omitted ones untouched. Bundles missing products or team are
// rejected with no partial mutation.
func (s *Store) Import(b models.Bundle) error {
	if b.Products == nil || b.Team == nil {
		return ErrInvalidBundle
	}
	s.mu.Lock()
	s.products = b.Products
	s.persist(s.keys.Products, s.products)
	s.team = b.Team
	s.persist(s.keys.Team, s.team)
	if b.Documents != nil {
		s.documents = b.Documents
		s.persist(s.keys.Documents, s.documents)
	}
	if b.KPIData != nil {
		s.setKPIList(b.KPIData)
		s.persist(s.keys.KPIData, s.kpiList())
	}
	if b.CompanySettings != nil {
		s.company = *b.CompanySettings
		s.persist(s.keys.Company, s.company)
	}
	s.mu.Unlock()
	s.notify("database", "replace", nil)
	return nil
}

// Reset restores the five seed collections, clears both backends and
// returns the active view to the default. It then persists the seeds,
// so a reload reproduces the same state.
func (s *Store) Reset() {
	s.mu.Lock()
	if err := s.backend.Clear(); err != nil {
		log.Printf("store: clear backend: %v", err)
	}
	if s.legacy != nil {
		if err := s.legacy.Clear(); err != nil {
			log.Printf("store: clear legacy backend: %v", err)
		}
	}
	s.applySeeds()
	s.persistAll()
	s.view = DefaultView
	s.mu.Unlock()
	s.notify("database", "reset", nil)
}

func (s *Store) applySeeds() {
	s.products = SeedProducts()
	s.team = SeedTeam()
	s.documents = SeedDocuments()
	s.setKPIList(SeedKPIData())
	s.company = SeedCompany()
}

func (s *Store) persistAll() {
	s.persist(s.keys.Products, s.products)
	s.persist(s.keys.Team, s.team)
	s.persist(s.keys.Documents, s.documents)
	s.persist(s.keys.KPIData, s.kpiList())
	s.persist(s.keys.Company, s.company)
}

// View returns the active view identifier.
func (s *Store) View() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetView switches the active view. Unknown identifiers fall back to
// the default.
func (s *Store) SetView(view string) string {
	if !validViews[view] {
		view = DefaultView
	}
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
	s.notify("view", "update", view)
	return view
}

// ValidView reports whether the identifier names a known screen.
func ValidView(view string) bool {
	return validViews[view]
}

// Usage reports bytes used vs capacity for the active backend, computed
// independently of write outcomes.
func (s *Store) Usage() (models.StorageUsage, error) {
	used, err := s.backend.Usage()
	if err != nil {
		return models.StorageUsage{}, err
	}
	capacity := s.backend.Capacity()
	percent := 0
	if capacity > 0 {
		percent = int(used * 100 / capacity)
		if percent > 100 {
			percent = 100
		}
	}
	return models.StorageUsage{Used: used, Capacity: capacity, Percent: percent}, nil
}
