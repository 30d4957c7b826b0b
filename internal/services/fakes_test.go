package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"event-rental/internal/entities"
	"event-rental/internal/graph"
	"event-rental/internal/repositories"
	apperrors "event-rental/pkg/errors"
	"event-rental/pkg/types"
	"event-rental/pkg/validation"
)

// memStore backs every fake repository. Unique and foreign key constraints
// of the real schema are emulated so services see the same errors.
type memStore struct {
	mu  sync.Mutex
	seq uint64

	venues         map[uint64]entities.Venue
	customers      map[uint64]entities.Customer
	employees      map[uint64]entities.Employee
	taxonomy       map[entities.TaxonomyKind]map[uint64]entities.TaxonomyItem
	equipment      map[uint64]entities.Equipment
	events         map[uint64]entities.Event
	crew           map[uint64][]uint64
	eventEquipment map[uint64][]uint64
	attachments    map[entities.EventAttachmentKind]map[uint64]entities.EventAttachment
}

func newMemStore() *memStore {
	s := &memStore{
		venues:         map[uint64]entities.Venue{},
		customers:      map[uint64]entities.Customer{},
		employees:      map[uint64]entities.Employee{},
		taxonomy:       map[entities.TaxonomyKind]map[uint64]entities.TaxonomyItem{},
		equipment:      map[uint64]entities.Equipment{},
		events:         map[uint64]entities.Event{},
		crew:           map[uint64][]uint64{},
		eventEquipment: map[uint64][]uint64{},
		attachments:    map[entities.EventAttachmentKind]map[uint64]entities.EventAttachment{},
	}
	for _, k := range entities.TaxonomyKinds {
		s.taxonomy[k] = map[uint64]entities.TaxonomyItem{}
	}
	s.attachments[entities.EventPhotoKind] = map[uint64]entities.EventAttachment{}
	s.attachments[entities.EventFileKind] = map[uint64]entities.EventAttachment{}
	return s
}

func (s *memStore) nextID() uint64 {
	s.seq++
	return s.seq
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyLinks(m map[uint64][]uint64) map[uint64][]uint64 {
	out := make(map[uint64][]uint64, len(m))
	for k, v := range m {
		out[k] = append([]uint64(nil), v...)
	}
	return out
}

// snapshot must be called with mu held.
func (s *memStore) snapshot() *memStore {
	c := &memStore{
		seq:            s.seq,
		venues:         copyMap(s.venues),
		customers:      copyMap(s.customers),
		employees:      copyMap(s.employees),
		taxonomy:       map[entities.TaxonomyKind]map[uint64]entities.TaxonomyItem{},
		equipment:      copyMap(s.equipment),
		events:         copyMap(s.events),
		crew:           copyLinks(s.crew),
		eventEquipment: copyLinks(s.eventEquipment),
		attachments:    map[entities.EventAttachmentKind]map[uint64]entities.EventAttachment{},
	}
	for k, v := range s.taxonomy {
		c.taxonomy[k] = copyMap(v)
	}
	for k, v := range s.attachments {
		c.attachments[k] = copyMap(v)
	}
	return c
}

// restore must be called with mu held. seq is kept, like a real sequence.
func (s *memStore) restore(c *memStore) {
	s.venues, s.customers, s.employees = c.venues, c.customers, c.employees
	s.taxonomy, s.equipment, s.events = c.taxonomy, c.equipment, c.events
	s.crew, s.eventEquipment, s.attachments = c.crew, c.eventEquipment, c.attachments
}

// pageOf orders newest first and applies limit and offset.
func pageOf[T any](items map[uint64]T, filter types.Filter) ([]*T, uint64) {
	ids := make([]uint64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if filter.Offset > 0 {
		if filter.Offset >= len(ids) {
			ids = nil
		} else {
			ids = ids[filter.Offset:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(ids) {
		ids = ids[:filter.Limit]
	}
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		v := items[id]
		out = append(out, &v)
	}
	return out, uint64(len(items))
}

func contains(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// fakeTxManager runs fn without a real transaction and rolls the store back
// when fn fails.
type fakeTxManager struct {
	store *memStore
	runs  int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.store.mu.Lock()
	snap := m.store.snapshot()
	m.runs++
	m.store.mu.Unlock()

	if err := fn(nil); err != nil {
		m.store.mu.Lock()
		m.store.restore(snap)
		m.store.mu.Unlock()
		return err
	}
	return nil
}

type fakeVenueRepo struct{ s *memStore }

func (r *fakeVenueRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.venues[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &v, nil
}

func (r *fakeVenueRepo) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Venue, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list, total := pageOf(r.s.venues, filter)
	return list, total, nil
}

func (r *fakeVenueRepo) Create(ctx context.Context, tx pgx.Tx, v entities.Venue) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v.ID = r.s.nextID()
	r.s.venues[v.ID] = v
	return v.ID, nil
}

func (r *fakeVenueRepo) Update(ctx context.Context, tx pgx.Tx, v entities.Venue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.venues[v.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.s.venues[v.ID] = v
	return nil
}

func (r *fakeVenueRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.venues[id]; !ok {
		return apperrors.ErrNotFound
	}
	// events.venue_id is ON DELETE SET NULL
	for evID, ev := range r.s.events {
		if ev.VenueID.Valid && ev.VenueID.Uint64 == id {
			ev.VenueID.Valid = false
			r.s.events[evID] = ev
		}
	}
	delete(r.s.venues, id)
	return nil
}

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Customer, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list, total := pageOf(r.s.customers, filter)
	return list, total, nil
}

func (r *fakeCustomerRepo) Create(ctx context.Context, tx pgx.Tx, c entities.Customer) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextID()
	r.s.customers[c.ID] = c
	return c.ID, nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, tx pgx.Tx, c entities.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.s.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return apperrors.ErrNotFound
	}
	for _, ev := range r.s.events {
		if ev.CustomerID == id {
			return apperrors.ErrConflict
		}
	}
	delete(r.s.customers, id)
	return nil
}

type fakeEmployeeRepo struct{ s *memStore }

func (r *fakeEmployeeRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEmployeeRepo) FindByUsername(ctx context.Context, tx pgx.Tx, username string) (*entities.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Username == username {
			e := e
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEmployeeRepo) Upsert(ctx context.Context, tx pgx.Tx, e entities.Employee) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.employees {
		if existing.Username == e.Username {
			e.ID = id
			r.s.employees[id] = e
			return id, nil
		}
	}
	e.ID = r.s.nextID()
	r.s.employees[e.ID] = e
	return e.ID, nil
}

type fakeTaxonomyRepo struct {
	s *memStore
	// creates counts successful inserts per kind
	creates map[entities.TaxonomyKind]int
}

func (r *fakeTaxonomyRepo) FindByID(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, id uint64) (*entities.TaxonomyItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.taxonomy[kind][id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &item, nil
}

func (r *fakeTaxonomyRepo) FindByName(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, name string) (*entities.TaxonomyItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.taxonomy[kind] {
		if item.Name == name {
			item := item
			return &item, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeTaxonomyRepo) GetAll(ctx context.Context, kind entities.TaxonomyKind, filter types.Filter) ([]*entities.TaxonomyItem, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list, total := pageOf(r.s.taxonomy[kind], filter)
	return list, total, nil
}

func (r *fakeTaxonomyRepo) Create(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, name string) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.taxonomy[kind] {
		if item.Name == name {
			return 0, apperrors.ErrConflict
		}
	}
	id := r.s.nextID()
	r.s.taxonomy[kind][id] = entities.TaxonomyItem{ID: id, Kind: kind, Name: name}
	if r.creates == nil {
		r.creates = map[entities.TaxonomyKind]int{}
	}
	r.creates[kind]++
	return id, nil
}

func (r *fakeTaxonomyRepo) Update(ctx context.Context, tx pgx.Tx, item entities.TaxonomyItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.taxonomy[item.Kind][item.ID]; !ok {
		return apperrors.ErrNotFound
	}
	for id, other := range r.s.taxonomy[item.Kind] {
		if id != item.ID && other.Name == item.Name {
			return apperrors.ErrConflict
		}
	}
	r.s.taxonomy[item.Kind][item.ID] = item
	return nil
}

func (r *fakeTaxonomyRepo) Delete(ctx context.Context, tx pgx.Tx, kind entities.TaxonomyKind, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.taxonomy[kind][id]; !ok {
		return apperrors.ErrNotFound
	}
	for _, e := range r.s.equipment {
		if (kind == entities.TaxonomyType && e.TypeID == id) ||
			(kind == entities.TaxonomyBrand && e.BrandID == id) ||
			(kind == entities.TaxonomyModel && e.ModelID == id) {
			return apperrors.ErrConflict
		}
	}
	delete(r.s.taxonomy[kind], id)
	return nil
}

type fakeEquipmentRepo struct{ s *memStore }

// fill must be called with mu held.
func (r *fakeEquipmentRepo) fill(e entities.Equipment) *entities.Equipment {
	ref := func(kind entities.TaxonomyKind, id uint64) *entities.TaxonomyItem {
		if item, ok := r.s.taxonomy[kind][id]; ok {
			return &item
		}
		return nil
	}
	e.Type = ref(entities.TaxonomyType, e.TypeID)
	e.Brand = ref(entities.TaxonomyBrand, e.BrandID)
	e.Model = ref(entities.TaxonomyModel, e.ModelID)
	return &e
}

func (r *fakeEquipmentRepo) uidTaken(uid string, except uint64) bool {
	for id, e := range r.s.equipment {
		if id != except && e.UID == uid {
			return true
		}
	}
	return false
}

func (r *fakeEquipmentRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.equipment[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return r.fill(e), nil
}

func (r *fakeEquipmentRepo) FindByUID(ctx context.Context, tx pgx.Tx, uid string) (*entities.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.equipment {
		if e.UID == uid {
			return r.fill(e), nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Equipment, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list, total := pageOf(r.s.equipment, filter)
	for i, e := range list {
		list[i] = r.fill(*e)
	}
	return list, total, nil
}

func (r *fakeEquipmentRepo) Create(ctx context.Context, tx pgx.Tx, e entities.Equipment) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.uidTaken(e.UID, 0) {
		return 0, apperrors.ErrConflict
	}
	e.ID = r.s.nextID()
	e.Type, e.Brand, e.Model = nil, nil, nil
	r.s.equipment[e.ID] = e
	return e.ID, nil
}

func (r *fakeEquipmentRepo) Update(ctx context.Context, tx pgx.Tx, e entities.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[e.ID]; !ok {
		return apperrors.ErrNotFound
	}
	if r.uidTaken(e.UID, e.ID) {
		return apperrors.ErrConflict
	}
	e.Type, e.Brand, e.Model = nil, nil, nil
	r.s.equipment[e.ID] = e
	return nil
}

func (r *fakeEquipmentRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.equipment, id)
	for evID, ids := range r.s.eventEquipment {
		kept := ids[:0]
		for _, v := range ids {
			if v != id {
				kept = append(kept, v)
			}
		}
		r.s.eventEquipment[evID] = kept
	}
	return nil
}

type fakeEventRepo struct{ s *memStore }

// load must be called with mu held.
func (r *fakeEventRepo) load(ev entities.Event) *entities.Event {
	ev.Leader = nil
	if ev.LeaderID.Valid {
		if e, ok := r.s.employees[ev.LeaderID.Uint64]; ok {
			ev.Leader = &entities.EmployeeRef{ID: e.ID, Username: e.Username}
		}
	}
	ev.Crew = []entities.EmployeeRef{}
	for _, id := range r.s.crew[ev.ID] {
		ev.Crew = append(ev.Crew, entities.EmployeeRef{ID: id, Username: r.s.employees[id].Username})
	}
	ev.Equipment = []entities.EquipmentRef{}
	for _, id := range r.s.eventEquipment[ev.ID] {
		ev.Equipment = append(ev.Equipment, entities.EquipmentRef{ID: id, UID: r.s.equipment[id].UID})
	}
	return &ev
}

// checkRefs emulates the event foreign keys. Must be called with mu held.
func (r *fakeEventRepo) checkRefs(ev entities.Event) error {
	if _, ok := r.s.customers[ev.CustomerID]; !ok {
		return apperrors.ErrConflict
	}
	if ev.VenueID.Valid {
		if _, ok := r.s.venues[ev.VenueID.Uint64]; !ok {
			return apperrors.ErrConflict
		}
	}
	if ev.LeaderID.Valid {
		if _, ok := r.s.employees[ev.LeaderID.Uint64]; !ok {
			return apperrors.ErrConflict
		}
	}
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ev, ok := r.s.events[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return r.load(ev), nil
}

func (r *fakeEventRepo) GetAll(ctx context.Context, filter types.Filter) ([]*entities.Event, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list, total := pageOf(r.s.events, filter)
	for i, ev := range list {
		list[i] = r.load(*ev)
	}
	return list, total, nil
}

func (r *fakeEventRepo) Create(ctx context.Context, tx pgx.Tx, ev entities.Event) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkRefs(ev); err != nil {
		return 0, err
	}
	ev.ID = r.s.nextID()
	ev.Leader, ev.Crew, ev.Equipment = nil, nil, nil
	r.s.events[ev.ID] = ev
	return ev.ID, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, tx pgx.Tx, ev entities.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[ev.ID]; !ok {
		return apperrors.ErrNotFound
	}
	if err := r.checkRefs(ev); err != nil {
		return err
	}
	ev.Leader, ev.Crew, ev.Equipment = nil, nil, nil
	r.s.events[ev.ID] = ev
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.events, id)
	delete(r.s.crew, id)
	delete(r.s.eventEquipment, id)
	for _, byID := range r.s.attachments {
		for aID, a := range byID {
			if a.EventID == id {
				delete(byID, aID)
			}
		}
	}
	return nil
}

func (r *fakeEventRepo) ReplaceCrew(ctx context.Context, tx pgx.Tx, eventID uint64, employeeIDs []uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.crew[eventID] = append([]uint64(nil), employeeIDs...)
	return nil
}

func (r *fakeEventRepo) ReplaceEquipment(ctx context.Context, tx pgx.Tx, eventID uint64, equipmentIDs []uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.eventEquipment[eventID] = append([]uint64(nil), equipmentIDs...)
	return nil
}

type fakeAttachmentRepo struct{ s *memStore }

func (r *fakeAttachmentRepo) FindByID(ctx context.Context, tx pgx.Tx, kind entities.EventAttachmentKind, id uint64) (*entities.EventAttachment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attachments[kind][id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}

func (r *fakeAttachmentRepo) GetAll(ctx context.Context, kind entities.EventAttachmentKind, eventID uint64, filter types.Filter) ([]*entities.EventAttachment, uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matching := map[uint64]entities.EventAttachment{}
	for id, a := range r.s.attachments[kind] {
		if eventID == 0 || a.EventID == eventID {
			matching[id] = a
		}
	}
	list, total := pageOf(matching, filter)
	return list, total, nil
}

func (r *fakeAttachmentRepo) PathsByEvent(ctx context.Context, tx pgx.Tx, eventID uint64) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var paths []string
	for _, byID := range r.s.attachments {
		for _, a := range byID {
			if a.EventID == eventID {
				paths = append(paths, a.Path)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (r *fakeAttachmentRepo) Create(ctx context.Context, tx pgx.Tx, a entities.EventAttachment) (uint64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[a.EventID]; !ok {
		return 0, apperrors.ErrConflict
	}
	a.ID = r.s.nextID()
	r.s.attachments[a.Kind][a.ID] = a
	return a.ID, nil
}

func (r *fakeAttachmentRepo) Update(ctx context.Context, tx pgx.Tx, a entities.EventAttachment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.attachments[a.Kind][a.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.s.attachments[a.Kind][a.ID] = a
	return nil
}

func (r *fakeAttachmentRepo) Delete(ctx context.Context, tx pgx.Tx, kind entities.EventAttachmentKind, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.attachments[kind][id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.s.attachments[kind], id)
	return nil
}

// fakeFileStorage keeps uploads in memory.
type fakeFileStorage struct {
	mu      sync.Mutex
	seq     int
	files   map[string][]byte
	deleted []string
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{files: map[string][]byte{}}
}

func (f *fakeFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	dot := strings.LastIndex(originalFileName, ".")
	ext := ""
	if dot >= 0 {
		ext = strings.ToLower(originalFileName[dot:])
	}
	path := fmt.Sprintf("%s/upload-%d%s", prefix, f.seq, ext)
	f.files[path] = data
	return path, nil
}

func (f *fakeFileStorage) Delete(filePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, filePath)
	f.deleted = append(f.deleted, filePath)
	return nil
}

func (f *fakeFileStorage) BasePath() string { return "memory" }

func (f *fakeFileStorage) has(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok
}

func (f *fakeFileStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(bytes.Clone(v))
	case string:
		c.data[key] = v
	default:
		c.data[key] = fmt.Sprint(v)
	}
	c.ttl[key] = expiration
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		delete(c.ttl, k)
	}
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; !ok {
		return false, nil
	}
	c.ttl[key] = expiration
	return true, nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

// fixture wires every service over one memStore.
type fixture struct {
	store     *memStore
	tx        *fakeTxManager
	files     *fakeFileStorage
	venues    *fakeVenueRepo
	customers *fakeCustomerRepo
	employees *fakeEmployeeRepo
	taxonomy  *fakeTaxonomyRepo
	equipment *fakeEquipmentRepo
	events    *fakeEventRepo
	attach    *fakeAttachmentRepo
	assembler *graph.Assembler
	resolver  TaxonomyResolverInterface
}

func newFixture() *fixture {
	s := newMemStore()
	f := &fixture{
		store:     s,
		tx:        &fakeTxManager{store: s},
		files:     newFakeFileStorage(),
		venues:    &fakeVenueRepo{s: s},
		customers: &fakeCustomerRepo{s: s},
		employees: &fakeEmployeeRepo{s: s},
		taxonomy:  &fakeTaxonomyRepo{s: s},
		equipment: &fakeEquipmentRepo{s: s},
		events:    &fakeEventRepo{s: s},
		attach:    &fakeAttachmentRepo{s: s},
	}
	f.resolver = NewTaxonomyResolver(f.taxonomy, nil, zap.NewNop())
	f.assembler = NewAssembler(validation.New(), f.resolver, f.venues, f.customers, f.employees, f.equipment)
	return f
}

func (f *fixture) venueService() VenueServiceInterface {
	return NewVenueService(f.venues, f.tx, f.assembler, zap.NewNop())
}

func (f *fixture) customerService() CustomerServiceInterface {
	return NewCustomerService(f.customers, f.tx, f.assembler, zap.NewNop())
}

func (f *fixture) taxonomyService() TaxonomyServiceInterface {
	return NewTaxonomyService(f.taxonomy, f.resolver, f.tx, f.assembler, zap.NewNop())
}

func (f *fixture) equipmentService() EquipmentServiceInterface {
	return NewEquipmentService(f.equipment, f.tx, f.assembler, zap.NewNop())
}

func (f *fixture) eventService() EventServiceInterface {
	return NewEventService(f.events, f.attach, f.tx, f.assembler, f.files, zap.NewNop())
}

func (f *fixture) attachmentService() AttachmentServiceInterface {
	return NewAttachmentService(f.attach, f.events, f.tx, f.files, zap.NewNop())
}

func (f *fixture) addEmployee(username string, role entities.Role) uint64 {
	id, err := f.employees.Upsert(context.Background(), nil, entities.Employee{
		Username: username, FirstName: username, Role: role, IsActive: true,
	})
	if err != nil {
		panic(err)
	}
	return id
}

func (f *fixture) addCustomer(name string) uint64 {
	id, err := f.customers.Create(context.Background(), nil, entities.Customer{Name: name})
	if err != nil {
		panic(err)
	}
	return id
}

func (f *fixture) addVenue(name string) uint64 {
	id, err := f.venues.Create(context.Background(), nil, entities.Venue{Name: name, Address: "1 Main St", City: "Austin", State: "TX"})
	if err != nil {
		panic(err)
	}
	return id
}

func (f *fixture) eventCount() int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return len(f.store.events)
}

func (f *fixture) taxonomyCount(kind entities.TaxonomyKind) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return len(f.store.taxonomy[kind])
}

func uintJSON(id uint64) string {
	return strconv.FormatUint(id, 10)
}
