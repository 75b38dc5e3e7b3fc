package service

import (
	"context"
	"sync"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/models"
	"gorm.io/gorm"
)

// --- Transactor ---

// fakeTx runs fn without a database; the mock repositories ignore tx.
// commitErr simulates a failure raised by the database at commit.
type fakeTx struct {
	calls     int
	commitErr error
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.calls++
	if err := fn(nil); err != nil {
		return err
	}
	return f.commitErr
}

// --- Mock PlaceRepository ---

type mockPlaceRepo struct {
	createFn           func(ctx context.Context, place *models.Place) error
	findByIDFn         func(ctx context.Context, id string) (*models.Place, error)
	findAllFn          func(ctx context.Context, filter models.PlaceFilter) ([]models.Place, error)
	updateFn           func(ctx context.Context, place *models.Place) error
	replaceAmenitiesFn func(ctx context.Context, place *models.Place, amenities []models.Amenity) error
	deleteFn           func(ctx context.Context, id string) error
	locked             []string
}

func (m *mockPlaceRepo) Create(ctx context.Context, tx *gorm.DB, place *models.Place) error {
	if m.createFn != nil {
		return m.createFn(ctx, place)
	}
	place.ID = "place-new"
	return nil
}
func (m *mockPlaceRepo) FindByID(ctx context.Context, id string) (*models.Place, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockPlaceRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Place, error) {
	m.locked = append(m.locked, id)
	return m.findByIDFn(ctx, id)
}
func (m *mockPlaceRepo) FindAll(ctx context.Context, filter models.PlaceFilter) ([]models.Place, error) {
	return m.findAllFn(ctx, filter)
}
func (m *mockPlaceRepo) Update(ctx context.Context, tx *gorm.DB, place *models.Place) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, place)
	}
	return nil
}
func (m *mockPlaceRepo) ReplaceAmenities(ctx context.Context, tx *gorm.DB, place *models.Place, amenities []models.Amenity) error {
	if m.replaceAmenitiesFn != nil {
		return m.replaceAmenitiesFn(ctx, place, amenities)
	}
	return nil
}
func (m *mockPlaceRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
func (m *mockPlaceRepo) GetDB() *gorm.DB { return nil }

// --- Mock BookingRepository ---

// mockBookingRepo keeps bookings in memory so lifecycle tests can observe
// status changes across calls.
type mockBookingRepo struct {
	mu        sync.Mutex
	bookings  map[string]*models.Booking
	seq       int
	createErr error
	updateErr error
	completed []models.Booking
}

func newMockBookingRepo(bookings ...models.Booking) *mockBookingRepo {
	m := &mockBookingRepo{bookings: map[string]*models.Booking{}}
	for i := range bookings {
		b := bookings[i]
		m.bookings[b.ID] = &b
	}
	return m
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if b.ID == "" {
		b.ID = "booking-new"
	}
	stored := *b
	m.bookings[b.ID] = &stored
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, tx *gorm.DB, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *b
	return &out, nil
}
func (m *mockBookingRepo) FindByPlace(ctx context.Context, tx *gorm.DB, placeID string, statuses ...models.BookingStatus) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.PlaceID != placeID {
			continue
		}
		if len(statuses) > 0 && !hasStatus(b.Status, statuses) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}
func (m *mockBookingRepo) FindByTenant(ctx context.Context, tenantID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.TenantID == tenantID {
			out = append(out, *b)
		}
	}
	return out, nil
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, ids []string, status models.BookingStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if b, ok := m.bookings[id]; ok {
			b.Status = status
		}
	}
	return nil
}
func (m *mockBookingRepo) CompleteFinished(ctx context.Context, today time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var done []models.Booking
	for _, b := range m.bookings {
		if b.Status == models.StatusConfirmed && !b.CheckOut.After(today) {
			b.Status = models.StatusCompleted
			done = append(done, *b)
		}
	}
	m.completed = done
	return done, nil
}
func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

func (m *mockBookingRepo) status(id string) models.BookingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id].Status
}

func hasStatus(s models.BookingStatus, statuses []models.BookingStatus) bool {
	for _, want := range statuses {
		if s == want {
			return true
		}
	}
	return false
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *models.User) error
	findByIDFn    func(ctx context.Context, id string) (*models.User, error)
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
	updateFn      func(ctx context.Context, user *models.User) error
	setAdminFn    func(ctx context.Context, id string, isAdmin bool) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findByEmailFn(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.updateFn(ctx, user)
}
func (m *mockUserRepo) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return m.setAdminFn(ctx, id, isAdmin)
}

// --- Mock AmenityRepository ---

type mockAmenityRepo struct {
	createFn    func(ctx context.Context, amenity *models.Amenity) error
	findAllFn   func(ctx context.Context) ([]models.Amenity, error)
	findByIDFn  func(ctx context.Context, id string) (*models.Amenity, error)
	findByIDsFn func(ctx context.Context, ids []string) ([]models.Amenity, error)
	updateFn    func(ctx context.Context, amenity *models.Amenity) error
	deleteFn    func(ctx context.Context, id string) error
	seeded      []string
}

func (m *mockAmenityRepo) Create(ctx context.Context, amenity *models.Amenity) error {
	return m.createFn(ctx, amenity)
}
func (m *mockAmenityRepo) FindAll(ctx context.Context) ([]models.Amenity, error) {
	return m.findAllFn(ctx)
}
func (m *mockAmenityRepo) FindByID(ctx context.Context, id string) (*models.Amenity, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockAmenityRepo) FindByIDs(ctx context.Context, ids []string) ([]models.Amenity, error) {
	return m.findByIDsFn(ctx, ids)
}
func (m *mockAmenityRepo) FindByName(ctx context.Context, name string) (*models.Amenity, error) {
	return nil, gorm.ErrRecordNotFound
}
func (m *mockAmenityRepo) Update(ctx context.Context, amenity *models.Amenity) error {
	return m.updateFn(ctx, amenity)
}
func (m *mockAmenityRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}
func (m *mockAmenityRepo) Seed(ctx context.Context, names []string) error {
	m.seeded = names
	return nil
}

// --- Mock ReviewRepository ---

type mockReviewRepo struct {
	createFn      func(ctx context.Context, review *models.Review) error
	findByIDFn    func(ctx context.Context, id string) (*models.Review, error)
	findByPlaceFn func(ctx context.Context, placeID string) ([]models.Review, error)
	existsFn      func(ctx context.Context, userID, placeID string) (bool, error)
	updateFn      func(ctx context.Context, review *models.Review) error
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	return m.createFn(ctx, review)
}
func (m *mockReviewRepo) FindByID(ctx context.Context, id string) (*models.Review, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockReviewRepo) FindByPlace(ctx context.Context, placeID string) ([]models.Review, error) {
	return m.findByPlaceFn(ctx, placeID)
}
func (m *mockReviewRepo) ExistsForUserAndPlace(ctx context.Context, userID, placeID string) (bool, error) {
	return m.existsFn(ctx, userID, placeID)
}
func (m *mockReviewRepo) Update(ctx context.Context, review *models.Review) error {
	return m.updateFn(ctx, review)
}
func (m *mockReviewRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

// --- Mock PhotoRepository ---

// mockPhotoRepo records every write in calls so tests can check ordering.
type mockPhotoRepo struct {
	findByIDFn     func(ctx context.Context, id string) (*models.PlacePhoto, error)
	clearedFor     []string
	created        []*models.PlacePhoto
	updated        []*models.PlacePhoto
	deleted        []string
	calls          []string
	clearPrimaryFn func(ctx context.Context, placeID, exceptID string) error
}

func (m *mockPhotoRepo) Create(ctx context.Context, tx *gorm.DB, photo *models.PlacePhoto) error {
	photo.ID = "photo-new"
	m.created = append(m.created, photo)
	m.calls = append(m.calls, "create")
	return nil
}
func (m *mockPhotoRepo) FindByID(ctx context.Context, id string) (*models.PlacePhoto, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockPhotoRepo) ClearPrimary(ctx context.Context, tx *gorm.DB, placeID, exceptID string) error {
	m.clearedFor = append(m.clearedFor, placeID+"!"+exceptID)
	m.calls = append(m.calls, "clear")
	if m.clearPrimaryFn != nil {
		return m.clearPrimaryFn(ctx, placeID, exceptID)
	}
	return nil
}
func (m *mockPhotoRepo) Update(ctx context.Context, tx *gorm.DB, photo *models.PlacePhoto) error {
	m.updated = append(m.updated, photo)
	m.calls = append(m.calls, "update")
	return nil
}
func (m *mockPhotoRepo) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	m.deleted = append(m.deleted, id)
	m.calls = append(m.calls, "delete")
	return nil
}

// --- Mock BookingEventRepository ---

type mockEventRepo struct {
	events []models.BookingEvent
}

func (m *mockEventRepo) Record(ctx context.Context, ev *models.BookingEvent) error {
	m.events = append(m.events, *ev)
	return nil
}
func (m *mockEventRepo) FindByBooking(ctx context.Context, bookingID string) ([]models.BookingEvent, error) {
	var out []models.BookingEvent
	for _, ev := range m.events {
		if ev.BookingID == bookingID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// --- Publisher ---

type published struct {
	routingKey string
	event      models.BookingEvent
}

type recordingPublisher struct {
	messages []published
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey, messageID string, payload any) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, published{routingKey: routingKey, event: payload.(models.BookingEvent)})
	return nil
}

func (p *recordingPublisher) keys() []string {
	out := make([]string, len(p.messages))
	for i, m := range p.messages {
		out[i] = m.routingKey
	}
	return out
}
