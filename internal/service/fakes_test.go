package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhinavmaity/ParkIt/internal/model"
	"github.com/abhinavmaity/ParkIt/internal/queue"
	"github.com/abhinavmaity/ParkIt/internal/repository"
)

// In-memory stand-ins for the repositories.  They mirror the
// conditional-write contract: a mutation that does not match the
// expected source state fails with the same sentinels the real
// repositories return.

type fakeSpotStore struct {
	spots map[string]model.ParkingSpot
	err   error
}

func newFakeSpotStore(spots ...model.ParkingSpot) *fakeSpotStore {
	m := make(map[string]model.ParkingSpot, len(spots))
	for _, s := range spots {
		m[s.ID] = s
	}
	return &fakeSpotStore{spots: m}
}

func (f *fakeSpotStore) List(context.Context) ([]model.ParkingSpot, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.ParkingSpot, 0, len(f.spots))
	for _, s := range f.spots {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSpotStore) GetByID(_ context.Context, id string) (model.ParkingSpot, error) {
	if f.err != nil {
		return model.ParkingSpot{}, f.err
	}
	s, ok := f.spots[id]
	if !ok {
		return model.ParkingSpot{}, repository.ErrSpotNotFound
	}
	return s, nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*model.Booking

	createErr   error
	overlapErr  error
	markPaidErr error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[string]*model.Booking{}}
}

func (f *fakeBookingStore) put(b model.Booking) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if b.ID == "" {
		b.ID = fmt.Sprintf("bk-%d", f.seq)
	}
	f.bookings[b.ID] = &b
	return b.ID
}

func (f *fakeBookingStore) overlaps(b *model.Booking, spotID, date, start, end string) bool {
	return b.SpotID == spotID && b.BookingDate == date &&
		b.Status.IsActive() &&
		b.StartTime < end && start < b.EndTime
}

func (f *fakeBookingStore) CountOverlapping(_ context.Context, spotID, date, start, end string) (int, error) {
	if f.overlapErr != nil {
		return 0, f.overlapErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.bookings {
		if f.overlaps(b, spotID, date, start, end) {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingStore) Create(_ context.Context, b *model.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.bookings {
		if f.overlaps(ex, b.SpotID, b.BookingDate, b.StartTime, b.EndTime) {
			return repository.ErrConflict
		}
	}
	f.seq++
	b.ID = fmt.Sprintf("bk-%d", f.seq)
	b.Status = model.StatusBooked
	b.PaymentStatus = model.PaymentPending
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id string) (model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	return *b, nil
}

func (f *fakeBookingStore) get(id string) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingStore) MarkPaid(_ context.Context, id, transactionID string) error {
	if f.markPaidErr != nil {
		return f.markPaidErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.get(id)
	if err != nil {
		return err
	}
	if b.Status != model.StatusBooked || b.PaymentStatus == model.PaymentPaid {
		return repository.ErrNoTransition
	}
	b.PaymentStatus = model.PaymentPaid
	b.TransactionID = &transactionID
	return nil
}

func (f *fakeBookingStore) MarkPaymentFailed(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.get(id)
	if err != nil {
		return err
	}
	if b.Status != model.StatusBooked || b.PaymentStatus == model.PaymentPaid {
		return repository.ErrNoTransition
	}
	b.PaymentStatus = model.PaymentFailed
	return nil
}

func (f *fakeBookingStore) SetQRCode(_ context.Context, id, qr string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.get(id)
	if err != nil {
		return err
	}
	if b.PaymentStatus != model.PaymentPaid {
		return repository.ErrNoTransition
	}
	b.QRCode = &qr
	return nil
}

func (f *fakeBookingStore) Transition(_ context.Context, id string, from, to model.BookingStatus, requirePaid bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.get(id)
	if err != nil {
		return err
	}
	if b.Status != from || (requirePaid && b.PaymentStatus != model.PaymentPaid) {
		return repository.ErrNoTransition
	}
	b.Status = to
	return nil
}

func (f *fakeBookingStore) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.get(id)
	if err != nil {
		return err
	}
	if !b.Status.IsActive() {
		return repository.ErrNoTransition
	}
	b.Status = model.StatusCancelled
	return nil
}

type fakeTxnStore struct {
	txns      map[string]model.Transaction
	createErr error
}

func newFakeTxnStore() *fakeTxnStore {
	return &fakeTxnStore{txns: map[string]model.Transaction{}}
}

func (f *fakeTxnStore) Create(_ context.Context, t *model.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	t.ID = fmt.Sprintf("txn-row-%d", len(f.txns)+1)
	f.txns[t.TransactionID] = *t
	return nil
}

func (f *fakeTxnStore) UpdateStatus(_ context.Context, transactionID string, status model.TransactionStatus) error {
	t, ok := f.txns[transactionID]
	if !ok || t.Status != model.TxnPending {
		return repository.ErrTransactionNotFound
	}
	t.Status = status
	f.txns[transactionID] = t
	return nil
}

func (f *fakeTxnStore) GetByTransactionID(_ context.Context, transactionID string) (model.Transaction, error) {
	t, ok := f.txns[transactionID]
	if !ok {
		return model.Transaction{}, repository.ErrTransactionNotFound
	}
	return t, nil
}

type auditEntry struct {
	BookingID  string
	SpotNumber string
	Action     model.ScanAction
}

type fakeAuditStore struct {
	entries []auditEntry
	err     error
}

func (f *fakeAuditStore) Append(_ context.Context, bookingID, spotNumber string, action model.ScanAction, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, auditEntry{bookingID, spotNumber, action})
	return nil
}

type fakePublisher struct {
	paid  []queue.BookingPaidEvent
	scans []queue.ScanEvent
	err   error
}

func (f *fakePublisher) PublishBookingPaid(_ context.Context, ev queue.BookingPaidEvent) error {
	if f.err != nil {
		return f.err
	}
	f.paid = append(f.paid, ev)
	return nil
}

func (f *fakePublisher) PublishScan(_ context.Context, ev queue.ScanEvent) error {
	if f.err != nil {
		return f.err
	}
	f.scans = append(f.scans, ev)
	return nil
}
